package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "industry-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EntrezConfig holds settings for the NCBI E-utilities client.
type EntrezConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is an optional NCBI API key (raises the rate limit from 3 to
	// 10 requests per second).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email identifies the caller to NCBI per their usage policy.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Tool is the tool name sent with every request (default "industry-papers").
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`

	// BatchSize is the maximum number of IDs per efetch request (default 200).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// MaxRetries bounds the retry attempts for throttled or failing requests.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RequestDelay is the pause between consecutive efetch batches (default 350ms,
	// which keeps an unkeyed client under NCBI's 3 req/s limit).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// ClassifierConfig extends the built-in affiliation rule tables.
type ClassifierConfig struct {
	// CompanyKeywords are additional company indicators appended after the
	// built-in company rules.
	CompanyKeywords []string `json:"company_keywords,omitempty" yaml:"company_keywords,omitempty"`

	// AcademicKeywords are additional academic/government indicators
	// appended after the built-in academic rules.
	AcademicKeywords []string `json:"academic_keywords,omitempty" yaml:"academic_keywords,omitempty"`
}

// CacheConfig holds settings for the local fetch cache.
type CacheConfig struct {
	// Enabled controls whether fetched records are cached and reused.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding the cache database (default ".industry-papers").
	Dir string `json:"dir" yaml:"dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Entrez     EntrezConfig     `json:"entrez" yaml:"entrez"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
	Cache      CacheConfig      `json:"cache" yaml:"cache"`
}
