// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/industry-papers/internal/cache"
	"github.com/pdiddy/industry-papers/internal/classify"
	"github.com/pdiddy/industry-papers/internal/entrez"
	"github.com/pdiddy/industry-papers/internal/logging"
	"github.com/pdiddy/industry-papers/internal/output"
	"github.com/pdiddy/industry-papers/internal/pipeline"
	"github.com/pdiddy/industry-papers/internal/pubmed"
	"github.com/pdiddy/industry-papers/pkg/types"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxResults   = 20
	defaultBatchSize    = 200
	defaultRequestDelay = 350 * time.Millisecond
	defaultCacheDir     = ".industry-papers"
	defaultUserAgent    = "industry-papers/0.1"
	toolName            = "industry-papers"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Search PubMed and keep papers with company-affiliated authors",
	Long: `Fetch searches PubMed for the given query, retrieves the matching article
records in batches, classifies each author's affiliation, and writes only the
papers that have at least one pharma/biotech company author.

Without --file the result is printed as a console table; with --file a CSV
file is written. Records are cached locally so repeated runs of the same
query do not refetch.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("query", "", "PubMed query string (required)")
	fetchCmd.Flags().Int("max", defaultMaxResults, "maximum number of search results")
	fetchCmd.Flags().StringP("file", "f", "", "output file path; omit to print to console")
	fetchCmd.Flags().String("format", "", "output format: csv or csl (default csv for files)")
	fetchCmd.Flags().String("save", "", "save the run (query, counters, papers) to a YAML file")
	fetchCmd.Flags().Bool("no-cache", false, "bypass the local record cache")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().BoolP("debug", "d", false, "enable debug logging")

	fetchCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	maxResults, _ := cmd.Flags().GetInt("max")
	filePath, _ := cmd.Flags().GetString("file")
	format, _ := cmd.Flags().GetString("format")
	savePath, _ := cmd.Flags().GetString("save")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	debug, _ := cmd.Flags().GetBool("debug")

	if query == "" {
		return fmt.Errorf("query must not be empty")
	}
	if maxResults < 0 {
		return fmt.Errorf("--max must not be negative, got %d", maxResults)
	}
	if format != "" && format != "csv" && format != "csl" {
		return fmt.Errorf("unknown format %q: use csv or csl", format)
	}

	log, err := logging.New(debug)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	cfg := loadConfig(cmd)
	classifier := classify.New(cfg.Classifier)

	var store pipeline.Cache
	if cfg.Cache.Enabled && !noCache {
		s, err := cache.Open(cfg.Cache.Dir)
		if err != nil {
			log.Warnw("cache unavailable, continuing without it", "error", err)
		} else {
			defer s.Close()
			store = s
		}
	}

	sink, collector, err := buildSink(filePath, format, savePath)
	if err != nil {
		return err
	}

	p := pipeline.New(entrez.NewClient(cfg.Entrez), pubmed.NewParser(classifier), store, log)
	opts := pipeline.Options{
		Query:        query,
		MaxResults:   maxResults,
		BatchSize:    cfg.Entrez.BatchSize,
		RequestDelay: cfg.Entrez.RequestDelay,
	}

	res, err := p.Run(context.Background(), opts, sink, os.Stdout)
	if err != nil {
		return err
	}

	if filePath != "" {
		fmt.Printf("Saved %d paper(s) to %s\n", res.Written, filePath)
	}
	if res.ParseSkipped > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d record(s) skipped due to parse failures\n", res.ParseSkipped)
	}

	if savePath != "" {
		rf := output.RunFile{
			Query: output.RunQuery{Term: query, MaxResults: maxResults},
			Summary: output.RunSummary{
				IDsFound:     res.IDsFound,
				Parsed:       res.Parsed,
				ParseSkipped: res.ParseSkipped,
				Written:      res.Written,
			},
		}
		for _, paper := range collector.Papers {
			rf.Papers = append(rf.Papers, *paper)
		}
		if err := output.WriteRunFile(savePath, rf); err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		fmt.Printf("Run saved to %s\n", savePath)
	}

	return nil
}

// buildSink assembles the output sink for the run: the user-selected
// destination, plus a collector when the run is being saved.
func buildSink(filePath, format, savePath string) (output.Sink, *output.Collector, error) {
	var dest output.Sink
	switch {
	case filePath != "" && format == "csl":
		dest = output.NewCSLFileSink(filePath)
	case filePath != "":
		dest = output.NewCSVFileSink(filePath)
	case format == "csl":
		dest = output.NewCSLSink(os.Stdout)
	case format == "csv":
		dest = output.NewCSVSink(os.Stdout)
	default:
		dest = output.NewConsoleSink(os.Stdout)
	}

	collector := &output.Collector{}
	if savePath == "" {
		return dest, collector, nil
	}
	return output.Multi(collector, dest), collector, nil
}

// loadConfig assembles the full stage configuration from the config file,
// secrets, and flags.
func loadConfig(cmd *cobra.Command) types.PipelineConfig {
	return types.PipelineConfig{
		Entrez:     entrezConfig(cmd),
		Classifier: classifierConfig(),
		Cache:      cacheConfig(),
	}
}

// entrezConfig assembles the E-utilities client settings from config file,
// secrets, and flags.
func entrezConfig(cmd *cobra.Command) types.EntrezConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("entrez.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	batchSize := viper.GetInt("entrez.batch_size")
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	delay := viper.GetDuration("entrez.request_delay")
	if delay == 0 {
		delay = defaultRequestDelay
	}

	return types.EntrezConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		APIKey:       secretDefault("ncbi-api-key", viper.GetString("entrez.api_key")),
		Email:        secretDefault("entrez-email", viper.GetString("entrez.email")),
		Tool:         toolName,
		BatchSize:    batchSize,
		MaxRetries:   viper.GetInt("entrez.max_retries"),
		RequestDelay: delay,
	}
}

func classifierConfig() types.ClassifierConfig {
	return types.ClassifierConfig{
		CompanyKeywords:  viper.GetStringSlice("classifier.company_keywords"),
		AcademicKeywords: viper.GetStringSlice("classifier.academic_keywords"),
	}
}

// cacheConfig reads the cache settings, defaulting to an enabled cache in
// the working directory.
func cacheConfig() types.CacheConfig {
	cfg := types.CacheConfig{Enabled: true, Dir: defaultCacheDir}
	if viper.IsSet("cache.enabled") {
		cfg.Enabled = viper.GetBool("cache.enabled")
	}
	if dir := viper.GetString("cache.dir"); dir != "" {
		cfg.Dir = dir
	}
	return cfg
}
