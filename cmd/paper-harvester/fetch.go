package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-harvester/internal/convert"
	"github.com/pdiddy/paper-harvester/internal/ledger"
	"github.com/pdiddy/paper-harvester/internal/logging"
	"github.com/pdiddy/paper-harvester/internal/pipeline"
	"github.com/pdiddy/paper-harvester/internal/ratelimit"
	"github.com/pdiddy/paper-harvester/internal/search"
	"github.com/pdiddy/paper-harvester/internal/store"
	"github.com/pdiddy/paper-harvester/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "paper-harvester/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Search arXiv and download matching papers",
	Long: `Fetch runs the pipeline once per query: it paginates the arXiv search API,
downloads each result's PDF to pdfs/<query>/, and with --markdown converts
each PDF to mds/<query>/. Papers whose PDF already exists on disk are skipped
without any network call.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringSlice("query_list", nil, "search queries, one pipeline run per entry (required)")
	fetchCmd.Flags().Bool("markdown", false, "convert downloaded PDFs to markdown")
	fetchCmd.Flags().Int("page_size", 100, "results fetched per search page")
	fetchCmd.Flags().Int("delay_seconds", 10, "minimum spacing between outbound requests")
	fetchCmd.Flags().Int("num_retries", 5, "retries after a failed request (0 means a single attempt)")
	fetchCmd.Flags().Int("max_results", 10, "maximum papers per query")
	fetchCmd.Flags().String("sort_by", "relevance", "result ordering: relevance, last_updated_date, or submitted_date")
	fetchCmd.Flags().String("output_dir", ".", "root directory for pdfs/ and mds/")
	fetchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	fetchCmd.MarkFlagRequired("query_list")

	viper.BindPFlags(fetchCmd.Flags())

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	queries, _ := cmd.Flags().GetStringSlice("query_list")
	if len(queries) == 0 {
		return fmt.Errorf("provide at least one query via --query_list")
	}

	sortBy, err := types.ParseSortKey(viper.GetString("sort_by"))
	if err != nil {
		return err
	}

	httpCfg := types.HTTPConfig{
		Timeout:   viper.GetDuration("timeout"),
		UserAgent: defaultUserAgent,
	}
	searchCfg := types.SearchConfig{
		HTTPConfig: httpCfg,
		PageSize:   viper.GetInt("page_size"),
		MaxResults: viper.GetInt("max_results"),
		SortBy:     sortBy,
	}
	fetchCfg := types.FetchConfig{
		HTTPConfig: httpCfg,
		Delay:      time.Duration(viper.GetInt("delay_seconds")) * time.Second,
		Retries:    viper.GetInt("num_retries"),
		OutputDir:  viper.GetString("output_dir"),
		Markdown:   viper.GetBool("markdown"),
	}

	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	log := logging.New(os.Stderr, verbose)

	client := &http.Client{Timeout: httpCfg.Timeout}
	gate := ratelimit.New(fetchCfg.Delay, fetchCfg.Retries)
	backend := &search.ArxivBackend{Client: client, UserAgent: httpCfg.UserAgent}
	st := store.New(fetchCfg.OutputDir)

	pipe := &pipeline.Pipeline{
		Searcher:  search.NewClient(backend, gate, searchCfg),
		Gate:      gate,
		Store:     st,
		Client:    client,
		Extractor: convert.PDFExtractor{},
		Markdown:  fetchCfg.Markdown,
		UserAgent: httpCfg.UserAgent,
		Log:       log,
	}

	if err := os.MkdirAll(fetchCfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", fetchCfg.OutputDir, err)
	}

	led, err := ledger.Open(st.LedgerPath())
	if err != nil {
		log.Warn().Err(err).Msg("ledger unavailable, outcomes will not be persisted")
	} else {
		defer led.Close()
		pipe.Recorder = led
	}

	sum := pipe.Run(cmd.Context(), queries)
	if sum.Failed > 0 {
		return fmt.Errorf("%d paper(s) failed to download", sum.Failed)
	}
	return nil
}
