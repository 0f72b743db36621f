package main

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-keywords/internal/clients/serpapi"
	"github.com/maxaizer/job-keywords/internal/config"
	"github.com/maxaizer/job-keywords/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsearch",
	Short: "Job search with ATS keyword extraction",
	Long:  "Searches job postings through SerpApi Google Jobs and extracts ATS keywords from every description.",
	// no subcommand runs the HTTP API
	RunE: runServe,

	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: CONFIG_PATH env var or ./configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// applyFlags maps persistent flags onto the environment the config loader reads.
func applyFlags() {
	if cfgPath != "" {
		_ = os.Setenv("CONFIG_PATH", cfgPath)
	}
	if debug {
		_ = os.Setenv("LOG_LEVEL", string(config.LevelDebug))
	}
}

type application struct {
	bus      EventBus.Bus
	cache    *services.ResultCache
	pipeline *services.QueryPipeline
	stats    *services.SearchStatsRecorder
}

func newApplication(cfg *config.Config) (*application, error) {

	if cfg.Search.APIKey == "" {
		log.Warn("SERPAPI_KEY is not set, every search will fail with a configuration error")
	}

	client := serpapi.NewClient(cfg.Search.Timeout)
	client.SetBaseURL(cfg.Search.BaseURL)
	client.SetRateLimit(cfg.Search.MaxRequestsPerSecond)

	bus := EventBus.New()
	stats, err := services.NewSearchStatsRecorder(bus)
	if err != nil {
		return nil, err
	}

	cache := services.NewResultCache(cfg.Cache.TTL)

	pipeline := services.NewQueryPipeline(bus, client, cache, cfg.Search.APIKey)
	pipeline.SetCoalescing(cfg.Search.CoalesceRequests)

	return &application{
		bus:      bus,
		cache:    cache,
		pipeline: pipeline,
		stats:    stats,
	}, nil
}

func (a *application) Close() {
	a.cache.Close()
}
