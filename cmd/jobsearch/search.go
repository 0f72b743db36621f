package main

import (
	"encoding/json"
	"github.com/maxaizer/job-keywords/internal/config"
	"github.com/maxaizer/job-keywords/internal/domain/models"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os"
)

var searchQuery models.SearchQuery

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one search and print the result as JSON",
	Long:  "Runs a single query through the same pipeline the HTTP API uses and writes the result to stdout.",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchQuery.Keyword, "keyword", "k", "", "job keyword, e.g. nurse")
	searchCmd.Flags().StringVarP(&searchQuery.Location, "location", "l", "", "location (default: "+models.DefaultSearchLocation+")")
	searchCmd.Flags().StringVar(&searchQuery.NextPageToken, "page-token", "", "next_page_token from a previous result")
	_ = searchCmd.MarkFlagRequired("keyword")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {

	// stdout carries the result
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	applyFlags()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	app, err := newApplication(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.pipeline.Search(cmd.Context(), searchQuery)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
