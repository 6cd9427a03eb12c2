package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/nyoungstudios/notion.go/contrib/notiondump"
	"github.com/nyoungstudios/notion.go/pkg/connection"
)

func main() {
	// Variables from a local .env file fill in what the environment lacks
	_ = godotenv.Load()

	config := notiondump.NewConfig()
	config.Token = os.Getenv(connection.EnvToken)
	if baseURL := os.Getenv(connection.EnvBaseURL); baseURL != "" {
		config.BaseURL = baseURL
	}
	if version := os.Getenv(connection.EnvNotionVersion); version != "" {
		config.NotionVersion = version
	}

	var source string
	flag.StringVar(&config.Token, "token", config.Token, "Integration token (defaults to $NOTION_TOKEN)")
	flag.StringVar(&config.BaseURL, "base-url", config.BaseURL, "Notion API base URL")
	flag.StringVar(&config.NotionVersion, "notion-version", config.NotionVersion, "Notion-Version header")
	flag.StringVar(&source, "source", string(config.Source), "Listing to dump: database, databases, children, search or users")
	flag.StringVar(&config.ID, "id", "", "Database or block id (required for database and children)")
	flag.StringVar(&config.Query, "query", "", "Search query (search only)")
	flag.StringVar(&config.Filter, "filter", "", "JSON filter object (database and search only)")
	flag.IntVar(&config.PageSize, "page-size", 0, "Results per request (1-100, default server side)")
	flag.StringVar(&config.Output, "output", "", "Output file path (required)")
	flag.StringVar(&config.Dir, "dir", "", "Base directory for dumps (prefixes output path)")
	flag.BoolVar(&config.Verbose, "verbose", false, "Enable verbose logging")

	flag.Parse()
	config.Source = notiondump.Source(source)

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := notiondump.Do(ctx, config); err != nil {
		log.Fatal(err)
	}
}
