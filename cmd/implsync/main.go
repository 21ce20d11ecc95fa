package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/docsmith/implindex"
	"github.com/docsmith/implindex/datastore/ddb"
	"github.com/docsmith/implindex/fragment"
	"github.com/docsmith/implindex/logging"
	"github.com/docsmith/implindex/registry"
	"github.com/docsmith/implindex/searchindex"
	"github.com/docsmith/implindex/storagemodels"
)

var (
	configFlag    = flag.String("config", "implsync.yaml", "Path to the sync config file")
	verbosityFlag = flag.Int("verbosity", 1, "Log verbosity (0=warn, 1=info, 2=debug)")
	versionFlag   = flag.Bool("version", false, "Show version information")
	vFlag         = flag.Bool("v", false, "Show version information (short)")
)

func registerRecordTypes() {
	registry.RegisterRecordType("TableRecord", func(item map[string]types.AttributeValue) (interface{}, error) {
		rec := &storagemodels.TableRecord{}
		if err := attributevalue.UnmarshalMap(item, rec); err != nil {
			return nil, err
		}
		return rec, nil
	})

	registry.RegisterIndexMap[storagemodels.TableRecord](map[string]string{
		"PK":     "TRAIT#{TraitPath}",
		"SK":     "TABLE",
		"GSI1PK": "DOCS#{DocsVersion}",
		"GSI1SK": "{UpdatedAt}",
	})
}

func run() error {
	cfg, err := LoadConfig(*configFlag)
	if err != nil {
		return err
	}

	tables, err := fragment.LoadDir(cfg.DocsDir)
	if err != nil {
		return fmt.Errorf("failed to load fragment artifacts: %w", err)
	}
	log.Info().Int("traits", len(tables)).Str("docsDir", cfg.DocsDir).Msg("loaded implementor tables")

	// Publish every table; the index attaches afterwards and drains whatever
	// queued, which exercises the same deferred handoff a live site uses.
	for trait, table := range tables {
		registry.MailboxFor(trait).Publish(table)
	}

	ix := searchindex.New()
	ix.AttachTraits()
	log.Info().Int("indexed", ix.Len()).Msg("implementor index built")

	if !cfg.Sync.Enabled {
		return nil
	}

	registerRecordTypes()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, proceeding with environment variables")
	}

	region := cfg.Sync.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}

	store, err := ddb.NewDynamodbDataStore[storagemodels.TableRecord](
		os.Getenv("AWS_ACCESS_KEY"),
		os.Getenv("AWS_SECRET_KEY"),
		region,
		cfg.Sync.TableName,
	)
	if err != nil {
		return fmt.Errorf("failed to create datastore: %w", err)
	}

	if err := implindex.SyncTables(context.Background(), store, cfg.DocsVersion, tables); err != nil {
		return err
	}
	log.Info().
		Int("traits", len(tables)).
		Str("table", cfg.Sync.TableName).
		Str("docsVersion", cfg.DocsVersion).
		Msg("implementor tables synced")
	return nil
}

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := implindex.GetVersionInfo()
		fmt.Printf("implsync version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	logging.SetupLogger(*verbosityFlag)

	if err := run(); err != nil {
		log.Error().Err(err).Msg("sync failed")
		os.Exit(1)
	}
}
