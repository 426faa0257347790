// Command dataprof infers column types for a delimited data file and
// emits a schema description plus dialect-specific DDL.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/dataprof-io/dataprof/pkg/apply"
	"github.com/dataprof-io/dataprof/pkg/config"
	"github.com/dataprof-io/dataprof/pkg/detector"
	"github.com/dataprof-io/dataprof/pkg/dialects"
	"github.com/dataprof-io/dataprof/pkg/export"
	"github.com/dataprof-io/dataprof/pkg/loader"
	"github.com/dataprof-io/dataprof/pkg/logging"
	"github.com/dataprof-io/dataprof/pkg/schemagen"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CLI defines the command-line interface for dataprof.
var CLI struct {
	Config string `help:"Path to the application config YAML." default:"config.yaml"`
	Debug  bool   `help:"Enable debug logging."`

	Profile ProfileCmd `cmd:"" default:"withargs" help:"Profile a data file and generate schema artifacts"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ProfileCmd runs the full pipeline: load, detect, generate, export.
type ProfileCmd struct {
	Input     string `arg:"" help:"Input data file (.csv, .tsv or .txt)." type:"existingfile"`
	Table     string `help:"Target table name; derived from the file name when empty."`
	Dialect   string `help:"Target dialect." default:"bigquery" enum:"bigquery,oracle,postgres,sqlite,sqlserver"`
	Project   string `help:"BigQuery project ID used to qualify the table name."`
	Dataset   string `help:"BigQuery dataset ID used to qualify the table name."`
	Separator string `help:"Field separator; defaults by file extension."`
	Keywords  string `help:"Keyword config path; overrides the application config."`
	SchemaOut string `help:"Schema description CSV path; overrides the application config."`
	DDLOut    string `help:"DDL output path; overrides the application config."`
	Apply     bool   `help:"Execute the generated DDL against --dsn."`
	DSN       string `help:"Connection string for --apply."`
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Println(Version)
	return nil
}

func (c *ProfileCmd) Run(cfg *config.Config, logger *zap.Logger) error {
	keywordsPath := cfg.KeywordsPath
	if c.Keywords != "" {
		keywordsPath = c.Keywords
	}
	detCfg, err := config.LoadDetectionConfig(keywordsPath)
	if err != nil {
		return err
	}

	var sep rune
	if c.Separator != "" {
		sep = []rune(c.Separator)[0]
	}
	table, err := loader.New(sep, logger).Load(c.Input, c.Table)
	if err != nil {
		return err
	}

	optimized, metadata, err := detector.New(detCfg, logger).Detect(table)
	if err != nil {
		return err
	}

	dialect, err := dialects.New(c.Dialect, dialects.Options{
		ProjectID: c.Project,
		DatasetID: c.Dataset,
	})
	if err != nil {
		return err
	}

	profile, err := schemagen.New(dialect, logger).Generate(optimized, metadata)
	if err != nil {
		return err
	}

	writer := export.NewWriter(logger)
	schemaPath := cfg.Output.SchemaPath
	if c.SchemaOut != "" {
		schemaPath = c.SchemaOut
	}
	if err := writer.WriteSchemaCSV(schemaPath, profile); err != nil {
		return err
	}
	ddlPath := cfg.Output.DDLPath
	if c.DDLOut != "" {
		ddlPath = c.DDLOut
	}
	if err := writer.WriteDDL(ddlPath, profile); err != nil {
		return err
	}

	if c.Apply {
		if c.DSN == "" {
			return fmt.Errorf("--apply requires --dsn")
		}
		if err := apply.NewExecutor(logger).Apply(context.Background(), c.Dialect, c.DSN, profile.DDL); err != nil {
			return err
		}
	}

	fmt.Print(profile.DDL)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dataprof"),
		kong.Description("Column type inference and database schema generation."),
		kong.UsageOnError(),
	)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Env, CLI.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ctx.FatalIfErrorf(ctx.Run(cfg, logger))
}

// loadConfig reads the application config, falling back to environment
// defaults when the file is absent.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(CLI.Config); os.IsNotExist(err) {
		return config.FromEnv(Version)
	}
	return config.Load(CLI.Config, Version)
}
