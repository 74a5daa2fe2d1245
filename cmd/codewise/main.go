package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/codewise/internal/archive"
	"codeberg.org/snonux/codewise/internal/batch"
	"codeberg.org/snonux/codewise/internal/classify"
	"codeberg.org/snonux/codewise/internal/cli"
	"codeberg.org/snonux/codewise/internal/content"
	"codeberg.org/snonux/codewise/internal/dataset"
	"codeberg.org/snonux/codewise/internal/export"
	"codeberg.org/snonux/codewise/internal/logging"
	"codeberg.org/snonux/codewise/internal/models"
	"codeberg.org/snonux/codewise/internal/processor"
	"codeberg.org/snonux/codewise/internal/search"
	"codeberg.org/snonux/codewise/internal/translation"
)

const failureNotice = "Data extraction failed due to errors. Check the log for details."

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		cli.ApplyConfig(flags, args)
		return runCommand(cmd.Context(), flags)
	}
	rootCmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, flags *cli.Flags) error {
	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListTranslationModels(ctx, os.Stdout)
	}

	exportCfg := flags.ExportConfig()

	// Handle --archive flag
	if flags.Archive {
		moved, err := archive.ArchiveFiles(exportCfg.FilePaths()...)
		if err != nil {
			return fmt.Errorf("failed to archive previous output: %w", err)
		}
		for _, p := range moved {
			fmt.Printf("Archived previous output to: %s\n", p)
		}
	}

	logFile, err := logging.OpenFile(flags.LogFile, logging.ParseLevel(flags.LogLevel))
	if err != nil {
		return err
	}
	defer logFile.Close()

	proc, err := buildProcessor(ctx, flags, logFile)
	if err != nil {
		logFile.Error("Failed to set up extraction", err)
		return err
	}

	fmt.Printf("Extracting problems from %s\n", flags.Root)
	ds, stats, err := proc.Extract(ctx)
	if err != nil {
		logFile.ErrorTrace("Error during data extraction", err, "root", flags.Root)
		fmt.Fprintln(os.Stderr, failureNotice)
		if ds == nil {
			return err
		}
	}

	fmt.Println()
	if err := dataset.WriteTable(os.Stdout, ds, flags.Head); err != nil {
		return fmt.Errorf("failed to print dataset: %w", err)
	}
	processor.PrintSummary(os.Stdout, stats)

	if exportErr := exportDataset(ctx, exportCfg, ds, logFile); exportErr != nil {
		return errors.Join(err, exportErr)
	}
	if err == nil && stats.Failed > 0 {
		fmt.Fprintf(os.Stderr, "%d directories failed. See %s for details.\n", stats.Failed, logFile.Path())
	}
	return err
}

func buildProcessor(ctx context.Context, flags *cli.Flags, logger logging.Logger) (*processor.Processor, error) {
	policy, err := classify.ParsePolicy(flags.CodePolicy)
	if err != nil {
		return nil, err
	}

	fallback, err := content.ParseFallback(flags.FallbackEncoding)
	if err != nil {
		return nil, err
	}

	translator, err := translation.New(ctx, flags.TranslationConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}

	var resolver processor.LinkResolver = search.Disabled{}
	if !flags.SkipLinks {
		r, err := search.NewResolver(search.NewDuckDuckGo(flags.DuckDuckGoOptions()), flags.ResolverConfig(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create link resolver: %w", err)
		}
		resolver = r
	}

	var selection *batch.Selection
	if flags.OnlyFile != "" {
		selection, err = batch.ReadSelectionFile(flags.OnlyFile)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Restricting extraction to %d selected problems\n", selection.Len())
	}

	opts := processor.Options{
		Root:           flags.Root,
		SourceLanguage: flags.SourceLang,
		TargetLanguage: flags.TargetLang,
		Selection:      selection,
		FailFast:       flags.FailFast,
	}
	components := processor.Components{
		Classifier: classify.New(flags.Extensions, policy, logger),
		Reader:     content.NewReader(fallback, logger),
		Translator: translator,
		Resolver:   resolver,
		Logger:     logger,
	}
	if !flags.Quiet {
		components.Progress = os.Stdout
	}

	return processor.NewProcessor(opts, components), nil
}

func exportDataset(ctx context.Context, cfg export.Config, ds *dataset.Dataset, logger logging.Logger) error {
	exporters, err := export.New(cfg)
	if err != nil {
		logger.Error("Failed to configure export", err)
		return err
	}

	var errs []error
	for _, e := range exporters {
		if err := e.Export(ctx, ds); err != nil {
			logger.Error("Export failed", err, "target", e.Name())
			fmt.Fprintf(os.Stderr, "Warning: export to %s failed: %v\n", e.Name(), err)
			errs = append(errs, err)
			continue
		}
		fmt.Printf("Exported %d records to %s\n", ds.Len(), e.Name())
	}
	return errors.Join(errs...)
}
