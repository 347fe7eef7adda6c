package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"raplacal/internal/calendar"
	"raplacal/internal/config"
	"raplacal/internal/event"
	"raplacal/internal/logger"
	"raplacal/internal/scraper"
	"raplacal/internal/storage"
)

var (
	flagArchive string
	flagConfig  string
	flagVerbose bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raplacal <input> <output>",
		Short: "Transpile Rapla HTML exports to iCalendar files",
		Long: `Reads a downloaded Rapla month-view HTML export and writes an iCalendar
file. With --archive, freshly scraped months are merged over the persisted
archive so the calendar keeps covering months the site no longer serves.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(args[0], args[1], flagArchive, flagConfig, flagVerbose)
		},
	}

	cmd.Flags().StringVarP(&flagArchive, "archive", "a", "", "Archive file; enables merging with previous runs")
	cmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file overriding the built-in defaults")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and extraction counters")

	return cmd
}

// run executes the pipeline: extract, optionally merge with the archive,
// serialize.
func run(inputPath, outputPath, archivePath, configPath string, verbose bool) error {
	if verbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer input.Close()

	months, err := scraper.New(loc).LoadEvents(input)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	logger.Info("extracted events", logger.Fields{
		"months": len(months),
	})

	if archivePath != "" {
		months = mergeArchive(archivePath, months)
	}

	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}

	writer := &calendar.Writer{
		ProdID:  cfg.ProdID,
		Domain:  cfg.UIDDomain,
		Contact: cfg.Contact,
	}
	if err := writer.WriteCalendar(output, months.Flatten()); err != nil {
		output.Close()
		return fmt.Errorf("writing calendar: %w", err)
	}
	if err := output.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	if verbose {
		counters := logger.CountersSnapshot()
		fields := make(logger.Fields, len(counters))
		for name, count := range counters {
			fields[name] = count
		}
		logger.Info("extraction counters", fields)
	}

	return nil
}

// mergeArchive folds the fresh months over the persisted archive and writes
// the result back. Any archive failure degrades: a failed read means a
// fresh-only calendar, a failed write is reported but calendar output still
// happens.
func mergeArchive(archivePath string, fresh event.Months) event.Months {
	archive, err := storage.New(archivePath)
	if err != nil {
		logger.Warn("skipping archive", logger.Fields{
			"path":  archivePath,
			"error": err.Error(),
		})
		return fresh
	}

	months := fresh
	if archived, err := archive.Load(); err != nil {
		logger.Warn("failed to read archive", logger.Fields{
			"path":  archive.Path(),
			"error": err.Error(),
		})
	} else {
		months = event.Merge(fresh, archived)
	}

	if err := archive.Save(months); err != nil {
		logger.Warn("failed to write archive", logger.Fields{
			"path":  archive.Path(),
			"error": err.Error(),
		})
	}
	return months
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
