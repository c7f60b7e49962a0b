package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"redhour/config"
	"redhour/internal/console"
	"redhour/internal/logging"
	"redhour/output"
	"redhour/period"
	"redhour/redmine"
	"redhour/submitter"
	"redhour/timesheet"
)

type loadOptions struct {
	CreateCSV       bool
	Format          string
	PeriodFile      string
	DryRun          bool
	AllowDuplicates bool
	Timeout         time.Duration
}

var loadOpts = loadOptions{
	Format:  "csv",
	Timeout: 30 * time.Second,
}

var loadCmd = &cobra.Command{
	Use:   "load <spreadsheet>",
	Short: "Upload approved time sheet rows to Redmine as time entries.",
	Long: `Read a monthly time sheet, expand bare day numbers with the period marker and upload every
row whose "Subir?" column says SI (legacy sheets: "Cargada?") as a Redmine time entry.

Rows are processed one by one. A failing row is reported and the remaining rows are still
uploaded; the command exits with status 1 when any row failed.

Before creating an entry the command looks for an identical entry (same date, ticket, hours
and comment) of yours on the ticket and skips it, so re-running a sheet is safe.
Use --allow-duplicates to always create.

The period marker defaults to <sheet>/../../../Archivos/ultimo_mes.txt and must start with YYYY-MM.

With --create-csv nothing is uploaded: the normalized sheet is written to
<sheet>/../../<YYYY>/<csv_dir_name>/<name>.csv for the report command.`,
	Example: `
  # Preview the upload
  redhour load "Horas/2024/Mayo.ods" --dry-run

  # Upload approved rows
  redhour load "Horas/2024/Mayo.ods"

  # Write the normalized CSV used by "redhour report"
  redhour load "Horas/2024/Mayo.ods" --create-csv

  # Use an explicit period marker
  redhour load ./Mayo.xlsx --period-file ./ultimo_mes.txt
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		logger := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
		return runLoad(cmd.Context(), cfg, args[0], loadOpts, cmd.OutOrStdout(), logger, newRedmineClient)
	},
}

type clientFactory func(cfg *config.Config, timeout time.Duration) (redmine.Client, error)

func newRedmineClient(cfg *config.Config, timeout time.Duration) (redmine.Client, error) {
	client, err := redmine.NewClient(redmine.ClientConfig{
		BaseURL:    cfg.Redmine.URL,
		APIKey:     cfg.Redmine.APIKey,
		UserAgent:  "redhour/1.0",
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create redmine client: %w", err)
	}
	return client, nil
}

func runLoad(
	ctx context.Context,
	cfg *config.Config,
	sheetPath string,
	opts loadOptions,
	out io.Writer,
	logger *slog.Logger,
	newClient clientFactory,
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	printer := console.New(out)

	loaded, err := timesheet.Load(sheetPath)
	if err != nil {
		return err
	}
	table := loaded.Table
	printer.Info("Read %d rows from %s (%d rows without date ignored)", len(table.Records), sheetPath, loaded.Dropped)
	logger.Debug("time sheet loaded", "path", sheetPath, "rows", len(table.Records), "dropped", loaded.Dropped)

	markerPath, err := resolvePeriodFile(opts.PeriodFile, cfg.Paths.PeriodFile, sheetPath)
	if err != nil {
		return err
	}
	periodCtx, err := period.LoadFile(markerPath)
	if err != nil {
		return err
	}
	table.NormalizeDates(periodCtx)
	logger.Debug("dates normalized", "period", periodCtx.String(), "marker", markerPath)

	// Export and upload both require a complete sheet.
	control, err := timesheet.ResolveControlColumn(table)
	if err != nil {
		return err
	}
	if err := timesheet.RequireColumns(table); err != nil {
		return err
	}
	if control.Legacy {
		printer.Warn("Column %q is deprecated, rename it to %q", timesheet.ColumnControlLegacy, timesheet.ColumnControl)
	}

	if opts.CreateCSV {
		return exportTable(sheetPath, periodCtx, cfg.Paths.CSVDirName, opts.Format, table, printer)
	}

	var client redmine.Client
	if !opts.DryRun {
		if err := config.ValidateLoader(cfg); err != nil {
			return err
		}
		client, err = newClient(cfg, opts.Timeout)
		if err != nil {
			return err
		}
	}

	result, err := submitter.NewService(client, printer, logger).Submit(ctx, table, submitter.Options{
		DryRun:          opts.DryRun,
		AllowDuplicates: opts.AllowDuplicates,
	})
	if err != nil {
		return err
	}
	printer.Plain("%s", formatLoadSummary(result))
	if result.Failed() {
		return fmt.Errorf("%d of %d selected rows could not be uploaded", len(result.Failures), result.Selected)
	}
	return nil
}

func exportTable(sheetPath string, ctx period.Context, dirName, format string, table *timesheet.Table, printer *console.Printer) error {
	writer, err := output.WriterForFormat(format)
	if err != nil {
		return err
	}
	target, err := output.TargetPath(sheetPath, ctx, dirName, writer.Extension())
	if err != nil {
		return err
	}
	if err := output.Export(writer, target, table); err != nil {
		return err
	}
	printer.Success("Wrote %d rows to %s", len(table.Records), target)
	return nil
}

// resolvePeriodFile picks the marker: flag, then config, then the path derived from the sheet.
func resolvePeriodFile(flagValue, configured, sheetPath string) (string, error) {
	if value := strings.TrimSpace(flagValue); value != "" {
		return value, nil
	}
	if value := strings.TrimSpace(configured); value != "" {
		return value, nil
	}
	return period.DefaultMarkerPath(sheetPath)
}

func formatLoadSummary(result submitter.Result) string {
	if result.Selected == 0 {
		return fmt.Sprintf("No rows selected for upload (%d rows read).", result.Total)
	}
	if result.DryRun {
		return fmt.Sprintf("Dry run: %d of %d rows would be uploaded.", result.Selected, result.Total)
	}
	return fmt.Sprintf(
		"Uploaded %d, skipped %d, failed %d of %d selected rows (%d rows read).",
		result.Created,
		result.Skipped,
		len(result.Failures),
		result.Selected,
		result.Total,
	)
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().BoolVar(&loadOpts.CreateCSV, "create-csv", false, "Write the normalized sheet for the report command instead of uploading")
	loadCmd.Flags().StringVar(&loadOpts.Format, "format", loadOpts.Format, "Export format for --create-csv: csv|excel")
	loadCmd.Flags().StringVar(&loadOpts.PeriodFile, "period-file", "", "Period marker file (default: derived from the sheet location)")
	loadCmd.Flags().BoolVar(&loadOpts.DryRun, "dry-run", false, "Show what would be uploaded without calling Redmine")
	loadCmd.Flags().BoolVar(&loadOpts.AllowDuplicates, "allow-duplicates", false, "Create entries even when an identical one already exists")
	loadCmd.Flags().DurationVar(&loadOpts.Timeout, "timeout", loadOpts.Timeout, "Timeout per Redmine request")
}

