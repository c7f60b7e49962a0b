package submitter

import (
	"context"
	"fmt"
	"log/slog"

	"redhour/internal/classify"
	"redhour/internal/console"
	"redhour/internal/errs"
	"redhour/internal/logging"
	"redhour/redmine"
	"redhour/timesheet"
	"redhour/worklog"
)

type Options struct {
	DryRun          bool
	AllowDuplicates bool
}

// Result summarizes one load run.
type Result struct {
	Total         int
	Selected      int
	Created       int
	Skipped       int
	Failures      []*errs.RemoteCallError
	ControlColumn timesheet.ControlColumn
	DryRun        bool
}

// Failed reports whether any selected row could not be uploaded.
func (r Result) Failed() bool {
	return len(r.Failures) > 0
}

type Service struct {
	client  redmine.Client
	printer *console.Printer
	logger  *slog.Logger
}

func NewService(client redmine.Client, printer *console.Printer, logger *slog.Logger) *Service {
	if printer == nil {
		printer = console.New(nil)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{client: client, printer: printer, logger: logger}
}

// Submit uploads the approved rows of table one at a time. Schema problems
// are returned before any remote call; per-row failures are collected in the
// result and never stop the batch.
func (s *Service) Submit(ctx context.Context, table *timesheet.Table, opts Options) (Result, error) {
	control, err := timesheet.ResolveControlColumn(table)
	if err != nil {
		return Result{}, err
	}
	if err := timesheet.RequireColumns(table); err != nil {
		return Result{}, err
	}

	selected := timesheet.Select(table, control)
	result := Result{
		Total:         len(table.Records),
		Selected:      len(selected),
		ControlColumn: control,
		DryRun:        opts.DryRun,
		Failures:      make([]*errs.RemoteCallError, 0),
	}
	s.logger.Info("rows selected for upload", "total", result.Total, "selected", result.Selected, "control_column", control.Name)

	for _, record := range selected {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		s.submitRecord(ctx, record, control, opts, &result)
	}

	return result, nil
}

func (s *Service) submitRecord(ctx context.Context, record timesheet.Record, control timesheet.ControlColumn, opts Options, result *Result) {
	entry, err := timesheet.ParseEntry(record, control.Name)
	if err != nil {
		s.fail(result, record, err)
		return
	}

	token := classify.Token(entry)
	if opts.DryRun {
		s.printer.Info("Would create: %s", describe(entry))
		s.logger.Debug("dry run entry", "row", entry.RowNumber, "ticket", entry.TicketID, "date", entry.Date, "token", token)
		return
	}

	if !opts.AllowDuplicates {
		exists, err := s.exists(ctx, entry)
		if err != nil {
			s.fail(result, record, fmt.Errorf("check existing time entries: %w", err))
			return
		}
		if exists {
			result.Skipped++
			s.printer.Warn("Already uploaded, skipping: %s", describe(entry))
			s.logger.Info("duplicate time entry skipped", "row", entry.RowNumber, "ticket", entry.TicketID, "date", entry.Date, "token", token)
			return
		}
	}

	created, err := s.client.CreateTimeEntry(ctx, redmine.NewTimeEntry{
		IssueID:  entry.TicketID,
		SpentOn:  entry.Date,
		Hours:    entry.Hours,
		Comments: entry.Comment,
	})
	if err != nil {
		s.fail(result, record, fmt.Errorf("create time entry: %w", err))
		return
	}

	result.Created++
	s.printer.Success("Uploaded: %s", describe(entry))
	s.logger.Info("time entry created", "row", entry.RowNumber, "ticket", entry.TicketID, "date", entry.Date, "id", created.ID, "token", token)
}

func (s *Service) exists(ctx context.Context, entry worklog.Entry) (bool, error) {
	remote, err := s.client.ListTimeEntries(ctx, redmine.TimeEntryFilter{
		IssueID:  entry.TicketID,
		From:     entry.Date,
		To:       entry.Date,
		OnlyMine: true,
	})
	if err != nil {
		return false, err
	}
	existing := make([]worklog.Entry, 0, len(remote))
	for _, item := range remote {
		existing = append(existing, worklog.Entry{
			Date:     item.SpentOn,
			TicketID: item.IssueID(),
			Hours:    item.Hours,
			Comment:  item.Comments,
		})
	}
	return classify.IsDuplicate(entry, existing), nil
}

func (s *Service) fail(result *Result, record timesheet.Record, err error) {
	failure := &errs.RemoteCallError{
		RowNumber: record.RowNumber,
		TicketID:  record.Get(timesheet.ColumnTicket),
		Date:      record.Get(timesheet.ColumnDate),
		Err:       err,
	}
	result.Failures = append(result.Failures, failure)
	s.printer.Error("Could not upload row %d (ticket %s, %s): %v", failure.RowNumber, failure.TicketID, failure.Date, err)
	s.logger.Error("time entry upload failed", "row", failure.RowNumber, "ticket", failure.TicketID, "date", failure.Date, "error", err)
}

func describe(entry worklog.Entry) string {
	return fmt.Sprintf("ticket %d, %s, %sh, %q", entry.TicketID, entry.Date, entry.Hours.String(), entry.Comment)
}
