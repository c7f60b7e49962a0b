package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"redhour/archive"
	"redhour/config"
	"redhour/internal/console"
	"redhour/internal/logging"
	"redhour/mailer"
	"redhour/report"
)

type reportOptions struct {
	NoArchive bool
	Timeout   time.Duration
}

var reportOpts = reportOptions{Timeout: 30 * time.Second}

type dispatcherFactory func(cfg *config.Config, timeout time.Duration) (*mailer.Dispatcher, error)

type reportDeps struct {
	newClient     clientFactory
	newDispatcher dispatcherFactory
}

var reportCmd = &cobra.Command{
	Use:   "report <csv>",
	Short: "Mail the monthly hours/project distribution and archive it as Markdown.",
	Long: `Read the monthly CSV written by "redhour load --create-csv", group hours by project and
ticket, look up ticket titles in Redmine and send the distribution mail (HTML body with the
inline signature image) over SMTP with STARTTLS.

After a successful send a Markdown copy is written to <mail_dir>/<YYYY>/<MM>_mail_redmine.md.
Nothing is archived when sending fails.`,
	Example: `
  # Send the report for May
  redhour report "Horas/2024/CSV Files for Script/Mayo.csv"

  # Send without writing the Markdown copy
  redhour report ./2024-05.csv --no-archive
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		logger := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
		deps := reportDeps{newClient: newRedmineClient, newDispatcher: newSMTPDispatcher}
		return runReport(cmd.Context(), cfg, args[0], reportOpts, cmd.OutOrStdout(), logger, deps)
	},
}

func newSMTPDispatcher(cfg *config.Config, timeout time.Duration) (*mailer.Dispatcher, error) {
	return mailer.NewDispatcher(mailer.SMTPConfig{
		Host:     cfg.SMTP.Server,
		Port:     cfg.SMTP.Port,
		Username: cfg.Mail.From,
		Password: cfg.SMTP.Password,
		Timeout:  timeout,
	})
}

func runReport(
	ctx context.Context,
	cfg *config.Config,
	csvPath string,
	opts reportOptions,
	out io.Writer,
	logger *slog.Logger,
	deps reportDeps,
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	printer := console.New(out)

	if err := config.ValidateReporter(cfg); err != nil {
		return err
	}
	to, err := mailer.ParseRecipients(cfg.Mail.To)
	if err != nil {
		return fmt.Errorf("mail.to: %w", err)
	}
	cc, err := mailer.ParseRecipients(cfg.Mail.Cc)
	if err != nil {
		return fmt.Errorf("mail.cc: %w", err)
	}

	entries, err := report.ReadEntries(csvPath)
	if err != nil {
		return err
	}
	periodCtx, err := report.Period(entries)
	if err != nil {
		return err
	}

	summary := report.Aggregate(entries)
	printer.Heading("%s: %s hours over %d days", periodCtx.String(), summary.TotalHours.String(), summary.Days)
	if summary.Empty() {
		printer.Warn("No hours recorded for %s, all percentages are 0", periodCtx.String())
	}
	logger.Info("report aggregated", "period", periodCtx.String(), "projects", len(summary.Projects), "days", summary.Days, "hours", summary.TotalHours.String())

	client, err := deps.newClient(cfg, opts.Timeout)
	if err != nil {
		return err
	}
	titles := report.NewTitleResolver(client, logger).ResolveAll(ctx, summary)

	body, err := report.Compose(report.MailData{
		Period:  periodCtx,
		BaseURL: cfg.Redmine.URL,
		Summary: summary,
		Titles:  titles,
	})
	if err != nil {
		return err
	}
	subject := report.Subject(periodCtx)

	msg, embedded, err := mailer.BuildMessage(mailer.Envelope{
		FromName:           cfg.Mail.FromName,
		From:               cfg.Mail.From,
		To:                 to,
		Cc:                 cc,
		Subject:            subject,
		HTML:               body,
		SignaturePath:      cfg.Paths.SignatureImage,
		SignatureContentID: report.SignatureContentID,
	})
	if err != nil {
		return err
	}
	if !embedded && cfg.Paths.SignatureImage != "" {
		printer.Warn("Signature image %s not found, sending without it", cfg.Paths.SignatureImage)
	}

	dispatcher, err := deps.newDispatcher(cfg, opts.Timeout)
	if err != nil {
		return err
	}
	if err := dispatcher.Send(ctx, msg); err != nil {
		printer.Error("Could not send mail: %v", err)
		return err
	}
	printer.Success("Mail sent to %s", joinNonEmpty(mailer.Join(to), mailer.Join(cc)))
	logger.Info("mail sent", "subject", subject, "to", mailer.Addresses(to), "cc", mailer.Addresses(cc))

	if opts.NoArchive {
		return nil
	}
	path, err := archive.Write(cfg.Paths.MailDir, periodCtx, archive.Header{
		To:      mailer.Join(to),
		Cc:      mailer.Join(cc),
		Subject: subject,
	}, body)
	if err != nil {
		return err
	}
	printer.Success("Mail archived at %s", path)
	return nil
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	return out
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportOpts.NoArchive, "no-archive", false, "Do not write the Markdown copy of the mail")
	reportCmd.Flags().DurationVar(&reportOpts.Timeout, "timeout", reportOpts.Timeout, "Timeout for Redmine requests and the SMTP session")
}
