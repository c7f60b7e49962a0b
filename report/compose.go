package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"

	"redhour/internal/timeutil"
	"redhour/period"
	"redhour/redmine"
)

// SignatureContentID is the Content-ID the body uses to reference the inline signature.
const SignatureContentID = "firma_digital"

//go:embed templates/mail.html.tmpl
var templateFS embed.FS

var mailTemplate = template.Must(
	template.New("mail.html.tmpl").
		Funcs(template.FuncMap{
			"hours":   formatHours,
			"percent": formatPercent,
		}).
		ParseFS(templateFS, "templates/mail.html.tmpl"),
)

// MailData is everything the body needs. Titles may miss tickets; those use
// the fallback title.
type MailData struct {
	Period  period.Context
	BaseURL string
	Summary Summary
	Titles  map[int64]string
}

type ticketView struct {
	URL     string
	Title   string
	Hours   decimal.Decimal
	Percent decimal.Decimal
}

type projectView struct {
	Name    string
	Percent decimal.Decimal
	Tickets []ticketView
}

type mailView struct {
	MonthName  string
	Days       int
	TotalHours decimal.Decimal
	Projects   []projectView
}

// Compose renders the HTML body. It performs no I/O.
func Compose(data MailData) (string, error) {
	view := mailView{
		MonthName:  timeutil.MonthName(data.Period.MonthNumber()),
		Days:       data.Summary.Days,
		TotalHours: data.Summary.TotalHours,
		Projects:   make([]projectView, 0, len(data.Summary.Projects)),
	}
	for _, project := range data.Summary.Projects {
		pv := projectView{
			Name:    project.Name,
			Percent: project.Percent,
			Tickets: make([]ticketView, 0, len(project.Tickets)),
		}
		for _, ticket := range project.Tickets {
			title, ok := data.Titles[ticket.TicketID]
			if !ok || title == "" {
				title = FallbackTitle(ticket.TicketID)
			}
			pv.Tickets = append(pv.Tickets, ticketView{
				URL:     redmine.IssueURL(data.BaseURL, ticket.TicketID),
				Title:   title,
				Hours:   ticket.Hours,
				Percent: ticket.Percent,
			})
		}
		view.Projects = append(view.Projects, pv)
	}

	var buf bytes.Buffer
	if err := mailTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render mail body: %w", err)
	}
	return buf.String(), nil
}

// Subject is the mail subject for a reporting month.
func Subject(ctx period.Context) string {
	return fmt.Sprintf("Imputación Horas/Proyecto - %s %s", timeutil.MonthName(ctx.MonthNumber()), ctx.Year)
}

func formatHours(value decimal.Decimal) string {
	return value.String()
}

func formatPercent(value decimal.Decimal) string {
	return value.StringFixed(1)
}
