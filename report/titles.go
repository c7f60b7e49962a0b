package report

import (
	"context"
	"fmt"
	"log/slog"

	"redhour/internal/logging"
	"redhour/redmine"
)

type IssueGetter interface {
	GetIssue(ctx context.Context, id int64) (redmine.Issue, error)
}

// TitleResolver looks up ticket subjects, falling back to "Ticket <id>" when
// the tracker cannot answer.
type TitleResolver struct {
	client IssueGetter
	logger *slog.Logger
	cache  map[int64]string
}

func NewTitleResolver(client IssueGetter, logger *slog.Logger) *TitleResolver {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TitleResolver{client: client, logger: logger, cache: make(map[int64]string)}
}

func (r *TitleResolver) Title(ctx context.Context, id int64) string {
	if title, ok := r.cache[id]; ok {
		return title
	}

	title := FallbackTitle(id)
	if r.client != nil {
		issue, err := r.client.GetIssue(ctx, id)
		switch {
		case err != nil:
			r.logger.Debug("issue lookup failed, using fallback title", "ticket", id, "error", err)
		case issue.Subject == "":
			r.logger.Debug("issue has no subject, using fallback title", "ticket", id)
		default:
			title = issue.Subject
		}
	}

	r.cache[id] = title
	return title
}

// ResolveAll fetches the title of every ticket in the summary.
func (r *TitleResolver) ResolveAll(ctx context.Context, summary Summary) map[int64]string {
	titles := make(map[int64]string)
	for _, id := range summary.TicketIDs() {
		titles[id] = r.Title(ctx, id)
	}
	return titles
}

func FallbackTitle(id int64) string {
	return fmt.Sprintf("Ticket %d", id)
}
