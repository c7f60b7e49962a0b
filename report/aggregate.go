package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"redhour/worklog"
)

var hundred = decimal.NewFromInt(100)

type TicketSummary struct {
	TicketID int64
	Hours    decimal.Decimal
	Percent  decimal.Decimal
}

type ProjectSummary struct {
	Name    string
	Hours   decimal.Decimal
	Percent decimal.Decimal
	Tickets []TicketSummary
}

// Summary is the hour distribution of one month, projects sorted by name and
// tickets by id.
type Summary struct {
	Projects   []ProjectSummary
	TotalHours decimal.Decimal
	Days       int
}

// Empty reports a month without hours. Every percentage of an empty summary is zero.
func (s Summary) Empty() bool {
	return s.TotalHours.IsZero()
}

// TicketIDs lists every ticket of the summary in report order.
func (s Summary) TicketIDs() []int64 {
	ids := make([]int64, 0)
	for _, project := range s.Projects {
		for _, ticket := range project.Tickets {
			ids = append(ids, ticket.TicketID)
		}
	}
	return ids
}

// Aggregate groups entries by project and ticket. A project's percentage is
// the sum of its tickets' percentages.
func Aggregate(entries []worklog.Entry) Summary {
	byProject := make(map[string]map[int64]decimal.Decimal)
	days := make(map[string]struct{})
	total := decimal.Zero

	for _, entry := range entries {
		tickets, ok := byProject[entry.Project]
		if !ok {
			tickets = make(map[int64]decimal.Decimal)
			byProject[entry.Project] = tickets
		}
		tickets[entry.TicketID] = tickets[entry.TicketID].Add(entry.Hours)
		total = total.Add(entry.Hours)
		days[entry.Date] = struct{}{}
	}

	names := make([]string, 0, len(byProject))
	for name := range byProject {
		names = append(names, name)
	}
	sort.Strings(names)

	projects := make([]ProjectSummary, 0, len(names))
	for _, name := range names {
		tickets := byProject[name]
		ids := make([]int64, 0, len(tickets))
		for id := range tickets {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		project := ProjectSummary{
			Name:    name,
			Hours:   decimal.Zero,
			Percent: decimal.Zero,
			Tickets: make([]TicketSummary, 0, len(ids)),
		}
		for _, id := range ids {
			hours := tickets[id]
			percent := share(hours, total)
			project.Tickets = append(project.Tickets, TicketSummary{TicketID: id, Hours: hours, Percent: percent})
			project.Hours = project.Hours.Add(hours)
			project.Percent = project.Percent.Add(percent)
		}
		projects = append(projects, project)
	}

	return Summary{Projects: projects, TotalHours: total, Days: len(days)}
}

func share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}
