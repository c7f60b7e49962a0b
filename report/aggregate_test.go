package report

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redhour/worklog"
)

func entry(date, project string, ticket int64, hours string) worklog.Entry {
	return worklog.Entry{
		Date:     date,
		Project:  project,
		TicketID: ticket,
		Hours:    decimal.RequireFromString(hours),
		Control:  worklog.ControlApproved,
	}
}

func TestAggregate_SingleTicket(t *testing.T) {
	t.Parallel()

	summary := Aggregate([]worklog.Entry{
		entry("2024-05-03", "Alpha", 101, "3"),
		entry("2024-05-04", "Alpha", 101, "5"),
	})

	require.Len(t, summary.Projects, 1)
	alpha := summary.Projects[0]
	assert.Equal(t, "Alpha", alpha.Name)
	assert.True(t, alpha.Percent.Equal(decimal.NewFromInt(100)), "project percent %s", alpha.Percent)
	require.Len(t, alpha.Tickets, 1)
	assert.Equal(t, int64(101), alpha.Tickets[0].TicketID)
	assert.True(t, alpha.Tickets[0].Hours.Equal(decimal.NewFromInt(8)))
	assert.True(t, alpha.Tickets[0].Percent.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 2, summary.Days)
	assert.True(t, summary.TotalHours.Equal(decimal.NewFromInt(8)))
	assert.False(t, summary.Empty())
}

func TestAggregate_SortsAndSplits(t *testing.T) {
	t.Parallel()

	summary := Aggregate([]worklog.Entry{
		entry("2024-05-03", "Beta", 300, "1"),
		entry("2024-05-03", "Alpha", 202, "2.5"),
		entry("2024-05-06", "Alpha", 101, "4"),
		entry("2024-05-07", "Beta", 300, "0.5"),
	})

	require.Len(t, summary.Projects, 2)
	assert.Equal(t, "Alpha", summary.Projects[0].Name)
	assert.Equal(t, "Beta", summary.Projects[1].Name)
	assert.Equal(t, []int64{101, 202, 300}, summary.TicketIDs())
	assert.Equal(t, 3, summary.Days)

	assert.Equal(t, "50.0", summary.Projects[0].Tickets[0].Percent.StringFixed(1))
	assert.Equal(t, "31.3", summary.Projects[0].Tickets[1].Percent.StringFixed(1))
	assert.Equal(t, "18.8", summary.Projects[1].Percent.StringFixed(1))
}

func TestAggregate_PercentagesAddUp(t *testing.T) {
	t.Parallel()

	summary := Aggregate([]worklog.Entry{
		entry("2024-05-01", "Alpha", 1, "1"),
		entry("2024-05-02", "Alpha", 2, "1"),
		entry("2024-05-03", "Beta", 3, "1"),
		entry("2024-05-04", "Gamma", 4, "2.25"),
		entry("2024-05-05", "Gamma", 5, "0.75"),
	})

	overall := decimal.Zero
	for _, project := range summary.Projects {
		tickets := decimal.Zero
		for _, ticket := range project.Tickets {
			tickets = tickets.Add(ticket.Percent)
		}
		assert.True(t, tickets.Equal(project.Percent), "project %s: tickets %s vs project %s", project.Name, tickets, project.Percent)
		overall = overall.Add(project.Percent)
	}

	diff := overall.Sub(decimal.NewFromInt(100)).Abs()
	assert.True(t, diff.LessThan(decimal.RequireFromString("0.000001")), "overall %s", overall)
}

func TestAggregate_ZeroHours(t *testing.T) {
	t.Parallel()

	summary := Aggregate([]worklog.Entry{
		entry("2024-05-03", "Alpha", 101, "0"),
		entry("2024-05-04", "Beta", 102, "0"),
	})

	assert.True(t, summary.Empty())
	for _, project := range summary.Projects {
		assert.True(t, project.Percent.IsZero())
		for _, ticket := range project.Tickets {
			assert.True(t, ticket.Percent.IsZero())
		}
	}

	empty := Aggregate(nil)
	assert.True(t, empty.Empty())
	assert.Empty(t, empty.Projects)
	assert.Equal(t, 0, empty.Days)
}

func TestAggregate_Idempotent(t *testing.T) {
	t.Parallel()

	entries := []worklog.Entry{
		entry("2024-05-03", "Alpha", 101, "3"),
		entry("2024-05-04", "Beta", 202, "5"),
	}
	first := Aggregate(entries)
	second := Aggregate(entries)
	assert.Equal(t, flatten(first), flatten(second))
}

func flatten(summary Summary) []string {
	out := []string{fmt.Sprintf("total=%s days=%d", summary.TotalHours, summary.Days)}
	for _, project := range summary.Projects {
		out = append(out, fmt.Sprintf("%s %s", project.Name, project.Percent))
		for _, ticket := range project.Tickets {
			out = append(out, fmt.Sprintf("  %d %s %s", ticket.TicketID, ticket.Hours, ticket.Percent))
		}
	}
	return out
}
