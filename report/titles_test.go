package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"redhour/redmine"
	"redhour/worklog"
)

type fakeIssues struct {
	subjects map[int64]string
	calls    int
}

func (f *fakeIssues) GetIssue(_ context.Context, id int64) (redmine.Issue, error) {
	f.calls++
	subject, ok := f.subjects[id]
	if !ok {
		return redmine.Issue{}, errors.New("not found")
	}
	return redmine.Issue{ID: id, Subject: subject}, nil
}

func TestTitleResolver_FallbackAndCache(t *testing.T) {
	t.Parallel()

	client := &fakeIssues{subjects: map[int64]string{101: "Fix login"}}
	resolver := NewTitleResolver(client, nil)

	assert.Equal(t, "Fix login", resolver.Title(context.Background(), 101))
	assert.Equal(t, "Ticket 404", resolver.Title(context.Background(), 404))
	assert.Equal(t, "Fix login", resolver.Title(context.Background(), 101))
	assert.Equal(t, 2, client.calls)
}

func TestTitleResolver_ResolveAll(t *testing.T) {
	t.Parallel()

	summary := Aggregate([]worklog.Entry{
		entry("2024-05-03", "Alpha", 101, "3"),
		entry("2024-05-03", "Beta", 202, "1"),
	})
	titles := NewTitleResolver(&fakeIssues{subjects: map[int64]string{202: "Deploy"}}, nil).ResolveAll(context.Background(), summary)

	assert.Equal(t, map[int64]string{101: "Ticket 101", 202: "Deploy"}, titles)
}

func TestTitleResolver_NilClient(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ticket 5", NewTitleResolver(nil, nil).Title(context.Background(), 5))
}
