// Package classify decides whether a local time entry already exists remotely.
package classify

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"redhour/worklog"
)

// tokenNamespace scopes submission tokens so they never collide with other
// name-based UUIDs.
var tokenNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("redhour/time-entry"))

// Token identifies a time entry by its content. Two entries with the same
// date, ticket, hours and comment share a token.
func Token(entry worklog.Entry) uuid.UUID {
	name := strings.Join([]string{
		strings.TrimSpace(entry.Date),
		strconv.FormatInt(entry.TicketID, 10),
		entry.Hours.StringFixed(2),
		strings.TrimSpace(entry.Comment),
	}, "|")
	return uuid.NewSHA1(tokenNamespace, []byte(name))
}

// IsDuplicate reports whether any existing entry carries the candidate's token.
func IsDuplicate(candidate worklog.Entry, existing []worklog.Entry) bool {
	token := Token(candidate)
	for _, entry := range existing {
		if Token(entry) == token {
			return true
		}
	}
	return false
}
