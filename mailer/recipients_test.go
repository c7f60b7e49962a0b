package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipients(t *testing.T) {
	t.Parallel()

	recipients, err := ParseRecipients(" Ana Pérez <ana@example.com>, bob@example.com ,, ")
	require.NoError(t, err)
	require.Len(t, recipients, 2)

	assert.Equal(t, Recipient{Name: "Ana Pérez", Address: "ana@example.com"}, recipients[0])
	assert.Equal(t, Recipient{Address: "bob@example.com"}, recipients[1])
	assert.Equal(t, "Ana Pérez <ana@example.com>", recipients[0].String())
	assert.Equal(t, "bob@example.com", recipients[1].String())
	assert.Equal(t, []string{"ana@example.com", "bob@example.com"}, Addresses(recipients))
	assert.Equal(t, "Ana Pérez <ana@example.com>, bob@example.com", Join(recipients))
}

func TestParseRecipients_Empty(t *testing.T) {
	t.Parallel()

	recipients, err := ParseRecipients("  ")
	require.NoError(t, err)
	assert.Empty(t, recipients)
}

func TestParseRecipients_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseRecipients("ana@example.com, not an address")
	assert.ErrorContains(t, err, "not an address")
}
