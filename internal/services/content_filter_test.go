package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilter(t *testing.T) {
	f := NewContentFilter()

	ok, _ := f.Check("pothole near the bus stop on Elm St")
	assert.True(t, ok)

	ok, reason := f.Check("fix this shit already")
	assert.False(t, ok)
	assert.Equal(t, "inappropriate_language", reason)

	ok, reason = f.Check("helloooooooooo anyone there")
	assert.False(t, ok)
	assert.Equal(t, "spam_detected", reason)

	ok, _ = f.Check("")
	assert.True(t, ok)
}

func TestRejectionMessages(t *testing.T) {
	f := NewContentFilter()
	assert.Equal(t, "description contains inappropriate language", f.RejectionMessage("inappropriate_language"))
	assert.Equal(t, "description appears to be spam", f.RejectionMessage("spam_detected"))
	assert.NotEmpty(t, f.RejectionMessage("unknown_reason"))
}
