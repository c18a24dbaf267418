package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMessageBody(t *testing.T) {
	body, err := SanitizeMessageBody("  hello there  ")
	assert.NoError(t, err)
	assert.Equal(t, "hello there", body)

	_, err = SanitizeMessageBody("   ")
	assert.Error(t, err)

	_, err = SanitizeMessageBody(strings.Repeat("a", MaxMessageLength+1))
	assert.Error(t, err)

	body, err = SanitizeMessageBody(`before<script>alert(1)</script>after`)
	assert.NoError(t, err)
	assert.Equal(t, "beforeafter", body)

	body, err = SanitizeMessageBody(`<img src=x onerror=alert(1)>`)
	assert.NoError(t, err)
	assert.NotContains(t, body, "onerror=")
}
