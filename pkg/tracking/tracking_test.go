package tracking

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCodeFormat(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	code := NewCode(now)

	assert.True(t, strings.HasPrefix(code, "MZF2025"), "got %q", code)
	// Snowflake suffixes are all digits; the KSUID fallback is alphanumeric.
	assert.Regexp(t, regexp.MustCompile(`^MZF2025[0-9A-Za-z]+$`), code)
}

func TestNewCodeIsUnique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := NewCode(now)
		assert.False(t, seen[code], "duplicate code %q", code)
		seen[code] = true
	}
}
