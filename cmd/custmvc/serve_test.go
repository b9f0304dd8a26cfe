package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "Database: ./data", max: 60, want: "Database: ./data"},
		{name: "exact", in: "abcdef", max: 6, want: "abcdef"},
		{name: "ascii", in: "abcdefghij", max: 6, want: "abc..."},
		{name: "multi-byte", in: "Database: /srv/kundér/ålänningar", max: 20, want: "Database: /srv/ku..."},
		{name: "cut inside multi-byte run", in: "ååååååååå", max: 6, want: "ååå..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.in, tc.max)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tc.max)
		})
	}

	t.Run("long path keeps rune count", func(t *testing.T) {
		got := truncate("Database: "+strings.Repeat("ö", 100), 60)
		assert.Equal(t, 60, utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, "..."))
	})
}
