package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Wednesday
var anchor = time.Date(2026, 8, 19, 10, 30, 0, 0, time.UTC)

func TestResolveDueDate(t *testing.T) {
	tests := []struct {
		expr   string
		want   string
		wantOk bool
	}{
		{"morgen", "2026-08-20", true},
		{"tomorrow", "2026-08-20", true},
		{"heute", "2026-08-19", true},
		{"übermorgen", "2026-08-21", true},
		{"nächste woche", "2026-08-26", true},
		{"next week", "2026-08-26", true},
		{"freitag", "2026-08-21", true},
		{"am freitag", "2026-08-21", true},
		{"monday", "2026-08-24", true},
		// the anchor is a Wednesday; a bare "mittwoch" means next week's
		{"mittwoch", "2026-08-26", true},
		{"in 3 tagen", "2026-08-22", true},
		{"in 1 tag", "2026-08-20", true},
		{"in 2 wochen", "2026-09-02", true},
		{"in 10 days", "2026-08-29", true},
		{"2026-12-24", "2026-12-24", true},
		{"not-a-date", "", false},
		{"", "", false},
		{"irgendwann", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, ok := ResolveDueDate(tt.expr, anchor)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDueDateCaseAndSpace(t *testing.T) {
	got, ok := ResolveDueDate("  Morgen ", anchor)
	assert.True(t, ok)
	assert.Equal(t, "2026-08-20", got)
}
