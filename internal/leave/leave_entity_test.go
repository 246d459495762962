package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeTotalDays(t *testing.T) {
	d := func(s string) time.Time {
		v, _ := time.Parse(dateLayout, s)
		return v
	}

	tests := []struct {
		start, end string
		want       int
	}{
		{"2026-03-02", "2026-03-02", 1},
		{"2026-03-02", "2026-03-06", 5},
		{"2026-02-27", "2026-03-02", 4},
		{"2026-03-06", "2026-03-02", 0},
	}
	for _, tt := range tests {
		l := recomputeTotalDays(&Leave{StartDate: d(tt.start), EndDate: d(tt.end), TotalDays: 99})
		assert.Equal(t, tt.want, l.TotalDays, "%s..%s", tt.start, tt.end)
	}
}
