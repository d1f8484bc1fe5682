package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps_HalfOpen(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 6, 3, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name                   string
		aStart, aEnd, bS, bEnd time.Time
		want                   bool
	}{
		{"identical", at(10, 0), at(10, 30), at(10, 0), at(10, 30), true},
		{"partial", at(10, 0), at(10, 30), at(10, 15), at(10, 45), true},
		{"contained", at(10, 0), at(11, 0), at(10, 15), at(10, 30), true},
		{"touching after", at(10, 0), at(10, 30), at(10, 30), at(11, 0), false},
		{"touching before", at(10, 30), at(11, 0), at(10, 0), at(10, 30), false},
		{"disjoint", at(9, 0), at(9, 30), at(10, 0), at(10, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bS, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bS, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
