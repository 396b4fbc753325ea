package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPeriod(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{7, 7},
		{30, 30},
		{90, 90},
		{0, 30},
		{-5, 30},
		{14, 30},
		{365, 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampPeriod(tt.in), "period %d", tt.in)
	}
}
