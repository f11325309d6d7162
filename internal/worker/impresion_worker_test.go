package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeRetryBackoff(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 30 * time.Second},
		{2, time.Minute},
		{3, 2 * time.Minute},
		{4, 4 * time.Minute},
		{5, 8 * time.Minute},
		{6, 10 * time.Minute}, // capped
		{10, 10 * time.Minute},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, computeRetryBackoff(c.attempt), "attempt %d", c.attempt)
	}
}
