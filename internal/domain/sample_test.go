package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []Accident {
	out := make([]Accident, n)
	for i := range out {
		out[i] = Accident{ID: fmt.Sprintf("A-%d", i), Geo: Geo{Lat: float64(i) / 100, Lon: -float64(i) / 100}}
	}
	return out
}

func TestSample_SizeIsMinOfRequestAndRows(t *testing.T) {
	assert.Len(t, Sample(numbered(10_000), 5000, 1), 5000)
	assert.Len(t, Sample(numbered(42), 5000, 1), 42)
	assert.Empty(t, Sample(nil, 5000, 1))
	assert.Empty(t, Sample(numbered(5), 0, 1))
}

func TestSample_NoDuplicates(t *testing.T) {
	got := Sample(numbered(1000), 600, 7)

	seen := make(map[string]bool, len(got))
	for _, a := range got {
		assert.False(t, seen[a.ID], "duplicate %s", a.ID)
		seen[a.ID] = true
	}
}

func TestSample_Reproducible(t *testing.T) {
	in := numbered(300)

	a := Sample(in, 50, 42)
	b := Sample(in, 50, 42)
	c := Sample(in, 50, 43)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSample_DoesNotReorderInput(t *testing.T) {
	in := numbered(20)
	Sample(in, 10, 3)

	for i, a := range in {
		require.Equal(t, fmt.Sprintf("A-%d", i), a.ID)
	}
}

func TestDefaultSeed_UsesClock(t *testing.T) {
	at := time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })

	assert.Equal(t, uint64(at.UnixNano()), DefaultSeed())
}
