package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seongmin-dev/kpx-smp-bot/internal/smp"
)

func TestStatusStoreRecordAndLatest(t *testing.T) {
	s := NewStatusStore()

	_, ok := s.Latest(smp.RegionMainland)
	assert.False(t, ok)

	first := smp.RunStatus{Region: smp.RegionMainland, When: time.Now(), OK: false, Error: "boom"}
	s.Record(first)

	got, ok := s.Latest(smp.RegionMainland)
	require.True(t, ok)
	assert.Equal(t, first, got)

	// A newer run overwrites the previous one for the same region.
	second := smp.RunStatus{Region: smp.RegionMainland, When: time.Now(), OK: true, ReportLength: 1234}
	s.Record(second)

	got, ok = s.Latest(smp.RegionMainland)
	require.True(t, ok)
	assert.Equal(t, second, got)

	// Regions are tracked independently.
	_, ok = s.Latest(smp.RegionJeju)
	assert.False(t, ok)
}
