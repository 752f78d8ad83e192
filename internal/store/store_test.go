package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogtools/ahsync/internal/domain"
)

func openTestStore(t *testing.T) *PriceStore {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadEmpty(t *testing.T) {
	s := openTestStore(t)

	medians, err := s.LoadMedians("Asura")
	require.NoError(t, err)
	assert.Empty(t, medians)

	lastSales, err := s.LoadLastSales("Asura")
	require.NoError(t, err)
	assert.Empty(t, lastSales)

	times, err := s.LoadFetchTimes("Asura")
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestMediansRoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveMedians("Asura", map[int]string{
		640: "1,200",
		641: "N/A",
	}))

	medians, err := s.LoadMedians("Asura")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{640: "1,200", 641: "N/A"}, medians)
}

func TestLoadNormalizesLegacyZero(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveMedians("Asura", map[int]string{640: "0", 641: ""}))

	medians, err := s.LoadMedians("Asura")
	require.NoError(t, err)
	assert.Equal(t, domain.PriceUnavailable, medians[640])
	assert.Equal(t, domain.PriceUnavailable, medians[641])
}

func TestSaveReplacesWholeMap(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveLastSales("Asura", map[int]string{1: "100", 2: "200"}))
	require.NoError(t, s.SaveLastSales("Asura", map[int]string{1: "150"}))

	lastSales, err := s.LoadLastSales("Asura")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "150"}, lastSales, "entries absent from the save are dropped")
}

func TestServersIsolated(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveMedians("Asura", map[int]string{640: "1,200"}))
	require.NoError(t, s.SaveMedians("Bahamut", map[int]string{640: "900"}))

	asura, err := s.LoadMedians("Asura")
	require.NoError(t, err)
	bahamut, err := s.LoadMedians("Bahamut")
	require.NoError(t, err)

	assert.Equal(t, "1,200", asura[640])
	assert.Equal(t, "900", bahamut[640])
}

func TestFetchTimesRoundTrip(t *testing.T) {
	s := openTestStore(t)

	fetched := time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)
	require.NoError(t, s.SaveFetchTimes("Asura", map[int]time.Time{640: fetched}))

	times, err := s.LoadFetchTimes("Asura")
	require.NoError(t, err)
	assert.Equal(t, fetched, times[640], "second precision survives the round trip")
}

func TestInvalidateServer(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveMedians("Asura", map[int]string{640: "1,200"}))
	require.NoError(t, s.SaveLastSales("Asura", map[int]string{640: "1,100"}))
	require.NoError(t, s.SaveFetchTimes("Asura", map[int]time.Time{640: time.Now()}))
	require.NoError(t, s.SaveMedians("Bahamut", map[int]string{640: "900"}))

	require.NoError(t, s.InvalidateServer("Asura"))

	medians, err := s.LoadMedians("Asura")
	require.NoError(t, err)
	assert.Empty(t, medians)

	bahamut, err := s.LoadMedians("Bahamut")
	require.NoError(t, err)
	assert.Equal(t, "900", bahamut[640], "other servers untouched")
}
