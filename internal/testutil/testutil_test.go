package testutil

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertNoError(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
}

func TestAssertError(t *testing.T) {
	t.Parallel()

	AssertError(t, errors.New("boom"))
}

func TestClock(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "00:00:00", Clock(0))
	assert.Equal(t, "12:00:59", Clock(12*3600+59))
	assert.Equal(t, "12:01:00", Clock(12*3600+60))
	assert.Equal(t, "23:59:59", Clock(24*3600-1))
}

func TestStraightTrack(t *testing.T) {
	t.Parallel()

	pts := StraightTrack(3, 0.5, 59)
	require.Len(t, pts, 3)
	assert.Equal(t, "00:00:59", pts[0].Timestamp)
	assert.Equal(t, "00:01:00", pts[1].Timestamp)
	assert.Equal(t, 1.0, pts[2].Latitude)
}

func TestTrackAt(t *testing.T) {
	t.Parallel()

	pts := TrackAt(1, "10:00:10", "10:00:10", "10:00:11")
	require.Len(t, pts, 3)
	assert.Equal(t, "10:00:10", pts[1].Timestamp)
	assert.Equal(t, 2.0, pts[2].Latitude)
}

func TestGPXDocument(t *testing.T) {
	t.Parallel()

	doc := GPXDocument(TrackAt(1, "10:00:10", "10:00:11"))
	assert.Equal(t, 2, strings.Count(doc, "<trkpt"))
	assert.Contains(t, doc, "<time>2024-05-01T10:00:11Z</time>")
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := WriteFile(t, "a.txt", "hello")
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}
