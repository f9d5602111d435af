package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	values := []float64{0, 2, 6, 12}
	got, err := Derive(len(values), Differences(values), []float64{1, 2, 0.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 12, 12}, got)
}

func TestDerive_ZeroDelta(t *testing.T) {
	values := []float64{1, 2, 3}
	_, err := Derive(len(values), Differences(values), []float64{1, 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZeroTimeDelta)

	var ie *IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 2, ie.Index)
}

func TestDerive_RejectsNonFiniteDeltas(t *testing.T) {
	values := []float64{1, 2, 3}
	for _, dt := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := Derive(len(values), Differences(values), []float64{1, dt})
		assert.Error(t, err, "dt=%v", dt)
	}
}

func TestDerive_ShapeErrors(t *testing.T) {
	_, err := Derive(1, Differences([]float64{1}), nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Derive(3, Differences([]float64{1, 2, 3}), []float64{1})
	assert.Error(t, err)
}

func TestEuclidean(t *testing.T) {
	a := TrackPoint{Latitude: 0, Longitude: 0}
	b := TrackPoint{Latitude: 3, Longitude: 4}
	assert.Equal(t, 5.0, Euclidean{}.Distance(a, b))
	assert.Equal(t, 5.0, Euclidean{}.Distance(b, a))
}

func TestDistanceFunc(t *testing.T) {
	calls := 0
	metric := DistanceFunc(func(a, b TrackPoint) float64 {
		calls++
		return 1
	})
	points := []TrackPoint{{}, {}, {}}
	diff := Separations(points, metric)
	assert.Equal(t, 1.0, diff(0))
	assert.Equal(t, 1.0, diff(1))
	assert.Equal(t, 2, calls)
}
