package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplineNeedsTwoPoints(t *testing.T) {
	_, err := NewSpline([]Point{{0, 1}})
	assert.Error(t, err)
	_, err = SplineFromPairs([][]float64{{0, 1}, {1}})
	assert.Error(t, err)
}

func TestSplineClampsAndHitsControlPoints(t *testing.T) {
	s, err := SplineFromPairs([][]float64{{1, 10}, {-1, 0}, {0, 4}})
	require.NoError(t, err)

	assert.Equal(t, 0.0, s.Eval(-5))
	assert.Equal(t, 10.0, s.Eval(5))
	assert.Equal(t, 10.0, s.Eval(1))
	assert.InDelta(t, 4.0, s.Eval(0), 1e-9)
	assert.InDelta(t, 0.0, s.Eval(-1), 1e-9)
}

func TestSplineTwoPointsIsSymmetric(t *testing.T) {
	s, err := NewSpline([]Point{{-1, -1}, {1, 1}})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, s.Eval(0), 1e-9)
	for _, v := range []float64{0.1, 0.4, 0.8} {
		assert.InDelta(t, -s.Eval(v), s.Eval(-v), 1e-9)
		assert.Greater(t, s.Eval(v), 0.0)
		assert.LessOrEqual(t, s.Eval(v), 1.0)
	}
}

func TestSplineMonotoneSegment(t *testing.T) {
	s, err := NewSpline([]Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}})
	require.NoError(t, err)
	prev := s.Eval(0)
	for x := 0.05; x <= 3; x += 0.05 {
		v := s.Eval(x)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}
