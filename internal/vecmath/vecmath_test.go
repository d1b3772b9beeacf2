package vecmath

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivByZero(t *testing.T) {
	v := mgl32.Vec3{2, 4, 0}
	got, err := Div(v, 0)
	require.ErrorIs(t, err, ErrDivideByZero)
	assert.Equal(t, v, got)

	got, err = Div(v, 2)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, got)
}

func TestNormalizeZero(t *testing.T) {
	_, err := Normalize(mgl32.Vec3{})
	assert.ErrorIs(t, err, ErrDivideByZero)

	n, err := Normalize(mgl32.Vec3{0, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n.Len(), 1e-6)
}

func TestAngleBetween(t *testing.T) {
	a, err := AngleBetween(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 90.0, a, 1e-4)

	a, err = AngleBetween(mgl32.Vec3{1, 1, 0}, mgl32.Vec3{2, 2, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, a, 1e-2)

	_, err = AngleBetween(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestTriangleArea(t *testing.T) {
	assert.InDelta(t, 0.5, TriangleArea(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}), 1e-6)
	assert.InDelta(t, 0.0, TriangleArea(mgl32.Vec3{1, 1, 0}, mgl32.Vec3{2, 2, 0}), 1e-6)
}

func TestRotateDeg(t *testing.T) {
	// +90 about +Y takes -Z to -X
	got, err := RotateDeg(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 2, 0}, 90)
	require.NoError(t, err)
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-5), "got %v", got)

	_, err = RotateDeg(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, 10)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestElevation(t *testing.T) {
	assert.InDelta(t, 45.0, Elevation(mgl32.Vec3{1, 1, 0}), 1e-4)
	assert.InDelta(t, 0.0, Elevation(mgl32.Vec3{0, 0, -3}), 1e-6)
	assert.InDelta(t, -90.0, Elevation(mgl32.Vec3{0, -1, 0}), 1e-4)
}
