package orbit

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-5, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-5, "z")
}

func TestRotateAroundAxis(t *testing.T) {
	x := math32.Vec3(1, 0, 0)
	assertVec(t, math32.Vec3(0, 0, -1), RotateAroundAxis(x, math32.Vec3(0, 1, 0), math32.Pi/2))
	assertVec(t, math32.Vec3(0, 1, 0), RotateAroundAxis(x, math32.Vec3(0, 0, 3), math32.Pi/2))
	assertVec(t, x, RotateAroundAxis(x, math32.Vec3(1, 0, 0), 1.234))
	assertVec(t, math32.Vec3(-1, 0, 0), RotateAroundAxis(x, math32.Vec3(0, 1, 0), math32.Pi))
}

func TestRotateCameraAroundTarget(t *testing.T) {
	target := math32.Vec3(1, 2, 3)
	cam := NewViewCamera(math32.Vec3(1, 2, 8), target, math32.Vec3(0, 1, 0))

	RotateCameraAroundTarget(cam, target, math32.Pi/2, 0)
	// Turning a quarter about the vertical axis moves the camera from the
	// front of the target to its side.
	assertVec(t, math32.Vec3(6, 2, 3), cam.Position())
	assertVec(t, math32.Vec3(0, 1, 0), cam.Up())

	RotateCameraAroundTarget(cam, target, 0, 0.3)
	assert.InDelta(t, 5, cam.Distance(), 1e-4)
	assert.InDelta(t, 0, cam.Up().Dot(cam.Forward()), 1e-5)
	assert.Equal(t, target, cam.Target())
}

func TestProject(t *testing.T) {
	cam := NewViewCamera(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))

	x, y, depth, ok := cam.Project(math32.Vec3(0, 0, 0), 1)
	assert.True(t, ok)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
	assert.InDelta(t, 10, depth, 1e-6)

	x, y, _, ok = cam.Project(math32.Vec3(1, 1, 0), 1)
	assert.True(t, ok)
	assert.Greater(t, x, float32(0))
	assert.Greater(t, y, float32(0))

	_, _, _, ok = cam.Project(math32.Vec3(0, 0, 20), 1)
	assert.False(t, ok)
}
