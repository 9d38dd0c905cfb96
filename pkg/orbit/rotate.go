package orbit

import "cogentcore.org/core/math32"

// RotateAroundAxis rotates v about axis by angle radians, counter-clockwise
// when looking down the axis. axis need not be normalized.
func RotateAroundAxis(v, axis math32.Vector3, angle float32) math32.Vector3 {
	axis = axis.Normal()
	s, c := math32.Sincos(angle / 2)
	q := math32.NewQuat(axis.X*s, axis.Y*s, axis.Z*s, c)
	q.Normalize()
	return v.MulQuat(q)
}

// RotateCameraAroundTarget orbits cam around target, first by theta about
// the camera's vertical axis and then by phi about its horizontal axis. The
// distance to the target is kept and the camera keeps facing it.
func RotateCameraAroundTarget(cam Camera, target math32.Vector3, theta, phi float32) {
	offset := cam.Position().Sub(target)
	if offset.Length() == 0 {
		return
	}
	dir := offset.MulScalar(-1).Normal()
	horizontal := dir.Cross(cam.Up())
	if horizontal.Length() == 0 {
		return
	}
	horizontal = horizontal.Normal()
	vertical := horizontal.Cross(dir).Normal()

	offset = RotateAroundAxis(offset, vertical, theta)
	horizontal = RotateAroundAxis(horizontal, vertical, theta)

	offset = RotateAroundAxis(offset, horizontal, phi)
	up := RotateAroundAxis(vertical, horizontal, phi)

	cam.SetView(target.Add(offset), target, up)
}
