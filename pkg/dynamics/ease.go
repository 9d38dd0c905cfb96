package dynamics

import "cogentcore.org/core/math32"

// Ease maps linear progress t in [0, 1] onto an S-curve with sharpness a:
//
//	t^a / (t^a + (1-t)^a)
//
// a = 1 is linear. t is clamped to [0, 1] and a <= 0 is treated as 1.
func Ease(t, a float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if !(a > 0) {
		return t
	}
	ta := math32.Pow(t, a)
	return ta / (ta + math32.Pow(1-t, a))
}
