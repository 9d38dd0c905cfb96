package dynamics

// Scalar is a float32 usable with SecondOrderSystem.
type Scalar float32

// Add returns s + o.
func (s Scalar) Add(o Scalar) Scalar { return s + o }

// MulScalar returns s * f.
func (s Scalar) MulScalar(f float32) Scalar { return s * Scalar(f) }
