package progress

// Float is any floating point scalar that can be blended directly.
type Float interface {
	~float32 | ~float64
}

// Vector is a value that supports the weighted blend used by Value.
type Vector[V any] interface {
	Add(V) V
	Sub(V) V
	Scale(by float64) V
}

// Value blends between transformed and identity by p.Progress():
// the result is transformed at 0 and identity at 1.
func Value[V Float](p Progress, identity, transformed V) V {
	return transformed + (identity-transformed)*V(p.Progress())
}

// VectorValue is Value for vector-like types.
func VectorValue[V Vector[V]](p Progress, identity, transformed V) V {
	return transformed.Add(identity.Sub(transformed).Scale(p.Progress()))
}

// Interpolate blends linearly from a to b by t. It is the magnitude-driven
// counterpart of Value, used where direction does not matter.
func Interpolate[V Float](a, b V, t float64) V {
	return a + (b-a)*V(clamp(t))
}
