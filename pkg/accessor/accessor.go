package accessor

// Accessor reads and writes one logical property of a target.
//
// Matches reports whether other addresses the same property slot. It says
// nothing about current values. Implementations must be symmetric and must
// return false for accessors of a different concrete type.
type Accessor[T, V any] interface {
	Get(target T) V
	Set(target T, value V)
	Matches(other Accessor[T, V]) bool
}

// Keyed is implemented by accessors that can name the property they address.
type Keyed interface {
	Key() string
}

// Field is an accessor built from an explicit getter and setter, identified
// by a stable key. Two fields match when their keys are equal.
type Field[T, V any] struct {
	key string
	get func(T) V
	set func(T, V)
}

// New returns a Field accessor. A nil getter reads the zero value and a nil
// setter discards writes.
func New[T, V any](key string, get func(T) V, set func(T, V)) Field[T, V] {
	return Field[T, V]{key: key, get: get, set: set}
}

// Ptr returns a Field accessor that reads and writes through the pointer
// returned by ref. A nil pointer reads the zero value and discards writes.
func Ptr[T, V any](key string, ref func(T) *V) Field[T, V] {
	return Field[T, V]{
		key: key,
		get: func(t T) V {
			if p := ref(t); p != nil {
				return *p
			}
			var zero V
			return zero
		},
		set: func(t T, v V) {
			if p := ref(t); p != nil {
				*p = v
			}
		},
	}
}

func (f Field[T, V]) Key() string {
	return f.key
}

func (f Field[T, V]) Get(target T) V {
	if f.get == nil {
		var zero V
		return zero
	}
	return f.get(target)
}

func (f Field[T, V]) Set(target T, value V) {
	if f.set == nil {
		return
	}
	f.set(target, value)
}

func (f Field[T, V]) Matches(other Accessor[T, V]) bool {
	o, ok := other.(Field[T, V])
	return ok && o.key == f.key
}

// Mapped is an accessor re-targeted onto N through a projection to T.
type Mapped[N, T, V any] struct {
	base      Accessor[T, V]
	transform func(N) T
}

// MapTarget returns an accessor usable on N that funnels every call
// through f.
func MapTarget[N, T, V any](a Accessor[T, V], f func(N) T) Mapped[N, T, V] {
	return Mapped[N, T, V]{base: a, transform: f}
}

func (m Mapped[N, T, V]) Key() string {
	return keyOf(m.base)
}

func (m Mapped[N, T, V]) Get(target N) V {
	return m.base.Get(m.transform(target))
}

func (m Mapped[N, T, V]) Set(target N, value V) {
	m.base.Set(m.transform(target), value)
}

// Matches compares the underlying accessors. The projection itself is not
// part of the identity.
func (m Mapped[N, T, V]) Matches(other Accessor[N, V]) bool {
	o, ok := other.(Mapped[N, T, V])
	return ok && m.base.Matches(o.base)
}

func (m Mapped[N, T, V]) projectedScope() string { return "" }
func (m Mapped[N, T, V]) projectedInner() erasedMatcher {
	return Erase(m.base)
}

// Tuple holds the two values addressed by a PairAccessor.
type Tuple[A, B any] struct {
	First  A
	Second B
}

// PairAccessor addresses two properties of the same target as one slot.
type PairAccessor[T, A, B any] struct {
	first  Accessor[T, A]
	second Accessor[T, B]
}

// Pair joins two accessors. The pair matches another pair only when both
// halves match.
func Pair[T, A, B any](first Accessor[T, A], second Accessor[T, B]) PairAccessor[T, A, B] {
	return PairAccessor[T, A, B]{first: first, second: second}
}

func (p PairAccessor[T, A, B]) Key() string {
	return keyOf(p.first) + "+" + keyOf(p.second)
}

func (p PairAccessor[T, A, B]) Get(target T) Tuple[A, B] {
	return Tuple[A, B]{First: p.first.Get(target), Second: p.second.Get(target)}
}

func (p PairAccessor[T, A, B]) Set(target T, value Tuple[A, B]) {
	p.first.Set(target, value.First)
	p.second.Set(target, value.Second)
}

func (p PairAccessor[T, A, B]) Matches(other Accessor[T, Tuple[A, B]]) bool {
	o, ok := other.(PairAccessor[T, A, B])
	return ok && p.first.Matches(o.first) && p.second.Matches(o.second)
}

func keyOf(v any) string {
	if k, ok := v.(Keyed); ok {
		return k.Key()
	}
	return "?"
}
