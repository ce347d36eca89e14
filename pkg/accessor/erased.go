package accessor

// Erased hides the value type of an accessor so that accessors over
// different value types can live in one slice. The zero value reads nil,
// ignores writes and matches nothing.
type Erased[T any] struct {
	base  any
	get   func(T) any
	set   func(T, any)
	match func(otherBase any) bool
}

// Erase wraps a typed accessor.
func Erase[T, V any](a Accessor[T, V]) Erased[T] {
	return Erased[T]{
		base: a,
		get: func(t T) any {
			return a.Get(t)
		},
		set: func(t T, v any) {
			typed, ok := v.(V)
			if !ok {
				return
			}
			a.Set(t, typed)
		},
		match: func(otherBase any) bool {
			if o, ok := otherBase.(Accessor[T, V]); ok && a.Matches(o) {
				return true
			}
			return projectionsMatch(a, otherBase)
		},
	}
}

// Get returns the current value of the property on target.
func (e Erased[T]) Get(target T) any {
	if e.get == nil {
		return nil
	}
	return e.get(target)
}

// Set writes value to target. Values whose dynamic type is not the
// accessor's value type are dropped.
func (e Erased[T]) Set(target T, value any) {
	if e.set == nil {
		return
	}
	e.set(target, value)
}

// Matches reports whether both accessors address the same property slot.
func (e Erased[T]) Matches(other Erased[T]) bool {
	if e.match == nil || other.base == nil {
		return false
	}
	return e.match(other.base)
}

// Key names the addressed property, or "?" when the accessor is anonymous.
func (e Erased[T]) Key() string {
	return keyOf(e.base)
}

func (e Erased[T]) matchesErased(other any) bool {
	o, ok := other.(Erased[T])
	return ok && e.Matches(o)
}

// IsZero reports whether e wraps no accessor.
func (e Erased[T]) IsZero() bool {
	return e.base == nil
}

type erasedMatcher interface {
	matchesErased(other any) bool
}

// projection is a re-targeted accessor: MapTarget on the typed side,
// MapScoped on the erased side. Both forms of the same projection address
// one slot.
type projection interface {
	projectedScope() string
	projectedInner() erasedMatcher
}

func projectionsMatch(a, b any) bool {
	pa, ok := a.(projection)
	if !ok {
		return false
	}
	pb, ok := b.(projection)
	if !ok || pa.projectedScope() != pb.projectedScope() {
		return false
	}
	return pa.projectedInner().matchesErased(pb.projectedInner())
}

type mappedBase[N, T any] struct {
	scope string
	inner Erased[T]
}

func (m mappedBase[N, T]) Key() string {
	if m.scope == "" {
		return m.inner.Key()
	}
	return m.scope + "." + m.inner.Key()
}

func (m mappedBase[N, T]) projectedScope() string        { return m.scope }
func (m mappedBase[N, T]) projectedInner() erasedMatcher { return m.inner }

// MapErased re-targets an erased accessor onto N. Two mapped accessors
// match when their inner accessors match, and so does the erased form of
// MapTarget over the same accessor.
func MapErased[N, T any](e Erased[T], f func(N) T) Erased[N] {
	return MapScoped(e, "", f)
}

// MapScoped is MapErased for projections that must stay apart: mapped
// accessors only match when they share scope, so the same property reached
// through two different projections keeps two slots.
func MapScoped[N, T any](e Erased[T], scope string, f func(N) T) Erased[N] {
	base := mappedBase[N, T]{scope: scope, inner: e}
	return Erased[N]{
		base: base,
		get: func(n N) any {
			return e.Get(f(n))
		},
		set: func(n N, v any) {
			e.Set(f(n), v)
		},
		match: func(otherBase any) bool {
			if o, ok := otherBase.(mappedBase[N, T]); ok {
				return o.scope == scope && e.Matches(o.inner)
			}
			return projectionsMatch(base, otherBase)
		},
	}
}

type sequenceBase[T any] struct {
	key    string
	phases [][]Erased[T]
}

func (s *sequenceBase[T]) Key() string {
	return s.key
}

func (s *sequenceBase[T]) matches(o *sequenceBase[T]) bool {
	if len(s.phases) != len(o.phases) {
		return false
	}
	for i, phase := range s.phases {
		if len(phase) != len(o.phases[i]) {
			return false
		}
		for j, a := range phase {
			if !a.Matches(o.phases[i][j]) {
				return false
			}
		}
	}
	return true
}

// Sequence returns an erased accessor for a composite slot made of phases,
// each a list of accessors. It matches another sequence with the same
// number of phases whose accessors match position by position, and nothing
// else.
func Sequence[T any](key string, phases [][]Erased[T], get func(T) any, set func(T, any)) Erased[T] {
	base := &sequenceBase[T]{key: key, phases: phases}
	return Erased[T]{
		base: base,
		get:  get,
		set:  set,
		match: func(otherBase any) bool {
			o, ok := otherBase.(*sequenceBase[T])
			return ok && base.matches(o)
		},
	}
}
