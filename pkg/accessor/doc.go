/*
Package accessor provides first-class property references.

An Accessor reads and writes one property of a target and tells whether
another accessor addresses the same slot. Accessors are built from explicit
getter/setter pairs tagged with a stable key instead of reflection:

	alpha := accessor.Ptr("alpha", func(n *Node) *float64 { return &n.Alpha })

Erased strips the value type so accessors over float64, geometry.Affine and
custom types can be stored together while keeping runtime matching. Writes
through an Erased accessor with a value of the wrong dynamic type are
silently ignored.
*/
package accessor
