/*
Package progress defines the value that drives every transition: a direction
(insertion or removal) and a magnitude in [0, 1].

Call sites rarely branch on direction. Instead they blend between an identity
value and a transformed value with Value, which is parameterised by the
normalized Progress() rather than the raw magnitude:

	// insertion: transformed -> identity as magnitude goes 0 -> 1
	// removal:   identity -> transformed as magnitude goes 0 -> 1
	alpha := progress.Value(p, 1.0, 0.0)

Inverted and Reversed are distinct: Inverted swaps direction and keeps the
visible state, Reversed keeps direction and mirrors the magnitude.
*/
package progress
