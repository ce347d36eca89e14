/*
Package transition is the combinator engine behind morph.

A Set maps a progress value to property writes on a target. Sets are built
from accessors, combined, sequenced and reshaped, then driven by the host:

	set := transition.Combine(fade, grow)
	set.CaptureInitialState(view)
	set.Update(progress.InsertionEdge(progress.EdgeStart), view)
	// ... host animation driver calls Update as progress advances ...
	set.RestoreInitialState(view)

# Combining

Combine keeps transitions on different properties side by side and fuses
transitions on the same property into one slot, applied in argument order.
Keyframes plays sets as sequential phases of equal width.

# Shaping

Filter, Inverted and Reversed wrap every apply function. MapTarget moves a
set authored for one type onto a containing type. Conditional and Asymmetric
pick transitions by progress.

The package does no scheduling and holds no references to targets between
calls.
*/
package transition
