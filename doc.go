/*
Package morph is a property animation engine: it describes how a set of
properties moves between an identity state and a transformed state, and
samples that motion frame by frame.

Animations are written as YAML or JSON documents. A document declares the
scene nodes it animates and a tree of transitions built from presets
(opacity, scale, move, slide, turn, ...) and combinators (combined,
keyframes, asymmetric, conditional). The engine compiles the tree onto
pkg/transition sets and drives them with pkg/runner.

# Concept

Every transition is a pure function of a Progress (direction plus
magnitude) and the state captured before the animation began. The same
document therefore plays forwards on insertion, backwards on removal, and
can be interrupted and resumed without drift.

# Usage

	eng := morph.New()

	sample, err := eng.Sample(ctx, []byte(`
	nodes:
	  card: {frame: {x: 0, y: 0, width: 100, height: 40}}
	transition:
	  kind: combined
	  children:
	    - {kind: opacity, node: card}
	    - {kind: slide, node: card, insertion: bottom}
	`), morph.SampleRequest{Frames: 4})
	if err != nil {
		log.Fatal(err)
	}
	for _, f := range sample.Frames {
		card, _ := f.Scene.Node("card")
		fmt.Println(f.Progress, card.Alpha)
	}

The lower level packages can be used directly from Go: build sets with
pkg/presets and pkg/transition, and drive them with pkg/runner.
*/
package morph
