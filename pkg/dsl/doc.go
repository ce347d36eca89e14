/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing morph documents.

It allows developers to define transition trees using a type-safe, fluent builder pattern
instead of writing YAML or JSON by hand. This is particularly useful for generated
animations, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	b := dsl.New("card-in")
	b.Node("card").Alpha(1).Frame(0, 0, 200, 100)
	b.Transition(dsl.Combined(
		dsl.Opacity("card"),
		dsl.Scale("card", 0.8).Anchor(0.5, 1),
	))

	data, err := b.Bytes() // YAML, ready for morph.Engine.Sample or Save
*/
package dsl
