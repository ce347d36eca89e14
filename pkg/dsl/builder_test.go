package dsl

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/aretw0/morph/internal/compiler"
	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/presets"
	"github.com/aretw0/morph/pkg/progress"
)

func TestBuilder_KeyframesFlow(t *testing.T) {
	// 1. Build the document using DSL
	b := New("pop").Describe("fade then settle")
	b.Node("card").Alpha(1).Frame(0, 0, 100, 50).Anchor(0.5, 0.5)
	b.Transition(Keyframes(
		Opacity("card"),
		Scale("card", 2).Anchor(0.5, 1).Label("settle"),
	))
	b.Sample(progress.DirectionRemoval, 4)

	// 2. Compile
	prog, err := b.Compile()
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}

	// 3. Verify the program
	if prog.Name != "pop" || prog.Description != "fade then settle" {
		t.Errorf("Unexpected header: %q %q", prog.Name, prog.Description)
	}
	if prog.Direction != progress.DirectionRemoval || prog.Frames != 4 {
		t.Errorf("Expected removal in 4 frames, got %s in %d", prog.Direction, prog.Frames)
	}
	if keys := prog.Set.Keys(); !slices.Equal(keys, []string{"card.keyframes"}) {
		t.Errorf("Unexpected keys %v", keys)
	}
	if len(prog.Tree.Children) != 2 || prog.Tree.Children[1].Label != "settle" {
		t.Fatalf("Unexpected tree %+v", prog.Tree)
	}

	card, ok := prog.Scene.Node("card")
	if !ok {
		t.Fatal("card missing from scene")
	}
	if card.Alpha() != 1 {
		t.Errorf("Expected alpha 1, got %g", card.Alpha())
	}
}

func TestBuilder_Build(t *testing.T) {
	b := New("slide")
	b.Node("panel").RTL().Value("blur", 0)
	b.Transition(Combined(
		Slide("panel"),
		Value("panel", "blur", 8).Only(progress.DirectionRemoval),
	))

	store, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	data, err := store.Load(context.Background(), "slide")
	if err != nil {
		t.Fatalf("Load('slide') failed: %v", err)
	}
	doc, err := compiler.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !doc.Nodes["panel"].RTL {
		t.Error("Expected panel to be RTL")
	}
	if _, ok := doc.Nodes["panel"].Values["blur"]; !ok {
		t.Error("Expected blur scalar")
	}
	if doc.Transition.Kind() != "combined" {
		t.Errorf("Expected combined root, got %q", doc.Transition.Kind())
	}
}

func TestBuilder_Branches(t *testing.T) {
	half := 0.5

	b := New("branches")
	b.Node("a")
	b.Node("b").Hidden()
	b.Transition(Combined(
		Asymmetric(MoveRelative("a", presets.EdgeTop, "50%"), MoveBy("a", presets.EdgeBottom, 10)),
		Conditional(Condition{Direction: progress.DirectionInsertion, Above: &half},
			Constant("b", "hidden", false),
			nil,
		),
		Turn("a", "b").Reversed().Inverted(),
		AnchorPoint("b", 1, 1),
		Offset("b", 3, 4),
		ScaleXY("b", 1, 2),
		OpacityFrom("a", 0.5),
		ConstantScalar("a", "depth", 2),
		SlideBetween("b", presets.EdgeTop, presets.EdgeBottom),
		Move("a", presets.EdgeLeading),
		Identity(),
	))

	prog, err := b.Compile()
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}
	if got := len(prog.Tree.Children); got != 11 {
		t.Fatalf("Expected 11 children, got %d", got)
	}
	if mods := prog.Tree.Children[2].Modifiers; len(mods) != 2 {
		t.Errorf("Expected two modifiers on turn, got %v", mods)
	}
	if roles := []string{prog.Tree.Children[0].Children[0].Role, prog.Tree.Children[0].Children[1].Role}; !slices.Equal(roles, []string{"insertion", "removal"}) {
		t.Errorf("Unexpected asymmetric roles %v", roles)
	}
}

func TestBuilder_Invalid(t *testing.T) {
	b := New("broken")
	b.Transition(Opacity("ghost"))

	if _, err := b.Compile(); !errors.Is(err, domain.ErrUnknownNode) {
		t.Errorf("Expected ErrUnknownNode, got %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Error("Expected Build() to fail")
	}

	if _, err := New("empty").Compile(); !errors.Is(err, domain.ErrInvalidDocument) {
		t.Errorf("Expected missing transition to be invalid, got %v", err)
	}
}

func TestBuilder_NodeReuse(t *testing.T) {
	b := New("x")
	if b.Node("a") != b.Node("a") {
		t.Error("Expected Node to return the existing builder")
	}
	if spec := b.Node("a").Alpha(0.3).Build(); spec.Alpha == nil || *spec.Alpha != 0.3 {
		t.Errorf("Unexpected spec %+v", spec)
	}
}
