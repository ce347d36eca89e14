package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the morph ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []termenv.Style{
		termenv.String("  _ __ ___   ___  _ __ _ __ | |__").Foreground(p.Color("#818cf8")),
		termenv.String(" | '_ ` _ \\ / _ \\| '__| '_ \\| '_ \\").Foreground(p.Color("#a78bfa")),
		termenv.String(" | | | | | | (_) | |  | |_) | | | |").Foreground(p.Color("#e879f9")),
		termenv.String(" |_| |_| |_|\\___/|_|  | .__/|_| |_|").Foreground(p.Color("#f472b6")),
		termenv.String("                      |_|").Foreground(p.Color("#fb7185")),
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
}
