package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/color-palette/api/contrast"
)

// swatch renders hex on its own color, with black or white text, whichever
// reads better.
func (o *options) swatch(hex string) string {
	if o.plain {
		return hex
	}
	text := "#000000"
	if contrast.Ratio(hex, "#ffffff") > contrast.Ratio(hex, "#000000") {
		text = "#ffffff"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(text)).
		Padding(0, 1).
		Render(hex)
}

func (o *options) printColors(w io.Writer, colors []string) {
	if o.plain {
		fmt.Fprintln(w, strings.Join(colors, "\n"))
		return
	}
	rendered := make([]string, len(colors))
	for i, c := range colors {
		rendered[i] = o.swatch(c)
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}
