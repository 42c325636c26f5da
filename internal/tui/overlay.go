package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Distance kept between the widget and the screen's bottom-right corner.
const (
	cornerMarginX = 2
	cornerMarginY = 1
)

// anchorBottomRight draws view on a blank width x height screen so that it
// floats in the bottom-right corner. Every row of the result is exactly
// width cells; rows of view that fall below the screen are dropped.
func anchorBottomRight(view string, width, height int) string {
	if width <= 0 || height <= 0 {
		return view
	}
	blank := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = blank
	}
	if view == "" {
		return strings.Join(rows, "\n")
	}

	lines := strings.Split(view, "\n")
	viewWidth := 0
	for _, l := range lines {
		viewWidth = max(viewWidth, ansi.StringWidth(l))
	}
	indent := strings.Repeat(" ", max(0, width-viewWidth-cornerMarginX))
	top := max(0, height-len(lines)-cornerMarginY)
	for i, l := range lines {
		if top+i >= height {
			break
		}
		rows[top+i] = fitRow(indent+l, width)
	}
	return strings.Join(rows, "\n")
}
