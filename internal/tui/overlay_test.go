package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestAnchorBottomRight(t *testing.T) {
	got := anchorBottomRight("[x]", 10, 4)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		require.Equal(t, 10, ansi.StringWidth(l))
	}
	// One row and two columns of margin from the corner.
	require.Equal(t, "     [x]  ", lines[2])
	require.Equal(t, strings.Repeat(" ", 10), lines[3])
}

func TestAnchorBottomRightEmptyViewIsBlank(t *testing.T) {
	got := anchorBottomRight("", 4, 2)
	require.Equal(t, "    \n    ", got)
}

func TestAnchorBottomRightWithoutSize(t *testing.T) {
	require.Equal(t, "[x]", anchorBottomRight("[x]", 0, 0))
}

func TestAnchorBottomRightAlignsToWidestLine(t *testing.T) {
	got := anchorBottomRight("ab\nabcd", 8, 3)
	require.Equal(t, "  ab    \n  abcd  \n        ", got)
}

func TestAnchorBottomRightClipsTallView(t *testing.T) {
	got := anchorBottomRight("1\n2\n3", 5, 2)
	require.Equal(t, "  1  \n  2  ", got)
}

func TestFitRow(t *testing.T) {
	require.Equal(t, "ab  ", fitRow("ab", 4))
	require.Equal(t, "abcd", fitRow("abcdef", 4))
	require.Empty(t, fitRow("ab", 0))
}
