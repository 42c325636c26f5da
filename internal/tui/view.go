package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/chatwidget/internal/chat"
	"github.com/jask/chatwidget/internal/widget"
)

const (
	// header, typing line, input row with its top rule, help line
	panelChromeRows = 5
	minPanelWidth   = 24
	minPanelHeight  = 10
	sendLabel       = "[send]"
	sendLabelWidth  = len(sendLabel)
	launcherLabel   = "◉ chat"
	closeLabel      = "✕ esc"
)

func (a *App) View() string {
	var view string
	switch a.widget.Visibility() {
	case widget.Closed:
		view = a.renderLauncher()
	case widget.Open:
		view = a.renderPanel()
	}
	// Closing draws nothing: the panel is gone and the launcher waits for
	// the transition to finish.
	return anchorBottomRight(view, a.width, a.height)
}

func (a *App) renderLauncher() string {
	button := launcherStyle.Render(launcherLabel)
	hint := launcherHintStyle.Render(a.help.ShortHelpView(a.keys.LauncherHelp()))
	return lipgloss.JoinVertical(lipgloss.Right, button, hint)
}

func (a *App) renderPanel() string {
	w, _ := a.panelSize()
	inner := w - 2

	status := ""
	if a.widget.Loading() {
		status = a.spinner.View() + typingStyle.Render(" typing…")
	}

	send := sendDisabledStyle.Render(sendLabel)
	if a.widget.CanSend() {
		send = sendActiveStyle.Render(sendLabel)
	}
	inputLine := fitRow(a.input.View(), inner-sendLabelWidth-1) + " " + send

	body := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(inner),
		a.viewport.View(),
		fitRow(status, inner),
		inputRowStyle.Render(fitRow(inputLine, inner)),
		fitRow(a.help.ShortHelpView(a.keys.PanelHelp()), inner),
	)
	return panelStyle.Render(body)
}

func (a *App) renderHeader(width int) string {
	closeBtn := headerCloseStyle.Render(closeLabel)
	titleWidth := max(0, width-lipgloss.Width(closeBtn))
	title := headerStyle.Width(titleWidth).Render(ansi.Truncate(a.cfg.Title, max(0, titleWidth-2), "…"))
	return title + closeBtn
}

// renderMessages lays out the conversation: bot bubbles on the left, user
// bubbles on the right, each at most 70% of the list width.
func renderMessages(msgs []chat.Message, width int) string {
	if width <= 0 {
		return ""
	}
	maxBubble := max(8, width*7/10)
	rows := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		style, align := botBubbleStyle, lipgloss.Left
		switch {
		case msg.Role == chat.RoleUser:
			style, align = userBubbleStyle, lipgloss.Right
		case msg.Text == chat.ErrorReply:
			style = errorBubbleStyle
		}
		if lipgloss.Width(msg.Text)+style.GetHorizontalPadding() > maxBubble {
			style = style.Width(maxBubble)
		}
		rows = append(rows, lipgloss.PlaceHorizontal(width, align, style.Render(msg.Text)))
	}
	return strings.Join(rows, "\n")
}

// fitRow pads or truncates s to exactly width cells.
func fitRow(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(padRight(s, width), width, "")
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
