// Package tui renders the chat widget in a terminal with Bubble Tea. All
// widget state lives in a widget.Widget owned by App; this package only
// translates terminal input into widget events and effects into commands.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/jask/chatwidget/internal/chat"
	"github.com/jask/chatwidget/internal/config"
	"github.com/jask/chatwidget/internal/widget"
)

// App is the root Bubble Tea model.
type App struct {
	ctx     context.Context
	cfg     config.UIConfig
	replier chat.Replier
	log     zerolog.Logger
	widget  *widget.Widget

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap

	width  int
	height int
}

type replyMsg struct{ result chat.Result }

type closeDoneMsg struct{}

func New(ctx context.Context, cfg config.UIConfig, replier chat.Replier, log zerolog.Logger) *App {
	if ctx == nil {
		ctx = context.Background()
	}
	in := textinput.New()
	in.Placeholder = cfg.Placeholder
	in.CharLimit = 0 // unbounded: messages go out exactly as typed
	in.Prompt = "› "

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = typingStyle

	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		replier:  replier,
		log:      log,
		widget:   widget.New(cfg.Greeting),
		input:    in,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		help:     help.New(),
		keys:     newKeyMap(),
	}
	a.layout()
	return a
}

// Widget exposes the underlying state, mainly for tests.
func (a *App) Widget() *widget.Widget { return a.widget }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.layout()
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(m)
	case replyMsg:
		return a, a.dispatch(widget.ReplySettled{Result: m.result})
	case closeDoneMsg:
		return a, a.dispatch(widget.CloseTransitionDone{})
	case spinner.TickMsg:
		if !a.widget.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	if key.Matches(m, a.keys.Quit) {
		return tea.Quit
	}
	switch a.widget.Visibility() {
	case widget.Closed:
		switch {
		case key.Matches(m, a.keys.Open):
			return a.dispatch(widget.LauncherClicked{})
		case key.Matches(m, a.keys.Exit):
			return tea.Quit
		}
	case widget.Open:
		switch {
		case key.Matches(m, a.keys.Close):
			return a.dispatch(widget.CloseClicked{})
		case key.Matches(m, a.keys.Send):
			return a.dispatch(widget.SendRequested{})
		case key.Matches(m, a.keys.Scroll):
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(m)
			return cmd
		default:
			if a.widget.Loading() {
				return nil
			}
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(m)
			return tea.Batch(cmd, a.dispatch(widget.InputChanged{Text: a.input.Value()}))
		}
	}
	return nil
}

// dispatch feeds ev to the widget and turns its effects into commands.
func (a *App) dispatch(ev widget.Event) tea.Cmd {
	before := a.widget.Visibility()
	fx := a.widget.Dispatch(ev)
	if after := a.widget.Visibility(); after != before {
		a.log.Debug().Stringer("from", before).Stringer("to", after).Msg("visibility changed")
	}

	var cmds []tea.Cmd
	if fx.ResetInput {
		a.input.Reset()
	}
	if fx.MessagesChanged {
		a.refreshMessages()
	}
	if fx.ScheduleCloseDone {
		cmds = append(cmds, closeAfter(a.cfg.CloseTransition))
	}
	if fx.Request != nil {
		cmds = append(cmds, a.askCmd(*fx.Request), a.spinner.Tick)
	}
	cmds = append(cmds, a.syncFocus())
	return tea.Batch(cmds...)
}

// syncFocus enables the input only while the panel is open and idle.
func (a *App) syncFocus() tea.Cmd {
	if a.widget.Visibility() == widget.Open && !a.widget.Loading() {
		if !a.input.Focused() {
			return a.input.Focus()
		}
		return nil
	}
	a.input.Blur()
	return nil
}

func closeAfter(d time.Duration) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return closeDoneMsg{} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return closeDoneMsg{} })
}

// askCmd runs the request off the update loop. Whatever happens, it reports
// exactly one replyMsg so the loading flag is always released.
func (a *App) askCmd(text string) tea.Cmd {
	ctx, replier, log := a.ctx, a.replier, a.log
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("%w: replier panicked: %v", chat.ErrTransport, r)
				log.Error().Err(err).Msg("chat request aborted")
				msg = replyMsg{result: chat.Result{Outcome: chat.OutcomeFailed, Err: err}}
			}
		}()
		if replier == nil {
			return replyMsg{result: chat.Result{Outcome: chat.OutcomeFailed, Err: fmt.Errorf("%w: no endpoint configured", chat.ErrTransport)}}
		}
		return replyMsg{result: replier.Ask(ctx, text)}
	}
}

// layout sizes the panel to the config, shrunk to fit the terminal.
func (a *App) layout() {
	w, h := a.panelSize()
	a.viewport.Width = max(1, w-2)
	a.viewport.Height = max(1, h-2-panelChromeRows)
	a.input.Width = max(1, a.viewport.Width-ansi.StringWidth(a.input.Prompt)-sendLabelWidth-2)
	a.refreshMessages()
}

func (a *App) panelSize() (int, int) {
	w, h := a.cfg.PanelWidth, a.cfg.PanelHeight
	if a.width > 0 {
		w = min(w, a.width-cornerMarginX)
	}
	if a.height > 0 {
		h = min(h, a.height-cornerMarginY)
	}
	return max(w, minPanelWidth), max(h, minPanelHeight)
}

// refreshMessages re-renders the list and scrolls to the newest entry.
func (a *App) refreshMessages() {
	a.viewport.SetContent(renderMessages(a.widget.Messages(), a.viewport.Width))
	a.viewport.GotoBottom()
}
