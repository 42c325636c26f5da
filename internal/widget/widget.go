// Package widget holds the chat widget's state and its single update
// function. It has no knowledge of terminals or HTTP: hosts dispatch events
// in and carry out the returned Effects.
package widget

import (
	"strings"

	"github.com/jask/chatwidget/internal/chat"
)

// Visibility is the launcher/panel state machine.
type Visibility int

const (
	Closed Visibility = iota
	Open
	Closing
)

func (v Visibility) String() string {
	switch v {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// Event is anything that can be dispatched into a Widget.
type Event interface{ isEvent() }

type (
	LauncherClicked     struct{}
	CloseClicked        struct{}
	CloseTransitionDone struct{}
	InputChanged        struct{ Text string }
	SendRequested       struct{}
	// ReplySettled carries the outcome of the outstanding request.
	ReplySettled struct{ Result chat.Result }
)

func (LauncherClicked) isEvent()     {}
func (CloseClicked) isEvent()        {}
func (CloseTransitionDone) isEvent() {}
func (InputChanged) isEvent()        {}
func (SendRequested) isEvent()       {}
func (ReplySettled) isEvent()        {}

// Effects lists the side effects a host must perform after a dispatch.
type Effects struct {
	// Request is non-nil when a message must be sent to the endpoint.
	Request *string
	// ScheduleCloseDone asks the host to dispatch CloseTransitionDone once
	// the panel's exit transition has finished.
	ScheduleCloseDone bool
	// MessagesChanged means the list grew and the view should scroll to
	// the newest entry.
	MessagesChanged bool
	// ResetInput means the host's input control must be cleared.
	ResetInput bool
}

// State is a read-only snapshot for rendering.
type State struct {
	Visibility Visibility
	Messages   []chat.Message
	Input      string
	Loading    bool
}

func (s State) IsOpen() bool       { return s.Visibility == Open }
func (s State) ShowLauncher() bool { return s.Visibility == Closed }

// Widget owns one conversation. It is not safe for concurrent use; all
// dispatches must come from the same goroutine.
type Widget struct {
	visibility Visibility
	messages   []chat.Message
	input      string
	loading    bool
}

// New returns a closed widget seeded with the greeting bot message.
func New(greeting string) *Widget {
	if strings.TrimSpace(greeting) == "" {
		greeting = chat.Greeting
	}
	return &Widget{messages: []chat.Message{chat.BotMessage(greeting)}}
}

func (w *Widget) Visibility() Visibility { return w.visibility }
func (w *Widget) Loading() bool          { return w.loading }
func (w *Widget) Input() string          { return w.input }

// Messages returns a copy of the conversation in display order.
func (w *Widget) Messages() []chat.Message {
	out := make([]chat.Message, len(w.messages))
	copy(out, w.messages)
	return out
}

func (w *Widget) Snapshot() State {
	return State{
		Visibility: w.visibility,
		Messages:   w.Messages(),
		Input:      w.input,
		Loading:    w.loading,
	}
}

// CanSend reports whether SendRequested would issue a request.
func (w *Widget) CanSend() bool {
	return w.visibility == Open && !w.loading && strings.TrimSpace(w.input) != ""
}

// Dispatch applies ev and returns the effects the host must run. Events that
// have no transition from the current state are no-ops.
func (w *Widget) Dispatch(ev Event) Effects {
	switch e := ev.(type) {
	case LauncherClicked:
		if w.visibility == Closed {
			w.visibility = Open
		}
	case CloseClicked:
		if w.visibility == Open {
			w.visibility = Closing
			return Effects{ScheduleCloseDone: true}
		}
	case CloseTransitionDone:
		if w.visibility == Closing {
			w.visibility = Closed
		}
	case InputChanged:
		if w.visibility == Open && !w.loading {
			w.input = e.Text
		}
	case SendRequested:
		return w.send()
	case ReplySettled:
		if !w.loading {
			return Effects{}
		}
		w.messages = append(w.messages, e.Result.Message())
		w.loading = false
		return Effects{MessagesChanged: true}
	}
	return Effects{}
}

func (w *Widget) send() Effects {
	if !w.CanSend() {
		return Effects{}
	}
	text := w.input
	w.messages = append(w.messages, chat.UserMessage(text))
	w.input = ""
	w.loading = true
	return Effects{Request: &text, MessagesChanged: true, ResetInput: true}
}
