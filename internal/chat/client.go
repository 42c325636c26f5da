package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultEndpoint is the compiled-in chat URL used when nothing overrides it.
const DefaultEndpoint = "http://localhost:8080/chat"

var (
	ErrTransport = errors.New("chat: transport failure")
	ErrDecode    = errors.New("chat: undecodable response")
)

// Replier settles one user message against the remote endpoint.
// Implementations must not panic and always return a Result.
type Replier interface {
	Ask(ctx context.Context, message string) Result
}

// Outcome is how a request settled.
type Outcome int

const (
	OutcomeReply Outcome = iota
	OutcomeNoReply
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReply:
		return "reply"
	case OutcomeNoReply:
		return "no_reply"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the settlement of a single request.
type Result struct {
	Outcome Outcome
	Reply   string
	Err     error
}

// Message maps the settlement to the bot message shown to the user.
func (r Result) Message() Message {
	switch r.Outcome {
	case OutcomeReply:
		return BotMessage(r.Reply)
	case OutcomeNoReply:
		return BotMessage(FallbackReply)
	default:
		return BotMessage(ErrorReply)
	}
}

// Client posts {"message": ...} to a fixed endpoint and reads an optional
// string "reply" field back.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	log      zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the transport. Useful for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeout bounds each request. Zero keeps the transport default, which
// never times out. It applies to whichever HTTP client is in place once all
// options have run.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func NewClient(endpoint string, opts ...Option) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{endpoint: endpoint, http: &http.Client{}, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		h := *c.http
		h.Timeout = c.timeout
		c.http = &h
	}
	return c
}

func (c *Client) Endpoint() string { return c.endpoint }

// Ask sends message and classifies the response. It never returns an error
// directly: failures are folded into an OutcomeFailed result.
func (c *Client) Ask(ctx context.Context, message string) Result {
	reqID := uuid.NewString()
	start := time.Now()

	body, status, err := c.post(ctx, reqID, message)
	var res Result
	if err != nil {
		res = Result{Outcome: OutcomeFailed, Err: err}
	} else {
		res = parseReply(body)
	}

	ev := c.log.Debug()
	if res.Err != nil {
		ev = c.log.Warn().Err(res.Err)
	}
	ev.Str("request_id", reqID).
		Str("endpoint", c.endpoint).
		Int("status", status).
		Stringer("outcome", res.Outcome).
		Dur("elapsed", time.Since(start)).
		Msg("chat request settled")
	return res
}

func (c *Client) post(ctx context.Context, reqID, message string) ([]byte, int, error) {
	payload, err := sjson.SetBytes([]byte(`{}`), "message", message)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: encode request: %w", ErrTransport, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	return data, resp.StatusCode, nil
}

// parseReply ignores the HTTP status: any JSON body is inspected for a
// non-empty string "reply".
func parseReply(data []byte) Result {
	if !gjson.ValidBytes(data) {
		return Result{Outcome: OutcomeFailed, Err: fmt.Errorf("%w: %d byte body is not JSON", ErrDecode, len(data))}
	}
	reply := gjson.GetBytes(data, "reply")
	if reply.Type != gjson.String || reply.Str == "" {
		return Result{Outcome: OutcomeNoReply}
	}
	return Result{Outcome: OutcomeReply, Reply: reply.Str}
}
