package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestAskReturnsReplyVerbatim(t *testing.T) {
	t.Parallel()

	var got map[string]any
	var gotMethod, gotContentType, gotRequestID string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`{"reply":"  hi!  "}`))
	})

	res := NewClient(srv.URL).Ask(context.Background(), " hello ")
	require.Equal(t, OutcomeReply, res.Outcome)
	require.NoError(t, res.Err)
	require.Equal(t, "  hi!  ", res.Reply)
	require.Equal(t, BotMessage("  hi!  "), res.Message())

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, map[string]any{"message": " hello "}, got)
	require.Equal(t, "application/json", gotContentType)
	require.NotEmpty(t, gotRequestID)
}

func TestAskFallbackWhenReplyMissingOrUnusable(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing":    `{"error":"boom"}`,
		"empty":      `{"reply":""}`,
		"number":     `{"reply":42}`,
		"null":       `{"reply":null}`,
		"not object": `["reply"]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			res := NewClient(srv.URL).Ask(context.Background(), "hello")
			require.Equal(t, OutcomeNoReply, res.Outcome)
			require.NoError(t, res.Err)
			require.Equal(t, FallbackReply, res.Message().Text)
			require.Equal(t, RoleBot, res.Message().Role)
		})
	}
}

func TestAskIgnoresHTTPStatus(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"reply":"still here"}`))
	})
	res := NewClient(srv.URL).Ask(context.Background(), "hello")
	require.Equal(t, OutcomeReply, res.Outcome)
	require.Equal(t, "still here", res.Reply)
}

func TestAskDecodeFailure(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})
	res := NewClient(srv.URL).Ask(context.Background(), "hello")
	require.Equal(t, OutcomeFailed, res.Outcome)
	require.ErrorIs(t, res.Err, ErrDecode)
	require.Equal(t, ErrorReply, res.Message().Text)
}

func TestAskTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := NewClient(url).Ask(context.Background(), "hello")
	require.Equal(t, OutcomeFailed, res.Outcome)
	require.True(t, errors.Is(res.Err, ErrTransport), "got %v", res.Err)
	require.Equal(t, BotMessage(ErrorReply), res.Message())
}

func TestAskTimeoutOption(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	res := NewClient(srv.URL, WithTimeout(20*time.Millisecond)).Ask(context.Background(), "hello")
	require.Equal(t, OutcomeFailed, res.Outcome)
	require.ErrorIs(t, res.Err, ErrTransport)
}

func TestAskTimeoutSurvivesLaterHTTPClient(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c := NewClient(srv.URL, WithTimeout(20*time.Millisecond), WithHTTPClient(&http.Client{}))
	res := c.Ask(context.Background(), "hello")
	require.Equal(t, OutcomeFailed, res.Outcome)
	require.ErrorIs(t, res.Err, ErrTransport)
}

func TestNewClientDefaultsEndpoint(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultEndpoint, NewClient("  ").Endpoint())
	require.Equal(t, "http://example.test/chat", NewClient("http://example.test/chat").Endpoint())
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "reply", OutcomeReply.String())
	require.Equal(t, "no_reply", OutcomeNoReply.String())
	require.Equal(t, "failed", OutcomeFailed.String())
	require.Equal(t, "outcome(9)", Outcome(9).String())
}
