package stubserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/chatwidget/internal/chat"
	"github.com/jask/chatwidget/internal/config"
)

func newStub(t *testing.T, delay time.Duration) *httptest.Server {
	t.Helper()
	s := New(config.StubConfig{Delay: delay, Reply: "Thank you for your message!"}, zerolog.Nop())
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, strings.TrimSpace(string(data))
}

func TestChatReplies(t *testing.T) {
	srv := newStub(t, 0)
	resp, body := post(t, srv.URL+"/chat", `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"reply":"Thank you for your message!"}`, body)
}

func TestChatValidation(t *testing.T) {
	srv := newStub(t, 0)

	resp, body := post(t, srv.URL+"/chat", `not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `{"error":"invalid JSON body"}`, body)

	resp, body = post(t, srv.URL+"/chat", `{"message":"   "}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `{"error":"message is required"}`, body)
}

func TestChatDelay(t *testing.T) {
	srv := newStub(t, 50*time.Millisecond)
	start := time.Now()
	resp, _ := post(t, srv.URL+"/chat", `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestHealth(t *testing.T) {
	srv := newStub(t, 0)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newStub(t, 0)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/chat", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://site.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestClientAgainstStub(t *testing.T) {
	srv := newStub(t, 0)
	res := chat.NewClient(srv.URL+"/chat").Ask(context.Background(), "hello")
	require.Equal(t, chat.OutcomeReply, res.Outcome)
	require.Equal(t, "Thank you for your message!", res.Reply)

	// A 400 error body has no reply field, so the widget falls back.
	res = chat.NewClient(srv.URL+"/chat").Ask(context.Background(), " ")
	require.Equal(t, chat.OutcomeNoReply, res.Outcome)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := New(config.StubConfig{Addr: "127.0.0.1:0"}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
