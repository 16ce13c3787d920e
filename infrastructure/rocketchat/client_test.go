package rocketchat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opbridge/op-rc-bridge/application/port"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestPostMessage(t *testing.T) {
	var gotBody map[string]string
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Auth-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok", testLogger())

	err := client.PostMessage(context.Background(), port.ChatMessage{
		Channel:   "#dev",
		Text:      "hello",
		Alias:     "Taro Yamada",
		IconEmoji: ":clipboard:",
	})
	require.NoError(t, err)

	assert.Equal(t, "tok", gotToken)
	assert.Equal(t, "#dev", gotBody["channel"])
	assert.Equal(t, "hello", gotBody["text"])
	assert.Equal(t, "Taro Yamada", gotBody["alias"])
	assert.Equal(t, ":clipboard:", gotBody["icon_emoji"])
}

func TestPostMessageOmitsTokenWhenUnset(t *testing.T) {
	var hasToken bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasToken = r.Header["X-Auth-Token"]
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())

	require.NoError(t, client.PostMessage(context.Background(), port.ChatMessage{Channel: "#dev", Text: "x"}))
	assert.False(t, hasToken)
}

func TestPostMessageNon200ReturnsPostError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"success": false, "error": "Channel not found"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())

	err := client.PostMessage(context.Background(), port.ChatMessage{Channel: "#nope", Text: "x"})
	require.Error(t, err)

	var postErr *port.PostError
	require.True(t, errors.As(err, &postErr))
	assert.Equal(t, http.StatusBadRequest, postErr.StatusCode)
	assert.Contains(t, postErr.Body, "Channel not found")
}

func TestPostMessageConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "", testLogger())

	err := client.PostMessage(context.Background(), port.ChatMessage{Channel: "#dev", Text: "x"})
	require.Error(t, err)

	var postErr *port.PostError
	assert.False(t, errors.As(err, &postErr), "transport failures are not PostErrors")
}
