package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opbridge/op-rc-bridge/application/port"
)

type mockRocketChatClient struct {
	errs     []error // one per call, nil entries mean success
	messages []port.ChatMessage
}

func (m *mockRocketChatClient) PostMessage(ctx context.Context, msg port.ChatMessage) error {
	m.messages = append(m.messages, msg)
	if len(m.errs) == 0 {
		return nil
	}
	err := m.errs[0]
	m.errs = m.errs[1:]
	return err
}

func TestDeliverSuccess(t *testing.T) {
	client := &mockRocketChatClient{}
	d := NewDeliverer(client, "#general", testLogger())

	channel, err := d.Deliver(context.Background(), port.ChatMessage{Channel: "#dev", Text: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "#dev", channel)
	assert.Len(t, client.messages, 1)
}

func TestDeliverBadRequestFallsBackToDefault(t *testing.T) {
	client := &mockRocketChatClient{
		errs: []error{&port.PostError{StatusCode: http.StatusBadRequest, Body: "channel not found"}, nil},
	}
	d := NewDeliverer(client, "#general", testLogger())

	channel, err := d.Deliver(context.Background(), port.ChatMessage{Channel: "#dev-alerts", Text: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "#general", channel)
	require.Len(t, client.messages, 2)
	assert.Equal(t, "#dev-alerts", client.messages[0].Channel)
	assert.Equal(t, "#general", client.messages[1].Channel)
	assert.Equal(t, "hi", client.messages[1].Text)
}

func TestDeliverBadRequestOnDefaultChannelDoesNotRetry(t *testing.T) {
	client := &mockRocketChatClient{
		errs: []error{&port.PostError{StatusCode: http.StatusBadRequest, Body: "bad payload"}},
	}
	d := NewDeliverer(client, "#general", testLogger())

	_, err := d.Deliver(context.Background(), port.ChatMessage{Channel: "#general", Text: "hi"})

	require.Error(t, err)
	assert.Len(t, client.messages, 1)
}

func TestDeliverNonBadRequestDoesNotRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "server error", err: &port.PostError{StatusCode: http.StatusInternalServerError}},
		{name: "unauthorized", err: &port.PostError{StatusCode: http.StatusUnauthorized}},
		{name: "transport failure", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockRocketChatClient{errs: []error{tt.err}}
			d := NewDeliverer(client, "#general", testLogger())

			_, err := d.Deliver(context.Background(), port.ChatMessage{Channel: "#dev", Text: "hi"})

			require.Error(t, err)
			assert.Len(t, client.messages, 1)
		})
	}
}

func TestDeliverFallbackFailureIsFinal(t *testing.T) {
	client := &mockRocketChatClient{
		errs: []error{
			&port.PostError{StatusCode: http.StatusBadRequest, Body: "channel not found"},
			&port.PostError{StatusCode: http.StatusInternalServerError, Body: "down"},
		},
	}
	d := NewDeliverer(client, "#general", testLogger())

	_, err := d.Deliver(context.Background(), port.ChatMessage{Channel: "#dev", Text: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fallback delivery")
	assert.Len(t, client.messages, 2)
}
