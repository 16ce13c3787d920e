package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/opbridge/op-rc-bridge/application/port"
	"github.com/opbridge/op-rc-bridge/pkg/logger"
)

// Deliverer posts composed messages to Rocket.Chat. A 400 on a non-default
// channel is the signature of "channel does not exist", so it gets exactly
// one retry against the default channel; every other failure is final.
type Deliverer struct {
	client         port.RocketChatClient
	defaultChannel string
	logger         *slog.Logger
}

func NewDeliverer(client port.RocketChatClient, defaultChannel string, logger *slog.Logger) *Deliverer {
	return &Deliverer{
		client:         client,
		defaultChannel: defaultChannel,
		logger:         logger,
	}
}

// Deliver sends msg and returns the channel the message actually landed in.
func (d *Deliverer) Deliver(ctx context.Context, msg port.ChatMessage) (string, error) {
	err := d.client.PostMessage(ctx, msg)
	if err == nil {
		deliveryOK.Inc()
		return msg.Channel, nil
	}

	var postErr *port.PostError
	if !errors.As(err, &postErr) || postErr.StatusCode != http.StatusBadRequest || msg.Channel == d.defaultChannel {
		deliveryErr.Inc()
		return "", fmt.Errorf("deliver to %s: %w", msg.Channel, err)
	}

	d.logger.Warn("Channel rejected message, retrying with default channel",
		logger.ApplicationFields("delivery_fallback",
			slog.String("channel", msg.Channel),
			slog.String("default_channel", d.defaultChannel),
		),
	)
	deliveryFallback.Inc()

	msg.Channel = d.defaultChannel
	if err := d.client.PostMessage(ctx, msg); err != nil {
		deliveryErr.Inc()
		return "", fmt.Errorf("fallback delivery to %s: %w", d.defaultChannel, err)
	}

	deliveryOK.Inc()
	return d.defaultChannel, nil
}
