package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opbridge/op-rc-bridge/application/dto"
	"github.com/opbridge/op-rc-bridge/application/port"
	"github.com/opbridge/op-rc-bridge/domain/mapping"
	"github.com/opbridge/op-rc-bridge/domain/mention"
	"github.com/opbridge/op-rc-bridge/pkg/logger"
)

// HandleCommentUseCase runs the webhook-translation pipeline for one event:
// filter → rewrite mentions → route → resolve author → compose → deliver.
// Each event reaches exactly one terminal state; delivery failure is the only
// one surfaced as an error to the webhook sender.
type HandleCommentUseCase struct {
	table     *mapping.Table
	resolver  *AuthorResolver
	deliverer *Deliverer
	builder   port.MessageBuilder
	iconEmoji string
	logger    *slog.Logger
}

func NewHandleCommentUseCase(
	table *mapping.Table,
	resolver *AuthorResolver,
	deliverer *Deliverer,
	builder port.MessageBuilder,
	iconEmoji string,
	logger *slog.Logger,
) *HandleCommentUseCase {
	return &HandleCommentUseCase{
		table:     table,
		resolver:  resolver,
		deliverer: deliverer,
		builder:   builder,
		iconEmoji: iconEmoji,
		logger:    logger,
	}
}

func (uc *HandleCommentUseCase) Execute(ctx context.Context, input dto.WebhookInput) dto.WebhookResult {
	if input.Action != dto.ActionCommentCreated {
		uc.logger.Debug("Ignoring webhook action", slog.String("action", input.Action))
		webhookIgnoredCounter.Inc()
		return dto.IgnoredResult(fmt.Sprintf("unsupported action: %s", input.Action))
	}

	commentRaw := input.Activity.Comment.Raw
	if commentRaw == "" {
		webhookIgnoredCounter.Inc()
		return dto.IgnoredResult("no comment content")
	}

	wp := input.Activity.Embedded.WorkPackage

	uc.logger.Info("Processing work package comment",
		logger.ApplicationFields("comment_received",
			slog.String("work_package", wp.ID.String()),
			slog.String("project", wp.Links.Project.Title),
		),
	)

	body := mention.Rewrite(commentRaw, uc.table)

	// Routing key is the human-readable project title as supplied by the
	// event; an unmapped or missing title lands in the default channel.
	channel := uc.table.Channel(wp.Links.Project.Title)

	author := uc.resolver.Resolve(ctx, input.Activity.Links.User.Href)

	text := uc.builder.BuildCommentText(port.CommentNotification{
		Subject:     wp.Subject,
		WorkItemID:  wp.ID.String(),
		ProjectHref: wp.Links.Project.Href,
		Body:        body,
	})

	deliveredTo, err := uc.deliverer.Deliver(ctx, port.ChatMessage{
		Channel:   channel,
		Text:      text,
		Alias:     author,
		IconEmoji: uc.iconEmoji,
	})
	if err != nil {
		uc.logger.Error("Delivery failed",
			logger.ApplicationFields("delivery_failed",
				slog.String("work_package", wp.ID.String()),
				slog.String("channel", channel),
				slog.String("error", err.Error()),
			),
		)
		webhookErrorCounter.Inc()
		return dto.ErrorResult("failed to deliver notification")
	}

	uc.logger.Info("Comment delivered",
		logger.ApplicationFields("comment_delivered",
			slog.String("work_package", wp.ID.String()),
			slog.String("channel", deliveredTo),
			slog.String("author", author),
		),
	)
	webhookSuccessCounter.Inc()
	return dto.SuccessResult(deliveredTo)
}
