package dto

// Result statuses map one-to-one onto the webhook response taxonomy: ignored
// and success are 200s (the sender must not retry), error is a 500 with a
// generic message.
const (
	StatusSuccess = "success"
	StatusIgnored = "ignored"
	StatusError   = "error"
)

// WebhookResult is the pipeline's terminal state for one inbound event.
type WebhookResult struct {
	Status  string
	Reason  string // set for ignored events
	Channel string // set on successful delivery
	Message string // generic error message, never internal detail
}

func IgnoredResult(reason string) WebhookResult {
	return WebhookResult{Status: StatusIgnored, Reason: reason}
}

func SuccessResult(channel string) WebhookResult {
	return WebhookResult{Status: StatusSuccess, Channel: channel}
}

func ErrorResult(message string) WebhookResult {
	return WebhookResult{Status: StatusError, Message: message}
}
