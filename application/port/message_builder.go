package port

// CommentNotification is everything the builder needs to compose the chat
// message for one work package comment.
type CommentNotification struct {
	Subject     string
	WorkItemID  string
	ProjectHref string
	Body        string // comment body with mentions already rewritten
}

type MessageBuilder interface {
	BuildCommentText(n CommentNotification) string
}
