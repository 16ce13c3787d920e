package messagebuilder

import (
	"fmt"
	"strings"

	"github.com/opbridge/op-rc-bridge/application/port"
)

// AppearanceConfig is the file-configurable part of message composition.
type AppearanceConfig interface {
	ViewLabel() string
}

// Builder composes the Rocket.Chat message text for a work package comment:
// a heading with subject and id, a link back to the work package, then the
// rewritten comment body. The body always comes last.
type Builder struct {
	webBaseURL string
	appearance AppearanceConfig
}

func NewBuilder(webBaseURL string, appearance AppearanceConfig) *Builder {
	return &Builder{
		webBaseURL: strings.TrimRight(webBaseURL, "/"),
		appearance: appearance,
	}
}

func (b *Builder) BuildCommentText(n port.CommentNotification) string {
	subject := n.Subject
	if subject == "" {
		subject = "No Subject"
	}
	id := n.WorkItemID
	if id == "" {
		id = "?"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "### [%s] (#%s)", subject, id)

	if url := b.workPackageURL(n.ProjectHref, n.WorkItemID); url != "" {
		fmt.Fprintf(&sb, "\n[%s](%s)", b.appearance.ViewLabel(), url)
	}

	sb.WriteString("\n\n")
	sb.WriteString(n.Body)

	return sb.String()
}

// workPackageURL builds the web link for a work package. With a project href
// like "/api/v3/projects/demo-project" the link uses the project-scoped path;
// without one it falls back to the flat /work_packages path.
func (b *Builder) workPackageURL(projectHref, workItemID string) string {
	if workItemID == "" {
		return ""
	}

	if projectHref != "" {
		if idx := strings.LastIndex(projectHref, "/"); idx >= 0 && idx < len(projectHref)-1 {
			identifier := projectHref[idx+1:]
			return fmt.Sprintf("%s/projects/%s/work_packages/%s", b.webBaseURL, identifier, workItemID)
		}
	}

	return fmt.Sprintf("%s/work_packages/%s", b.webBaseURL, workItemID)
}
