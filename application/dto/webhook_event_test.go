package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookInputUnmarshal(t *testing.T) {
	payload := `{
		"action": "work_package_comment:comment",
		"activity": {
			"comment": {"raw": "Test comment"},
			"_links": {"user": {"href": "/api/v3/users/1"}},
			"_embedded": {
				"workPackage": {
					"id": 123,
					"subject": "Test WP",
					"_links": {
						"project": {
							"href": "/api/v3/projects/demo-project",
							"title": "Test Project"
						}
					}
				}
			}
		}
	}`

	var input WebhookInput
	require.NoError(t, json.Unmarshal([]byte(payload), &input))

	assert.Equal(t, ActionCommentCreated, input.Action)
	assert.Equal(t, "Test comment", input.Activity.Comment.Raw)
	assert.Equal(t, "/api/v3/users/1", input.Activity.Links.User.Href)
	assert.Equal(t, "123", input.Activity.Embedded.WorkPackage.ID.String())
	assert.Equal(t, 123, input.Activity.Embedded.WorkPackage.ID.Int())
	assert.Equal(t, "Test WP", input.Activity.Embedded.WorkPackage.Subject)
	assert.Equal(t, "Test Project", input.Activity.Embedded.WorkPackage.Links.Project.Title)
	assert.Equal(t, "/api/v3/projects/demo-project", input.Activity.Embedded.WorkPackage.Links.Project.Href)
}

func TestFlexID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "number", in: `{"id": 42}`, want: "42"},
		{name: "string", in: `{"id": "42"}`, want: "42"},
		{name: "null", in: `{"id": null}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var wp WorkPackage
			require.NoError(t, json.Unmarshal([]byte(tt.in), &wp))
			assert.Equal(t, tt.want, wp.ID.String())
		})
	}
}

func TestResultConstructors(t *testing.T) {
	assert.Equal(t, WebhookResult{Status: StatusIgnored, Reason: "no comment content"}, IgnoredResult("no comment content"))
	assert.Equal(t, WebhookResult{Status: StatusSuccess, Channel: "#general"}, SuccessResult("#general"))
	assert.Equal(t, WebhookResult{Status: StatusError, Message: "boom"}, ErrorResult("boom"))
}
