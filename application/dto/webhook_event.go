package dto

import "strconv"

// ActionCommentCreated is the only OpenProject webhook action this bridge
// handles. Every other action is acknowledged and ignored.
const ActionCommentCreated = "work_package_comment:comment"

// WebhookInput mirrors the OpenProject webhook payload for work package
// comments. Only the fields the pipeline consumes are mapped; anything else
// in the payload is ignored.
type WebhookInput struct {
	Action   string   `json:"action"`
	Activity Activity `json:"activity"`
}

type Activity struct {
	Comment  Comment          `json:"comment"`
	Links    ActivityLinks    `json:"_links"`
	Embedded ActivityEmbedded `json:"_embedded"`
}

type Comment struct {
	Raw string `json:"raw"`
}

type ActivityLinks struct {
	User Link `json:"user"`
}

type ActivityEmbedded struct {
	WorkPackage WorkPackage `json:"workPackage"`
}

type WorkPackage struct {
	ID      FlexID           `json:"id"`
	Subject string           `json:"subject"`
	Links   WorkPackageLinks `json:"_links"`
}

type WorkPackageLinks struct {
	Project Link `json:"project"`
}

type Link struct {
	Href  string `json:"href"`
	Title string `json:"title"`
}

// FlexID accepts both the numeric id OpenProject normally sends and the
// string form seen in some payload variants.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "null" {
		s = ""
	}
	*f = FlexID(s)
	return nil
}

func (f FlexID) String() string {
	return string(f)
}

// Int returns the numeric value, or 0 when the id is absent or not a number.
func (f FlexID) Int() int {
	n, err := strconv.Atoi(string(f))
	if err != nil {
		return 0
	}
	return n
}
