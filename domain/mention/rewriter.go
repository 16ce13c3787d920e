package mention

import "regexp"

// UserLookup resolves an OpenProject display name to a Rocket.Chat user name.
type UserLookup interface {
	RocketChatUser(opUser string) (string, bool)
}

// Marker format emitted by the OpenProject comment editor:
//
//	<mention ... data-text="@Display Name" ...>@Display Name</mention>&nbsp;
//
// Inner content is matched non-greedily so adjacent markers stay separate,
// and the trailing non-breaking space the editor appends is consumed with
// the marker. Markers are never nested.
var markerRe = regexp.MustCompile(`(?s)<mention\s+[^>]*data-text="@([^"]+)"[^>]*>.*?</mention>(?:&nbsp;|\x{00A0})?`)

// Rewrite replaces every mention marker in text with the Rocket.Chat mention
// syntax: @<mapped user> when the display name is mapped, @<display name>
// otherwise. Text without markers passes through unchanged.
func Rewrite(text string, users UserLookup) string {
	if text == "" {
		return ""
	}

	return markerRe.ReplaceAllStringFunc(text, func(marker string) string {
		opUser := markerRe.FindStringSubmatch(marker)[1]
		if rcUser, ok := users.RocketChatUser(opUser); ok {
			return "@" + rcUser
		}
		return "@" + opUser
	})
}
