package port

import "context"

// OpenProjectClient fetches user records from the OpenProject API. The href
// is the resource path as delivered in the webhook payload, e.g.
// "/api/v3/users/1".
type OpenProjectClient interface {
	FetchUserName(ctx context.Context, href string) (string, error)
}
