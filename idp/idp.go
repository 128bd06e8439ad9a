package idp

import "context"

// UserManager is the contract this application needs from an identity
// provider's management API: profile reads only. Authentication itself is
// token-based and handled by the middleware, not through this interface.
type UserManager interface {
	GetUser(ctx context.Context, userID string) (*UserInfo, error)
}

// UserInfo is a provider-neutral user profile
type UserInfo struct {
	ID    string
	Email string
	Name  string
}
