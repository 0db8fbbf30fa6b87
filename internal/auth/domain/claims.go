// Package domain defines the authentication domain types and failure kinds.
package domain

import "time"

// Claims is the payload embedded in a signed access token. Claims are
// immutable once issued; they live only inside the token itself.
type Claims struct {
	// Subject is the stringified numeric id of the user the token was issued for.
	Subject string
	// Username is carried for convenience; never trusted for lookups.
	Username string
	// ExpiresAt is the absolute expiration time of the token.
	ExpiresAt time.Time
}
