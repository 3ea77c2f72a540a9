// Package models defines the data types shared between the Foody client
// stores, the gateway clients, and the CLI.
package models

// User is the profile document kept by the identity/profile gateway. Exactly
// one document exists per AccountID. Name is required and non-empty once a
// user exists; Bio is optional and may be unsupported by older remote schemas.
type User struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Bio       string `json:"bio,omitempty"`
	Avatar    string `json:"avatar"`
}

// UserPatch carries the profile fields a caller wants to change. Nil means
// "leave as is".
type UserPatch struct {
	Name *string
	Bio  *string
}

// Account is the remote authentication account. Its ID is the stable external
// identity key the profile document is keyed by.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is a remote-authenticated continuation proving a signed-in account.
type Session struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
}
