package models

import "time"

// User is the local user profile stored next to the groups.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is optional.
	Email string `json:"email,omitempty"`

	// Preferences are presentation defaults for new groups.
	Preferences Preferences `json:"preferences"`

	// CreatedAt is when the profile was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Preferences holds user-level display settings.
type Preferences struct {
	Currency string `json:"currency"`
	Theme    string `json:"theme"`
}

// DefaultPreferences are applied to profiles created without explicit settings.
func DefaultPreferences() Preferences {
	return Preferences{Currency: "$", Theme: "light"}
}
