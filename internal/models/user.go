package models

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique). Used for login.
	Email string

	// FirstName is the user's given name, shown next to balances.
	FirstName string

	// LastName is the user's family name.
	LastName string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to API responses.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// DisplayName returns the name used in insight and balance views.
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
