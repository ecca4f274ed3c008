package domain

import "time"

// User is the owner of a task list. Its only identity visible to clients
// is the opaque access token, which never changes after creation.
type User struct {
	ID        int64
	Token     string
	CreatedAt time.Time
}

// NewUser creates a User for the given token. The numeric ID is assigned
// by the store on first persistence.
func NewUser(token string) (*User, error) {
	user := &User{
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Token == "" {
		return ErrEmptyToken
	}
	return nil
}
