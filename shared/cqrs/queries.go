package cqrs

// GetProfileQuery fetches a single user by ID.
type GetProfileQuery struct {
	UserID int64
}
