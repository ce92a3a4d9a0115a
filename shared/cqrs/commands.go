package cqrs

// RegisterCommand carries a sign-up. Validation tags are checked by the
// command service before anything is hashed or stored.
type RegisterCommand struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required,br_phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Zip      string `json:"zip" validate:"required,br_zip"`
}

// UpdateProfileCommand overwrites the mutable profile fields of UserID.
// Email and password are not part of it.
type UpdateProfileCommand struct {
	UserID  int64  `json:"-" validate:"-"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required,br_phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip" validate:"required,br_zip"`
}

type LoginCommand struct {
	Email    string
	Password string
}
