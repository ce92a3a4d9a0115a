package models

// User is the write model stored in the users table.
// PasswordHash is never serialised.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Zip          string `json:"zip"`
}

// Profile holds the mutable part of a user.
type Profile struct {
	Name    string
	Phone   string
	Address string
	City    string
	Zip     string
}

// View projects a User to its outbound shape.
func (u *User) View() *UserView {
	return &UserView{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		City:    u.City,
		Zip:     u.Zip,
	}
}
