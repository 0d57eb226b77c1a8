package models

// User is stored under users/<email>.json.
type User struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	HashedPassword string `json:"hashedPassword"`
	TOSAgreement   bool   `json:"tosAgreement"`
	Cart           string `json:"cart,omitempty"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
