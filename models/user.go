package models

import "time"

// GuestUserID stamps orders placed without a signed-in session.
const GuestUserID = "guest"

type SavedAddress struct {
	ID string `json:"id"`
	Address
	IsDefault bool `json:"is_default"`
}

type PaymentMethod struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Label     string `json:"label"`
	IsDefault bool   `json:"is_default"`
}

type User struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Password       string          `json:"password_hash,omitempty"`
	Addresses      []SavedAddress  `json:"addresses"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Sanitized strips the password hash before the user leaves the API.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// DefaultAddress returns the default saved address, or the first one when
// none is flagged. Nil when the user has no addresses.
func (u User) DefaultAddress() *SavedAddress {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			addr := u.Addresses[i]
			return &addr
		}
	}
	if len(u.Addresses) > 0 {
		addr := u.Addresses[0]
		return &addr
	}
	return nil
}
