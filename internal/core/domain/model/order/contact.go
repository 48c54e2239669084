package order

import "strings"

// Contact is the notification contact snapshot captured at checkout.
// Both fields are optional: a missing detail means the matching
// notification channel is skipped for this order, never that the order
// is invalid. The SMS channel normalizes the phone number again at send
// time, so only an obviously broken email is rejected here.
type Contact struct {
	phone string
	email string
}

// NewContact creates a contact snapshot. Values are trimmed; an email
// without an at sign is dropped rather than stored.
func NewContact(phone, email string) Contact {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		email = ""
	}
	return Contact{
		phone: strings.TrimSpace(phone),
		email: email,
	}
}

// Phone returns the contact phone number, empty if none was given.
func (c Contact) Phone() string { return c.phone }

// Email returns the contact email address, empty if none was given.
func (c Contact) Email() string { return c.email }
