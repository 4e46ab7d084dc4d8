package entity

import "time"

// Author is an identity-provider-backed user. ExternalID is the provider's
// user identifier and the value every ownership comparison runs against.
// Name and Email are denormalized copies of the provider profile, writable
// only through identity sync.
type Author struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Identity is the per-request view of the requester as asserted by the
// identity provider. A zero ExternalID means anonymous.
type Identity struct {
	ExternalID string
	Name       string
	Email      string
}

func (i Identity) Anonymous() bool {
	return i.ExternalID == ""
}
