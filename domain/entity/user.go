package entity

import (
	"database/sql"
	"time"
)

type User struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	Password         string         `json:"-"`
	Subscribed       bool           `json:"subscribed"`
	StripeCustomerID sql.NullString `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func NewUser(id, email, password string) *User {
	now := time.Now()
	return &User{
		ID:        id,
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Entitled reports whether the user currently holds an active paid
// subscription. The generation pipeline is gated on this flag.
func (u *User) Entitled() bool {
	return u.Subscribed
}

// BillingIdentity returns the Stripe customer ID and whether one has been
// assigned. The identity is assigned at most once per user.
func (u *User) BillingIdentity() (string, bool) {
	if u.StripeCustomerID.Valid && u.StripeCustomerID.String != "" {
		return u.StripeCustomerID.String, true
	}
	return "", false
}
