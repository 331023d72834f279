package models

import (
	"time"
)

// Subscriber represents a newsletter subscriber. Subscriptions use double
// opt-in: a subscriber is created unconfirmed with a confirmation token and
// only counts toward dashboard totals once confirmed.
type Subscriber struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Confirmed    bool       `json:"confirmed" db:"confirmed"`
	ConfirmToken string     `json:"-" db:"confirm_token"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty" db:"confirmed_at"`
}

// SubscribeRequest is the public request body for subscribing
type SubscribeRequest struct {
	Email string `json:"email"`
}
