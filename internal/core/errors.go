package core

import "errors"

// Sentinel errors mapped to HTTP statuses by the API layer.
var (
	ErrUserExists           = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidSubscription  = errors.New("invalid subscription")
	ErrUnknownCurrency      = errors.New("unknown currency code")
)
