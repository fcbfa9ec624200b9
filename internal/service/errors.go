package service

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// Reservation conflicts.
	ErrSelfPurchase    = errors.New("cannot buy your own artwork")
	ErrArtworkReserved = errors.New("artwork is already in someone's cart")

	// Checkout preconditions, checked in this order.
	ErrArtworkUnavailable = errors.New("artwork no longer available")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrBelowMinimum       = errors.New("order total below the minimum")

	ErrInvalidTransition = errors.New("invalid order status transition")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrReviewExists       = errors.New("order already reviewed")
)
