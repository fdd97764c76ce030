package models

import (
	"errors"
)

var (
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")

	ErrListingNotFound   = errors.New("models: listing not found")
	ErrListingIncomplete = errors.New("models: listing is not ready to be published")

	ErrBookingNotFound   = errors.New("models: booking not found")
	ErrSelfBooking       = errors.New("models: owner cannot book own listing")
	ErrBookingOverlap    = errors.New("models: dates overlap an approved booking")
	ErrInvalidDateRange  = errors.New("models: end date before start date")
	ErrInvalidTransition = errors.New("models: invalid status transition")

	ErrChatNotFound  = errors.New("models: chat not found")
	ErrNotChatMember = errors.New("models: user is not a chat member")
	ErrEmptyMessage  = errors.New("models: empty message body")

	ErrAlreadyFavorited = errors.New("models: listing already favorited")

	ErrSavedSearchNotFound = errors.New("models: saved search not found")

	ErrForbidden = errors.New("models: forbidden")
)
