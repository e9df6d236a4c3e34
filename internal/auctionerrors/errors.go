package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrHuddleNotFound = errors.New("huddle not found")
	ErrBidNotFound    = errors.New("bid not found")
	ErrNoBids         = errors.New("no bids found for huddle")
)

// Validation errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidTime  = errors.New("scheduled time must be in the future")
	ErrInvalidProof = errors.New("social proof link failed validation")
	ErrInvalidStars = errors.New("stars must be between 1 and 5")
)

// Authorization errors
var (
	ErrNotRegistered  = errors.New("host is not registered")
	ErrNotHost        = errors.New("caller is not the huddle's host")
	ErrOwnHuddle      = errors.New("hosts cannot bid on their own huddles")
	ErrNotParticipant = errors.New("account did not participate in the huddle")
)

// Lifecycle state errors
var (
	ErrNotOpen        = errors.New("huddle is not open for bids")
	ErrNotPending     = errors.New("huddle is not awaiting host acceptance")
	ErrNotClosed      = errors.New("huddle is not closed")
	ErrExpired        = errors.New("huddle's scheduled time has passed")
	ErrTimeNotReached = errors.New("huddle's scheduled time not reached yet")
	ErrAlreadyClaimed = errors.New("huddle has already been claimed")
	ErrNoWinner       = errors.New("huddle closed without a winning bid")
)

// Conflict errors
var (
	ErrBidTooLow         = errors.New("bid value too low")
	ErrAlreadyRegistered = errors.New("account already has an identity binding")
	ErrAlreadyRated      = errors.New("rating already recorded for this huddle")
)

// Collaborator errors
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
)
