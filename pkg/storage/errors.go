package storage

import "errors"

// ErrAccountNotFound is returned when no account exists for an email.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when registering an email that is already taken.
var ErrAccountExists = errors.New("account already exists")

// ErrAdNotFound is returned when an ad id does not exist.
var ErrAdNotFound = errors.New("ad not found")

// ErrDepositNotFound is returned when a deposit id does not exist.
var ErrDepositNotFound = errors.New("deposit not found")

// ErrVersionConflict is returned when an account changed between read and write.
var ErrVersionConflict = errors.New("account version conflict")

// ErrConfirmationApplied is returned when a payment confirmation has already been credited.
var ErrConfirmationApplied = errors.New("payment confirmation already applied")

// ErrDepositNotPending is returned when a deposit has already left the PENDING state.
var ErrDepositNotPending = errors.New("deposit not in a pending state")

// ErrAdAlreadyWatched is returned when an account has already been rewarded for an ad.
var ErrAdAlreadyWatched = errors.New("ad already watched")
