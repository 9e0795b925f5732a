package services

import "errors"

// Failure classes surfaced by the vault and authorization services. Each
// class maps to a distinct recovery path for the caller, so they are kept as
// separate sentinels rather than one generic error.
var (
	// Structural validation failures. Recoverable by retrying with corrected
	// input; nothing was consumed.
	ErrInvalidRecipient    = errors.New("recipient must be a non-zero address")
	ErrInvalidDepositor    = errors.New("depositor must be a non-zero address")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientBalance = errors.New("withdrawal amount exceeds custodial balance")

	// Authorization failures. The consumed-set is untouched; the caller needs
	// a fresh, correctly signed authorization.
	ErrSignerMismatch   = errors.New("recovered signer does not match configured signer identity")
	ErrInvalidSignature = errors.New("malformed authorization signature")

	// Replay failure. Permanent for the given authorization id.
	ErrAuthorizationConsumed = errors.New("authorization id already consumed")

	// Transfer failure after the authorization was consumed. The id is burned;
	// retrying requires an entirely new authorization.
	ErrTransferFailed = errors.New("transfer failed after authorization was consumed")

	// Administrative failures.
	ErrNotController = errors.New("caller is not the designated controller")
	ErrInvalidSigner = errors.New("signer identity must be a non-zero address")
)
