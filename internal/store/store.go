// Package store defines the persistence contract for the vault's custodial
// state: the consumed-authorization set, the pooled balance with its
// per-depositor contribution ledger, and the per-recipient payout ledger.
package store

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrAlreadyConsumed is returned by MarkConsumed when the authorization
	// identifier has already transitioned to consumed. The transition is
	// first-wins and permanent.
	ErrAlreadyConsumed = errors.New("authorization id already consumed")

	// ErrInsufficientBalance is returned by Withdraw when the pooled balance
	// cannot cover the requested amount. The balance is never driven negative.
	ErrInsufficientBalance = errors.New("insufficient custodial balance")
)

// ConsumedSetStore tracks which authorization identifiers have been redeemed.
type ConsumedSetStore interface {
	// IsConsumed reports whether authID has been consumed. Read-only.
	IsConsumed(ctx context.Context, authID common.Hash) (bool, error)

	// MarkConsumed atomically records authID as consumed. It returns
	// ErrAlreadyConsumed if a prior call already recorded it; exactly one
	// caller ever succeeds for a given authID.
	MarkConsumed(ctx context.Context, authID common.Hash) error
}

// LedgerStore tracks the pooled custodial balance and its satellite ledgers.
type LedgerStore interface {
	// Balance returns the current aggregate custodial balance.
	Balance(ctx context.Context) (*big.Int, error)

	// Credit increments the aggregate balance and the depositor's
	// contribution ledger by amount.
	Credit(ctx context.Context, depositor common.Address, amount *big.Int) error

	// Withdraw decrements the aggregate balance and increments the
	// recipient's payout ledger by amount as a single atomic step, failing
	// with ErrInsufficientBalance if the balance would go negative. On any
	// failure the balance and the payout ledger are both untouched.
	Withdraw(ctx context.Context, recipient common.Address, amount *big.Int) error

	// Contribution returns the total amount the depositor has paid in.
	Contribution(ctx context.Context, depositor common.Address) (*big.Int, error)

	// Payout returns the total amount paid out to the recipient.
	Payout(ctx context.Context, recipient common.Address) (*big.Int, error)
}

// Store is the full persistence surface the services depend on.
type Store interface {
	ConsumedSetStore
	LedgerStore
}
