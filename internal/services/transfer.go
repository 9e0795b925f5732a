package services

import (
	"context"
	"math/big"

	"github.com/custodia/custodia-api/internal/store"
	"github.com/ethereum/go-ethereum/common"
)

// Transferer settles the fund movement of a withdrawal: it debits the pooled
// custodial balance and delivers amount to the recipient as one step. By the
// time it runs the authorization is already consumed, so an implementation
// that fails must leave the balance untouched; the stranded authorization is
// then the only loss, and a fresh one can retry the same funds (see
// VaultService.Withdraw).
type Transferer interface {
	Transfer(ctx context.Context, recipient common.Address, amount *big.Int) error
}

// LedgerTransferer settles withdrawals against the store: the debit and the
// recipient payout credit commit atomically. On-chain submission is out of
// scope: no transfer key enters the system, an external settlement process
// drains the payout ledger.
type LedgerTransferer struct {
	store store.LedgerStore
}

// NewLedgerTransferer creates a store-backed transferer.
func NewLedgerTransferer(ledger store.LedgerStore) *LedgerTransferer {
	return &LedgerTransferer{store: ledger}
}

// Transfer moves amount from the pooled balance to the recipient's payout
// ledger. A failure rolls back both sides.
func (t *LedgerTransferer) Transfer(ctx context.Context, recipient common.Address, amount *big.Int) error {
	return t.store.Withdraw(ctx, recipient, amount)
}
