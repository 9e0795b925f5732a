// Package postgres provides the pgx-backed Store implementation used in
// deployed stages.
package postgres

import (
	"context"
	"math/big"

	"github.com/custodia/custodia-api/internal/helpers"
	"github.com/custodia/custodia-api/internal/store"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS consumed_authorizations (
    auth_id     BYTEA PRIMARY KEY,
    consumed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS vault_balance (
    id      SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
    balance NUMERIC(78, 0) NOT NULL DEFAULT 0 CHECK (balance >= 0)
);

INSERT INTO vault_balance (id, balance) VALUES (1, 0) ON CONFLICT (id) DO NOTHING;

CREATE TABLE IF NOT EXISTS depositor_contributions (
    address BYTEA PRIMARY KEY,
    amount  NUMERIC(78, 0) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS recipient_payouts (
    address BYTEA PRIMARY KEY,
    amount  NUMERIC(78, 0) NOT NULL DEFAULT 0
);
`

// Store persists vault state in PostgreSQL. Amounts are NUMERIC(78,0), wide
// enough for a 256-bit unsigned integer.
type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// New creates a Store on top of an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// InitSchema creates the vault tables if they do not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to initialize vault schema")
	}
	return nil
}

// IsConsumed reports whether authID has been consumed.
func (s *Store) IsConsumed(ctx context.Context, authID common.Hash) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM consumed_authorizations WHERE auth_id = $1)`,
		authID.Bytes(),
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "failed to query consumed set")
	}
	return exists, nil
}

// MarkConsumed inserts authID into the consumed set. The primary key makes
// the insert first-wins; a conflicting insert affects zero rows.
func (s *Store) MarkConsumed(ctx context.Context, authID common.Hash) error {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO consumed_authorizations (auth_id) VALUES ($1) ON CONFLICT (auth_id) DO NOTHING`,
		authID.Bytes(),
	)
	if err != nil {
		return errors.Wrap(err, "failed to mark authorization consumed")
	}
	if tag.RowsAffected() == 0 {
		return store.ErrAlreadyConsumed
	}
	return nil
}

// Balance returns the aggregate custodial balance.
func (s *Store) Balance(ctx context.Context) (*big.Int, error) {
	var balance string
	err := s.pool.QueryRow(ctx, `SELECT balance::TEXT FROM vault_balance WHERE id = 1`).Scan(&balance)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query vault balance")
	}
	return parseAmount(balance)
}

// Credit adds amount to the aggregate balance and the depositor ledger in one
// transaction.
func (s *Store) Credit(ctx context.Context, depositor common.Address, amount *big.Int) error {
	return helpers.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE vault_balance SET balance = balance + $1::NUMERIC WHERE id = 1`,
			amount.String(),
		); err != nil {
			return errors.Wrap(err, "failed to credit vault balance")
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO depositor_contributions (address, amount) VALUES ($1, $2::NUMERIC)
			 ON CONFLICT (address) DO UPDATE SET amount = depositor_contributions.amount + EXCLUDED.amount`,
			depositor.Bytes(), amount.String(),
		); err != nil {
			return errors.Wrap(err, "failed to credit depositor contribution")
		}
		return nil
	})
}

// Withdraw subtracts amount from the aggregate balance and credits the
// recipient's payout ledger in one transaction. The WHERE clause keeps the
// balance from going negative under concurrent withdrawals; a failure on
// either statement rolls the whole pair back.
func (s *Store) Withdraw(ctx context.Context, recipient common.Address, amount *big.Int) error {
	return helpers.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE vault_balance SET balance = balance - $1::NUMERIC WHERE id = 1 AND balance >= $1::NUMERIC`,
			amount.String(),
		)
		if err != nil {
			return errors.Wrap(err, "failed to debit vault balance")
		}
		if tag.RowsAffected() == 0 {
			return store.ErrInsufficientBalance
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO recipient_payouts (address, amount) VALUES ($1, $2::NUMERIC)
			 ON CONFLICT (address) DO UPDATE SET amount = recipient_payouts.amount + EXCLUDED.amount`,
			recipient.Bytes(), amount.String(),
		); err != nil {
			return errors.Wrap(err, "failed to credit recipient payout")
		}
		return nil
	})
}

// Contribution returns the depositor's total paid-in amount.
func (s *Store) Contribution(ctx context.Context, depositor common.Address) (*big.Int, error) {
	return s.ledgerAmount(ctx,
		`SELECT amount::TEXT FROM depositor_contributions WHERE address = $1`,
		depositor,
	)
}

// Payout returns the recipient's total paid-out amount.
func (s *Store) Payout(ctx context.Context, recipient common.Address) (*big.Int, error) {
	return s.ledgerAmount(ctx,
		`SELECT amount::TEXT FROM recipient_payouts WHERE address = $1`,
		recipient,
	)
}

func (s *Store) ledgerAmount(ctx context.Context, query string, address common.Address) (*big.Int, error) {
	var amount string
	err := s.pool.QueryRow(ctx, query, address.Bytes()).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query ledger amount")
	}
	return parseAmount(amount)
}

func parseAmount(value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, errors.Errorf("invalid numeric value in ledger: %q", value)
	}
	return amount, nil
}
