package services

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/custodia/custodia-api/internal/constants"
	"github.com/custodia/custodia-api/internal/logger"
	"github.com/custodia/custodia-api/internal/store"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Authorizer is the narrow capability the vault depends on. The vault never
// inspects authorization internals; it acts only on the verdict.
type Authorizer interface {
	VerifyAndConsume(ctx context.Context, vault, recipient common.Address, amount *big.Int, authID common.Hash, signature []byte) (bool, error)
}

// WithdrawParams contains parameters for a withdrawal request.
type WithdrawParams struct {
	Recipient common.Address
	Amount    *big.Int
	AuthID    common.Hash
	Signature []byte
}

// VaultService holds the pooled custodial balance. Deposits are
// unconditional; withdrawals are gated solely by a valid, unconsumed, signed
// authorization — there is no privileged withdrawal path.
type VaultService struct {
	store      store.Store
	authorizer Authorizer
	transferer Transferer
	events     EventPublisher
	logger     *zap.Logger

	// address identifies this vault instance in authorization messages.
	address common.Address

	// mu serializes withdrawals. Go gives no whole-call atomicity, so the
	// authorization is made durable before funds move and a later transfer
	// failure strands it; the mutex at least keeps the step sequence of one
	// withdrawal from interleaving with another.
	mu sync.Mutex
}

// NewVaultService creates a vault service. The authorizer reference and the
// vault's own address are required.
func NewVaultService(
	st store.Store,
	authorizer Authorizer,
	transferer Transferer,
	events EventPublisher,
	address common.Address,
) (*VaultService, error) {
	if authorizer == nil {
		return nil, fmt.Errorf("authorizer is required")
	}
	if address == (common.Address{}) {
		return nil, fmt.Errorf("vault address must be non-zero")
	}

	return &VaultService{
		store:      st,
		authorizer: authorizer,
		transferer: transferer,
		events:     events,
		logger:     logger.Log,
		address:    address,
	}, nil
}

// Address returns this vault instance's identity.
func (s *VaultService) Address() common.Address {
	return s.address
}

// Deposit accepts funds from any depositor, incrementing the aggregate
// balance and the depositor's contribution ledger. No authorization required.
func (s *VaultService) Deposit(ctx context.Context, from common.Address, amount *big.Int) error {
	if from == (common.Address{}) {
		return ErrInvalidDepositor
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	if err := s.store.Credit(ctx, from, amount); err != nil {
		return fmt.Errorf("failed to credit deposit: %w", err)
	}

	s.publish(ctx, constants.EventDeposited, map[string]string{
		"from":   from.Hex(),
		"amount": amount.String(),
	})

	s.logger.Info("Deposit accepted",
		zap.String("from", from.Hex()),
		zap.String("amount", amount.String()))

	return nil
}

// Withdraw releases funds to the recipient. The step order is the safety
// property: structural checks, then authorization consumption, then the
// settlement that debits the balance and moves the funds, then the record.
// Consuming before moving funds means a failed transfer cannot be retried
// with the same authorization; the caller must obtain a new one (see
// ErrTransferFailed). The transferer contract keeps the balance untouched on
// failure, so the fresh authorization withdraws the same funds.
func (s *VaultService) Withdraw(ctx context.Context, params WithdrawParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// (1) structural preconditions, checked before any external interaction
	if params.Recipient == (common.Address{}) {
		return ErrInvalidRecipient
	}
	if params.Amount == nil || params.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	balance, err := s.store.Balance(ctx)
	if err != nil {
		return fmt.Errorf("failed to read balance: %w", err)
	}
	if balance.Cmp(params.Amount) < 0 {
		return ErrInsufficientBalance
	}

	// (2) verify and consume the authorization
	ok, err := s.authorizer.VerifyAndConsume(ctx, s.address, params.Recipient, params.Amount, params.AuthID, params.Signature)
	if err != nil {
		return err
	}
	if !ok {
		// The authorizer contract returns an error for every failure; a
		// false verdict without one is treated as a signer mismatch.
		return ErrSignerMismatch
	}

	// (3) settle: debit the balance and move the funds in one step. On
	// failure the transferer leaves the balance as it was; only the
	// authorization is lost.
	if err := s.transferer.Transfer(ctx, params.Recipient, params.Amount); err != nil {
		s.logger.Error("Transfer failed after authorization was consumed",
			zap.String("auth_id", params.AuthID.Hex()),
			zap.String("recipient", params.Recipient.Hex()),
			zap.String("amount", params.Amount.String()),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	// (4) emit the withdrawal record
	s.publish(ctx, constants.EventWithdrawn, map[string]string{
		"to":      params.Recipient.Hex(),
		"amount":  params.Amount.String(),
		"auth_id": params.AuthID.Hex(),
	})

	s.logger.Info("Withdrawal completed",
		zap.String("to", params.Recipient.Hex()),
		zap.String("amount", params.Amount.String()),
		zap.String("auth_id", params.AuthID.Hex()))

	return nil
}

// Balance returns the current aggregate custodial balance.
func (s *VaultService) Balance(ctx context.Context) (*big.Int, error) {
	return s.store.Balance(ctx)
}

// Contribution returns the total amount the depositor has paid in.
func (s *VaultService) Contribution(ctx context.Context, depositor common.Address) (*big.Int, error) {
	return s.store.Contribution(ctx, depositor)
}

func (s *VaultService) publish(ctx context.Context, eventType string, fields map[string]string) {
	if err := s.events.Publish(ctx, NewEvent(eventType, fields)); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
