package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/custodia/custodia-api/internal/constants"
	"github.com/custodia/custodia-api/internal/logger"
	"github.com/custodia/custodia-api/internal/signing"
	"github.com/custodia/custodia-api/internal/store"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// AuthorizationService validates signed withdrawal authorizations against the
// configured signer identity and tracks which authorization ids have been
// redeemed. It holds no funds; the vault trusts only its boolean verdict.
type AuthorizationService struct {
	consumed store.ConsumedSetStore
	chain    ChainIDSource
	events   EventPublisher
	logger   *zap.Logger

	// controller is the only identity allowed to rotate the signer. Set at
	// construction, never mutated.
	controller common.Address

	mu     sync.RWMutex
	signer common.Address
}

// NewAuthorizationService creates an authorization service. The initial
// signer and the controller must both be non-zero.
func NewAuthorizationService(
	consumed store.ConsumedSetStore,
	chain ChainIDSource,
	events EventPublisher,
	signer common.Address,
	controller common.Address,
) (*AuthorizationService, error) {
	if signer == (common.Address{}) {
		return nil, ErrInvalidSigner
	}
	if controller == (common.Address{}) {
		return nil, fmt.Errorf("controller must be a non-zero address")
	}

	return &AuthorizationService{
		consumed:   consumed,
		chain:      chain,
		events:     events,
		logger:     logger.Log,
		controller: controller,
		signer:     signer,
	}, nil
}

// VerifyAndConsume checks that signature covers the (vault, recipient,
// amount, authID, chainID) tuple, was produced by the configured signer, and
// that authID has never been redeemed. On success authID is marked consumed
// before the method returns; on any failure the consumed-set is untouched.
//
// The chain id is read from the configured source at call time, never taken
// from the caller.
func (s *AuthorizationService) VerifyAndConsume(
	ctx context.Context,
	vault common.Address,
	recipient common.Address,
	amount *big.Int,
	authID common.Hash,
	signature []byte,
) (bool, error) {
	if amount == nil || amount.Sign() <= 0 {
		return false, ErrInvalidAmount
	}

	consumed, err := s.consumed.IsConsumed(ctx, authID)
	if err != nil {
		return false, fmt.Errorf("failed to check consumed set: %w", err)
	}
	if consumed {
		return false, ErrAuthorizationConsumed
	}

	chainID, err := s.chain.ChainID(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to resolve chain id: %w", err)
	}

	msg := signing.Message{
		Vault:     vault,
		Recipient: recipient,
		Amount:    amount,
		AuthID:    authID,
		ChainID:   chainID,
	}

	recovered, err := signing.RecoverSigner(msg.SignedDigest(), signature)
	if err != nil {
		s.logger.Warn("Rejected malformed authorization signature",
			zap.String("auth_id", authID.Hex()),
			zap.Error(err))
		return false, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	s.mu.RLock()
	signer := s.signer
	s.mu.RUnlock()

	if recovered != signer {
		s.logger.Warn("Rejected authorization from unexpected signer",
			zap.String("auth_id", authID.Hex()),
			zap.String("recovered", recovered.Hex()))
		return false, ErrSignerMismatch
	}

	// The store insert is the authoritative first-wins gate; the read above
	// only classifies the error early. A concurrent redeem of the same id
	// loses here.
	if err := s.consumed.MarkConsumed(ctx, authID); err != nil {
		if errors.Is(err, store.ErrAlreadyConsumed) {
			return false, ErrAuthorizationConsumed
		}
		return false, fmt.Errorf("failed to consume authorization: %w", err)
	}

	s.publish(ctx, constants.EventAuthorizationConsumed, map[string]string{
		"auth_id": authID.Hex(),
	})

	s.logger.Info("Authorization consumed",
		zap.String("auth_id", authID.Hex()),
		zap.String("recipient", recipient.Hex()),
		zap.String("amount", amount.String()))

	return true, nil
}

// IsConsumed reports whether authID has been redeemed. Read-only.
func (s *AuthorizationService) IsConsumed(ctx context.Context, authID common.Hash) (bool, error) {
	return s.consumed.IsConsumed(ctx, authID)
}

// UpdateSigner replaces the signer identity. Only the controller configured
// at construction may call it; already-consumed ids are unaffected.
func (s *AuthorizationService) UpdateSigner(ctx context.Context, caller common.Address, newSigner common.Address) error {
	if caller != s.controller {
		return ErrNotController
	}
	if newSigner == (common.Address{}) {
		return ErrInvalidSigner
	}

	s.mu.Lock()
	previous := s.signer
	s.signer = newSigner
	s.mu.Unlock()

	s.publish(ctx, constants.EventSignerUpdated, map[string]string{
		"new_signer": newSigner.Hex(),
	})

	s.logger.Info("Signer identity updated",
		zap.String("previous_signer", previous.Hex()),
		zap.String("new_signer", newSigner.Hex()))

	return nil
}

// Signer returns the currently configured signer identity.
func (s *AuthorizationService) Signer() common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signer
}

func (s *AuthorizationService) publish(ctx context.Context, eventType string, fields map[string]string) {
	if err := s.events.Publish(ctx, NewEvent(eventType, fields)); err != nil {
		// The state transition is already committed; a lost event must not
		// unwind it.
		s.logger.Error("Failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
