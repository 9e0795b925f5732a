package services

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/custodia/custodia-api/internal/logger"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// ChainIDSource reports the chain identifier the service is bound to. The
// authorization check reads it at call time rather than trusting the caller,
// so a signature issued for one network can never be replayed on another.
type ChainIDSource interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// StaticChainIDSource returns a chain id fixed at construction.
type StaticChainIDSource struct {
	chainID *big.Int
}

// NewStaticChainIDSource creates a source pinned to the given chain id.
func NewStaticChainIDSource(chainID *big.Int) *StaticChainIDSource {
	return &StaticChainIDSource{chainID: new(big.Int).Set(chainID)}
}

// ChainID returns the configured chain id.
func (s *StaticChainIDSource) ChainID(_ context.Context) (*big.Int, error) {
	return new(big.Int).Set(s.chainID), nil
}

// RPCChainIDSource reads the chain id from an Ethereum RPC node. The value is
// fetched once and cached; a node never changes its chain id mid-flight.
type RPCChainIDSource struct {
	client *ethclient.Client
	logger *zap.Logger

	mu      sync.Mutex
	chainID *big.Int
}

// NewRPCChainIDSource dials the RPC endpoint and returns a source backed by it.
func NewRPCChainIDSource(rpcURL string) (*RPCChainIDSource, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain RPC: %w", err)
	}

	return &RPCChainIDSource{
		client: client,
		logger: logger.Log,
	}, nil
}

// ChainID returns the node's chain id, fetching it on first use.
func (s *RPCChainIDSource) ChainID(ctx context.Context) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chainID != nil {
		return new(big.Int).Set(s.chainID), nil
	}

	chainID, err := s.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain id: %w", err)
	}

	s.chainID = chainID
	s.logger.Info("Resolved chain id from RPC node", zap.String("chain_id", chainID.String()))

	return new(big.Int).Set(s.chainID), nil
}
