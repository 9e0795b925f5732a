package handlers

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/custodia/custodia-api/internal/logger"
	"github.com/custodia/custodia-api/internal/services"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommonServices holds shared dependencies used across handlers
type CommonServices struct {
	VaultService         *services.VaultService
	AuthorizationService *services.AuthorizationService
	logger               *zap.Logger
}

// CommonServicesConfig contains all dependencies needed to create CommonServices
type CommonServicesConfig struct {
	VaultService         *services.VaultService
	AuthorizationService *services.AuthorizationService
	Logger               *zap.Logger
}

// NewCommonServices creates a new instance of CommonServices
func NewCommonServices(config CommonServicesConfig) *CommonServices {
	if config.Logger == nil {
		config.Logger = logger.Log
	}

	return &CommonServices{
		VaultService:         config.VaultService,
		AuthorizationService: config.AuthorizationService,
		logger:               config.Logger,
	}
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// sendError is a helper function that combines logging and error response
// It logs the error with the given message and sends a JSON error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	// Get correlation ID from context
	correlationID := ""
	if id, exists := c.Get("correlationID"); exists {
		correlationID, _ = id.(string)
	}

	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", correlationID),
	)

	response := struct {
		Error         string `json:"error"`
		CorrelationID string `json:"correlation_id,omitempty"`
	}{
		Error:         message,
		CorrelationID: correlationID,
	}

	c.JSON(statusCode, response)
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// handleServiceError maps the service error taxonomy onto HTTP status codes.
// Structural problems are 400/422, authorization problems 401, replays 409,
// and the burned-authorization transfer failure 502.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRecipient),
		errors.Is(err, services.ErrInvalidDepositor),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidSigner):
		sendError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, services.ErrInvalidSignature),
		errors.Is(err, services.ErrSignerMismatch):
		sendError(c, http.StatusUnauthorized, err.Error(), err)
	case errors.Is(err, services.ErrNotController):
		sendError(c, http.StatusForbidden, err.Error(), err)
	case errors.Is(err, services.ErrAuthorizationConsumed):
		sendError(c, http.StatusConflict, err.Error(), err)
	case errors.Is(err, services.ErrInsufficientBalance):
		sendError(c, http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, services.ErrTransferFailed):
		sendError(c, http.StatusBadGateway, err.Error(), err)
	default:
		sendError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// parseAddress validates and decodes a 20-byte hex address.
func parseAddress(value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, errors.New("invalid address: expected 0x-prefixed 20-byte hex")
	}
	return common.HexToAddress(value), nil
}

// parseAuthID validates and decodes a 32-byte hex authorization id.
func parseAuthID(value string) (common.Hash, error) {
	decoded, err := hexutil.Decode(value)
	if err != nil {
		return common.Hash{}, errors.New("invalid auth_id: expected 0x-prefixed hex")
	}
	if len(decoded) != common.HashLength {
		return common.Hash{}, errors.New("invalid auth_id: expected 32 bytes")
	}
	return common.BytesToHash(decoded), nil
}

// parseAmount decodes a positive decimal amount.
func parseAmount(value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, errors.New("invalid amount: expected a decimal integer")
	}
	if amount.Sign() <= 0 {
		return nil, errors.New("invalid amount: must be greater than zero")
	}
	return amount, nil
}

// parseSignature decodes a 65-byte hex signature.
func parseSignature(value string) ([]byte, error) {
	decoded, err := hexutil.Decode(value)
	if err != nil {
		return nil, errors.New("invalid signature: expected 0x-prefixed hex")
	}
	return decoded, nil
}
