package handlers

import (
	"net/http"

	"github.com/custodia/custodia-api/internal/services"
	"github.com/gin-gonic/gin"
)

// VaultHandler handles deposit, withdrawal and balance operations
type VaultHandler struct {
	common *CommonServices
}

// NewVaultHandler creates a new VaultHandler instance
func NewVaultHandler(common *CommonServices) *VaultHandler {
	return &VaultHandler{common: common}
}

// DepositRequest represents the request body for a deposit
type DepositRequest struct {
	From   string `json:"from" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// WithdrawRequest represents the request body for a withdrawal
type WithdrawRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	AuthID    string `json:"auth_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// BalanceResponse represents the vault's aggregate custodial balance
type BalanceResponse struct {
	Object  string `json:"object"`
	Vault   string `json:"vault"`
	Balance string `json:"balance"`
}

// ContributionResponse represents a depositor's paid-in total
type ContributionResponse struct {
	Object    string `json:"object"`
	Depositor string `json:"depositor"`
	Amount    string `json:"amount"`
}

// WithdrawalResponse represents a completed withdrawal
type WithdrawalResponse struct {
	Object    string `json:"object"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
	AuthID    string `json:"auth_id"`
}

// Deposit godoc
// @Summary Deposit funds into the vault
// @Description Accepts a deposit from any depositor; no authorization required
// @Tags vault
// @Accept json
// @Produce json
// @Param body body DepositRequest true "Deposit request"
// @Success 201 {object} ContributionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vault/deposits [post]
func (h *VaultHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	from, err := parseAddress(req.From)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	if err := h.common.VaultService.Deposit(c.Request.Context(), from, amount); err != nil {
		handleServiceError(c, err)
		return
	}

	contribution, err := h.common.VaultService.Contribution(c.Request.Context(), from)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sendSuccess(c, http.StatusCreated, ContributionResponse{
		Object:    "contribution",
		Depositor: from.Hex(),
		Amount:    contribution.String(),
	})
}

// Withdraw godoc
// @Summary Withdraw funds from the vault
// @Description Releases funds to the recipient if the signed authorization is valid and unconsumed
// @Tags vault
// @Accept json
// @Produce json
// @Param body body WithdrawRequest true "Withdrawal request"
// @Success 200 {object} WithdrawalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /vault/withdrawals [post]
func (h *VaultHandler) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	recipient, err := parseAddress(req.Recipient)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	authID, err := parseAuthID(req.AuthID)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	signature, err := parseSignature(req.Signature)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	err = h.common.VaultService.Withdraw(c.Request.Context(), services.WithdrawParams{
		Recipient: recipient,
		Amount:    amount,
		AuthID:    authID,
		Signature: signature,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, WithdrawalResponse{
		Object:    "withdrawal",
		Recipient: recipient.Hex(),
		Amount:    amount.String(),
		AuthID:    authID.Hex(),
	})
}

// GetBalance godoc
// @Summary Get the vault's custodial balance
// @Tags vault
// @Produce json
// @Success 200 {object} BalanceResponse
// @Failure 500 {object} ErrorResponse
// @Router /vault/balance [get]
func (h *VaultHandler) GetBalance(c *gin.Context) {
	balance, err := h.common.VaultService.Balance(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, BalanceResponse{
		Object:  "balance",
		Vault:   h.common.VaultService.Address().Hex(),
		Balance: balance.String(),
	})
}

// GetContribution godoc
// @Summary Get a depositor's total contribution
// @Tags vault
// @Produce json
// @Param address path string true "Depositor address"
// @Success 200 {object} ContributionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vault/depositors/{address} [get]
func (h *VaultHandler) GetContribution(c *gin.Context) {
	depositor, err := parseAddress(c.Param("address"))
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	contribution, err := h.common.VaultService.Contribution(c.Request.Context(), depositor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, ContributionResponse{
		Object:    "contribution",
		Depositor: depositor.Hex(),
		Amount:    contribution.String(),
	})
}
