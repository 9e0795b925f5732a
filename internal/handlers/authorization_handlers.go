package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthorizationHandler handles authorization queries and signer administration
type AuthorizationHandler struct {
	common *CommonServices
}

// NewAuthorizationHandler creates a new AuthorizationHandler instance
func NewAuthorizationHandler(common *CommonServices) *AuthorizationHandler {
	return &AuthorizationHandler{common: common}
}

// AuthorizationResponse represents the consumption status of an authorization id
type AuthorizationResponse struct {
	Object   string `json:"object"`
	AuthID   string `json:"auth_id"`
	Consumed bool   `json:"consumed"`
}

// UpdateSignerRequest represents the request body for rotating the signer
type UpdateSignerRequest struct {
	NewSigner string `json:"new_signer" binding:"required"`
}

// SignerResponse represents the configured signer identity
type SignerResponse struct {
	Object string `json:"object"`
	Signer string `json:"signer"`
}

// GetAuthorization godoc
// @Summary Get the consumption status of an authorization id
// @Tags authorizations
// @Produce json
// @Param auth_id path string true "Authorization id (32-byte hex)"
// @Success 200 {object} AuthorizationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /authorizations/{auth_id} [get]
func (h *AuthorizationHandler) GetAuthorization(c *gin.Context) {
	authID, err := parseAuthID(c.Param("auth_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	consumed, err := h.common.AuthorizationService.IsConsumed(c.Request.Context(), authID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, AuthorizationResponse{
		Object:   "authorization",
		AuthID:   authID.Hex(),
		Consumed: consumed,
	})
}

// UpdateSigner godoc
// @Summary Replace the trusted signer identity
// @Description Restricted to the designated controller; the caller identity is taken from the X-Controller-Address header set by the gateway's authentication layer
// @Tags authorizations
// @Accept json
// @Produce json
// @Param X-Controller-Address header string true "Authenticated caller address"
// @Param body body UpdateSignerRequest true "New signer identity"
// @Success 200 {object} SignerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /authorizations/signer [put]
func (h *AuthorizationHandler) UpdateSigner(c *gin.Context) {
	caller, err := parseAddress(c.GetHeader("X-Controller-Address"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid or missing X-Controller-Address header", err)
		return
	}

	var req UpdateSignerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	newSigner, err := parseAddress(req.NewSigner)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	if err := h.common.AuthorizationService.UpdateSigner(c.Request.Context(), caller, newSigner); err != nil {
		handleServiceError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, SignerResponse{
		Object: "signer",
		Signer: newSigner.Hex(),
	})
}
