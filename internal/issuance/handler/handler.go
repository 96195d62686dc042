// Package handler exposes the issuance pipeline over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tokengate/internal/invite"
	issuance "tokengate/internal/issuance/service"
	"tokengate/internal/ledger"
	"tokengate/internal/platform/middleware"
	"tokengate/internal/policy/models"
	dErrors "tokengate/pkg/domain-errors"
	"tokengate/pkg/platform/httputil"
)

// Service defines the issuance operations the HTTP surface depends on.
type Service interface {
	ValidateToken(ctx context.Context, policyID, wallet string) (*issuance.ValidationResult, error)
	RequestInvite(ctx context.Context, policyID, wallet string) (invite.Credential, bool, error)
	GenerateLink(ctx context.Context, chatID string) (invite.Credential, error)
	TokenMetadata(ctx context.Context, tokenID string) (ledger.TokenMetadata, models.Chain, error)
}

// Handler handles issuance endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a new issuance Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the issuance routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/validate-token", h.handleValidateToken)
	r.Post("/generate-tg-link", h.handleGenerateLink)
	r.Post("/request-invite", h.handleRequestInvite)
	r.Post("/get-token-metadata", h.handleTokenMetadata)
}

type validateTokenRequest struct {
	WalletAddress string `json:"walletAddress"`
	GroupID       string `json:"groupId"`
}

type validateTokenResponse struct {
	Success      bool    `json:"success"`
	ChatID       string  `json:"chat_id"`
	TokenBalance float64 `json:"tokenBalance"`
}

func (h *Handler) handleValidateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req validateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "Wallet address and group ID are required."))
		return
	}
	if req.WalletAddress == "" || req.GroupID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "Wallet address and group ID are required."))
		return
	}

	result, err := h.service.ValidateToken(ctx, req.GroupID, req.WalletAddress)
	if err != nil {
		h.logFailure(ctx, "token validation failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, validateTokenResponse{
		Success:      true,
		ChatID:       result.ChatID,
		TokenBalance: result.TokenBalance,
	})
}

type generateLinkRequest struct {
	ChatID string `json:"chatId"`
}

type generateLinkResponse struct {
	InviteLink string `json:"inviteLink"`
}

func (h *Handler) handleGenerateLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChatID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "Chat ID is required to generate an invite link."))
		return
	}

	cred, err := h.service.GenerateLink(ctx, req.ChatID)
	if err != nil {
		h.logFailure(ctx, "invite link generation failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, generateLinkResponse{InviteLink: cred.URL})
}

type requestInviteRequest struct {
	WalletAddress string `json:"walletAddress"`
	PolicyID      string `json:"policyId"`
}

type requestInviteResponse struct {
	InviteLink string    `json:"inviteLink"`
	Reused     bool      `json:"reused"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

func (h *Handler) handleRequestInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req requestInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "Wallet address and group ID are required."))
		return
	}
	if req.WalletAddress == "" || req.PolicyID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "Wallet address and group ID are required."))
		return
	}

	cred, reused, err := h.service.RequestInvite(ctx, req.PolicyID, req.WalletAddress)
	if err != nil {
		h.logFailure(ctx, "invite request failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, requestInviteResponse{
		InviteLink: cred.URL,
		Reused:     reused,
		ExpiresAt:  cred.ExpiresAt,
	})
}

type tokenMetadataRequest struct {
	TokenID string `json:"tokenId"`
}

type tokenMetadataResponse struct {
	Chain    models.Chain `json:"chain"`
	Name     string       `json:"name,omitempty"`
	Symbol   string       `json:"symbol,omitempty"`
	Decimals *int         `json:"decimals,omitempty"`
	LogoURL  string       `json:"logo,omitempty"`
}

func (h *Handler) handleTokenMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req tokenMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TokenID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "Token ID is required."))
		return
	}

	md, chain, err := h.service.TokenMetadata(ctx, req.TokenID)
	if err != nil {
		h.logFailure(ctx, "token metadata lookup failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tokenMetadataResponse{
		Chain:    chain,
		Name:     md.Name,
		Symbol:   md.Symbol,
		Decimals: md.Decimals,
		LogoURL:  md.LogoURL,
	})
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	if h.logger == nil {
		return
	}
	h.logger.WarnContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}
