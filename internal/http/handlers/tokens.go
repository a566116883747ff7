package handlers

import (
	"errors"
	"net/http"

	"github.com/geocoder89/staffhub/internal/auth"
	"github.com/gin-gonic/gin"
)

type TokenIssuer interface {
	IssueToken(payload map[string]any) (string, error)
}

type TokensHandler struct {
	tokens TokenIssuer
}

func NewTokensHandler(tokens TokenIssuer) *TokensHandler {
	return &TokensHandler{tokens: tokens}
}

// Issue signs whatever identity the client posts. There is no credential
// check here; the client authenticates users upstream.
func (h *TokensHandler) Issue(ctx *gin.Context) {
	var payload map[string]any

	if err := ctx.ShouldBindJSON(&payload); err != nil {
		RespondBadRequest(ctx, msgInvalidBody, nil)
		return
	}

	token, err := h.tokens.IssueToken(payload)
	if err != nil {
		if errors.Is(err, auth.ErrMissingEmail) {
			RespondBadRequest(ctx, "Email is required", nil)
			return
		}
		RespondInternal(ctx, "Error issuing token", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}
