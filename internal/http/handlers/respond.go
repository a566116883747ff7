package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const requestIDKey = "request_id"

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get(requestIDKey)

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

// RespondError writes {message, requestId, ...extra}.
func RespondError(ctx *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}

	for k, v := range extra {
		body[k] = v
	}

	if id := requestIDFrom(ctx); id != "" {
		body["requestId"] = id
	}

	ctx.AbortWithStatusJSON(status, body)
}

func RespondBadRequest(ctx *gin.Context, message string, extra gin.H) {
	RespondError(ctx, http.StatusBadRequest, message, extra)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message, nil)
}

func RespondInternal(ctx *gin.Context, message string, err error) {
	var extra gin.H
	if err != nil {
		extra = gin.H{"error": err.Error()}
	}
	RespondError(ctx, http.StatusInternalServerError, message, extra)
}
