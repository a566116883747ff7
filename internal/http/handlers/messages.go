package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/message"
	"github.com/geocoder89/staffhub/internal/repo"
	"github.com/gin-gonic/gin"
)

type MessagesHandler struct {
	messages repo.MessageRepo
	timeout  time.Duration
	now      func() time.Time
}

func NewMessagesHandler(messages repo.MessageRepo, timeout time.Duration) *MessagesHandler {
	return &MessagesHandler{messages: messages, timeout: timeout, now: time.Now}
}

// POST /messages
func (h *MessagesHandler) Create(ctx *gin.Context) {
	var req message.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	m := message.NewFromCreateRequest(req, h.now())

	created, ok := run(ctx, h.timeout, "saving message", func(c context.Context) (message.Message, error) {
		return h.messages.Create(c, m)
	})
	if !ok {
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// GET /messages, newest first.
func (h *MessagesHandler) List(ctx *gin.Context) {
	items, ok := run(ctx, h.timeout, "fetching messages", h.messages.List)
	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, items)
}
