package http

import (
	"crypto/subtle"
	"net/http"

	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives identity provider events and keeps the local
// author mirror in sync. The provider is the source of truth for author
// profiles; nothing else writes them.
type WebhookHandler struct {
	authorUseCase usecase.AuthorUseCase
	secret        string
	logger        *logger.Logger
}

func NewWebhookHandler(authorUseCase usecase.AuthorUseCase, secret string, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		authorUseCase: authorUseCase,
		secret:        secret,
		logger:        logger,
	}
}

type identityEvent struct {
	Type string `json:"type" binding:"required"`
	Data struct {
		ID    string `json:"id" binding:"required"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"data" binding:"required"`
}

// HandleIdentityEvent godoc
// @Summary      Identity provider webhook
// @Description  Consume user.created, user.updated, and user.deleted events from the identity provider
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret header string true "Shared webhook secret"
// @Param        request body identityEvent true "Identity event"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /webhooks/identity [post]
func (h *WebhookHandler) HandleIdentityEvent(c *gin.Context) {
	provided := c.GetHeader("X-Webhook-Secret")
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook secret"})
		return
	}

	var event identityEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch event.Type {
	case "user.created", "user.updated":
		if _, err := h.authorUseCase.SyncAuthor(event.Data.ID, event.Data.Name, event.Data.Email); err != nil {
			h.logger.Error("Failed to sync author from webhook: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync author"})
			return
		}
	case "user.deleted":
		if err := h.authorUseCase.RemoveAuthor(event.Data.ID); err != nil {
			h.logger.Error("Failed to remove author from webhook: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove author"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
