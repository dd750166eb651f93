package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/chat"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Messages []chat.Message `json:"messages" binding:"required,min=1,max=50,dive"`
	Page     string         `json:"page"`
}

// ChatHandler relays the help widget
type ChatHandler struct {
	chat *chat.Service
}

// NewChatHandler creates a new chat handler
func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{chat: svc}
}

// GetGreeting handles GET /chat
func (h *ChatHandler) GetGreeting(c *gin.Context) {
	respondOK(c, "Chat ready", gin.H{
		"message":     chat.Message{Role: chat.RoleAssistant, Content: chat.Greeting},
		"suggestions": chat.Suggestions,
	})
}

// SendMessage handles POST /chat
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	st := middleware.GetSession(c)
	reply, err := h.chat.Send(c.Request.Context(), req.Messages, req.Page, chat.Target{
		Cart:    st.Cart,
		Coupons: st,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Reply received", reply)
}
