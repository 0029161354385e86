package api

import (
	"net/http"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatHandler serves the AI chat endpoints.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest defines the expected JSON for a chat turn. AgentType
// defaults to "general"; an empty conversationId starts a new one.
type ChatRequest struct {
	AgentType      string `json:"agentType"`
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversationId"`
}

// ChatResponse is the DTO for a chat reply.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversationId"`
	AgentType      string `json:"agentType"`
}

// ConversationResponse is the DTO for a conversation listing entry.
type ConversationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageResponse is the DTO for a transcript message.
type MessageResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"isUser"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if req.AgentType == "" {
		req.AgentType = "general"
	}

	var conversationID *primitive.ObjectID
	if req.ConversationID != "" {
		id, err := primitive.ObjectIDFromHex(req.ConversationID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid conversation id")
			return
		}
		conversationID = &id
	}

	result, err := h.chatService.Chat(c.Request.Context(), userID, req.AgentType, req.Message, conversationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ChatResponse{
		Response:       result.Response,
		ConversationID: result.ConversationID.Hex(),
		AgentType:      result.AgentType,
	})
}

func (h *ChatHandler) GetConversations(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	convs, err := h.chatService.GetConversations(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responses := make([]ConversationResponse, len(convs))
	for i, conv := range convs {
		responses[i] = ConversationResponse{
			ID:        conv.ID.Hex(),
			Title:     conv.Title,
			CreatedAt: conv.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, responses)
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	conversationID, err := primitive.ObjectIDFromHex(c.Param("conversationId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid conversation id")
		return
	}

	msgs, err := h.chatService.GetMessages(c.Request.Context(), conversationID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapMessagesToResponse(msgs))
}

func mapMessagesToResponse(msgs []domain.Message) []MessageResponse {
	responses := make([]MessageResponse, len(msgs))
	for i, msg := range msgs {
		responses[i] = MessageResponse{
			ID:        msg.ID.Hex(),
			Content:   msg.Content,
			IsUser:    msg.IsUser,
			CreatedAt: msg.CreatedAt,
		}
	}
	return responses
}
