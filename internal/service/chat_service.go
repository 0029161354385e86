package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitai/agent-backend/internal/ai"
	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	Response       string
	ConversationID primitive.ObjectID
	AgentType      string
}

// ChatService proxies user messages to the completion provider under a
// per-agent-type system prompt, persisting the transcript.
type ChatService interface {
	Chat(ctx context.Context, userID primitive.ObjectID, agentType, message string, conversationID *primitive.ObjectID) (*ChatResult, error)
	GetConversations(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error)
	GetMessages(ctx context.Context, conversationID, userID primitive.ObjectID) ([]domain.Message, error)
}

type chatService struct {
	convRepo  repository.ConversationRepository
	userRepo  repository.UserRepository
	equipment EquipmentService
	provider  ai.Client
	prompts   ai.PromptSet
}

// NewChatService creates the chat service.
func NewChatService(
	convRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	equipment EquipmentService,
	provider ai.Client,
	prompts ai.PromptSet,
) ChatService {
	return &chatService{
		convRepo:  convRepo,
		userRepo:  userRepo,
		equipment: equipment,
		provider:  provider,
		prompts:   prompts,
	}
}

func (s *chatService) Chat(ctx context.Context, userID primitive.ObjectID, agentType, message string, conversationID *primitive.ObjectID) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	conv, err := s.resolveConversation(ctx, userID, message, conversationID)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.Message{
		ConversationID: conv.ID,
		Content:        message,
		IsUser:         true,
	}
	if _, err := s.convRepo.AddMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("saving user message: %w", err)
	}

	prompt, err := s.buildPrompt(ctx, agentType, message, conv.ID)
	if err != nil {
		return nil, err
	}

	reply, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		logrus.WithError(err).Error("chat completion failed")
		return nil, err
	}

	aiMsg := &domain.Message{
		ConversationID: conv.ID,
		Content:        reply,
		IsUser:         false,
	}
	if _, err := s.convRepo.AddMessage(ctx, aiMsg); err != nil {
		return nil, fmt.Errorf("saving assistant message: %w", err)
	}

	return &ChatResult{
		Response:       reply,
		ConversationID: conv.ID,
		AgentType:      agentType,
	}, nil
}

// resolveConversation loads and ownership-checks an existing
// conversation, or starts a new one titled from the first message.
func (s *chatService) resolveConversation(ctx context.Context, userID primitive.ObjectID, message string, conversationID *primitive.ObjectID) (*domain.Conversation, error) {
	if conversationID != nil {
		conv, err := s.convRepo.GetByID(ctx, *conversationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrConversationNotFound
			}
			return nil, fmt.Errorf("fetching conversation: %w", err)
		}
		if conv.UserID != userID {
			return nil, ErrForbidden
		}
		return conv, nil
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	title := message
	if len(title) > 50 {
		title = title[:50] + "..."
	}
	conv := &domain.Conversation{
		UserID: userID,
		Title:  title,
	}
	if _, err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}
	return conv, nil
}

func (s *chatService) buildPrompt(ctx context.Context, agentType, message string, conversationID primitive.ObjectID) (string, error) {
	var sb strings.Builder
	sb.WriteString(s.prompts.Get(agentType))

	if agentType == "fitness" {
		knowledge, err := s.equipment.KnowledgeBase(ctx)
		if err != nil {
			return "", err
		}
		sb.WriteString("\n\nFitness Equipment Knowledge Base:\n")
		sb.WriteString(knowledge)
	}

	history, err := s.convRepo.GetMessages(ctx, conversationID)
	if err != nil {
		return "", fmt.Errorf("loading conversation history: %w", err)
	}
	sb.WriteString("\n\nConversation History:\n")
	for _, msg := range history {
		if msg.IsUser {
			sb.WriteString("User: ")
		} else {
			sb.WriteString("Assistant: ")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}

	sb.WriteString("\nCurrent User Message: ")
	sb.WriteString(message)
	sb.WriteString("\n\nPlease respond:")
	return sb.String(), nil
}

func (s *chatService) GetConversations(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	return s.convRepo.GetByUser(ctx, userID)
}

func (s *chatService) GetMessages(ctx context.Context, conversationID, userID primitive.ObjectID) ([]domain.Message, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("fetching conversation: %w", err)
	}
	if conv.UserID != userID {
		return nil, ErrForbidden
	}
	return s.convRepo.GetMessages(ctx, conversationID)
}
