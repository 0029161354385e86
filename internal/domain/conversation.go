package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation groups the chat messages exchanged with one AI agent.
type Conversation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Message is a single chat message. IsUser distinguishes the human side
// from the assistant side.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversationId" json:"conversationId"`
	Content        string             `bson:"content" json:"content"`
	IsUser         bool               `bson:"isUser" json:"isUser"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
