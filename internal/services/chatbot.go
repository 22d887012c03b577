package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/novacare/schedula-backend/internal/extraction"
	"github.com/novacare/schedula-backend/internal/models"
	"github.com/novacare/schedula-backend/internal/storage"
)

// systemPrompt frames every LLM call
const systemPrompt = `You are a helpful appointment scheduling assistant. Your role is to:

1. Help users schedule appointments by collecting necessary information
2. Provide friendly and professional responses
3. Ask clarifying questions when needed
4. Confirm appointment details before scheduling
5. Handle appointment modifications and cancellations

Key information to collect for appointments:
- Type of appointment (medical, consultation, general, follow-up)
- Preferred date and time (accept formats like "tomorrow at 2 PM", "Monday morning", "next Friday at 3:30 PM")
- Duration (default 60 minutes)
- Location preference
- Any special notes or requirements

When users provide date/time information, acknowledge it and confirm the details before creating the appointment.

Always be polite, professional, and helpful. If you're unsure about something, ask for clarification.`

// fallbackReply is returned when the LLM call fails; the conversation keeps
// going even when the upstream service does not.
const fallbackReply = "I apologize, but I'm experiencing some technical difficulties. Please try again in a moment."

// LLM is the external language model collaborator
type LLM interface {
	Reply(ctx context.Context, systemPrompt string, history []ChatMessage, userText string) (string, error)
}

// ChatbotService glues stored history, the LLM and the extraction pipeline
// into one conversational turn
type ChatbotService struct {
	store storage.Store
	llm   LLM
	now   func() time.Time // injectable for tests
}

// NewChatbotService creates a new chatbot service
func NewChatbotService(store storage.Store, llm LLM) *ChatbotService {
	return &ChatbotService{
		store: store,
		llm:   llm,
		now:   time.Now,
	}
}

// ChatMetadata is attached to every assistant turn
type ChatMetadata struct {
	UserID             uint   `json:"user_id"`
	Timestamp          string `json:"timestamp"`
	MessageLength      int    `json:"message_length"`
	ResponseLength     int    `json:"response_length"`
	AppointmentCreated bool   `json:"appointment_created"`
	AppointmentID      uint   `json:"appointment_id,omitempty"`
	Error              string `json:"error,omitempty"`
}

// ChatResult is the outcome of one processed message
type ChatResult struct {
	Message   string       `json:"message"`
	Metadata  ChatMetadata `json:"metadata"`
	SessionID string       `json:"session_id"`
}

// ProcessMessage handles a single user message: it stores the turn, asks the
// LLM for a reply, runs appointment extraction over the exchange and persists
// any resulting appointment. A failed appointment save never fails the chat;
// the user still gets the conversational reply.
func (s *ChatbotService) ProcessMessage(ctx context.Context, sessionID string, userID uint, message string) (*ChatResult, error) {
	session, err := s.resolveSession(sessionID, userID)
	if err != nil {
		return nil, err
	}

	// History is everything before this turn, capped to the most recent 20
	history, err := s.store.GetRecentMessages(session.SessionID, models.HistoryLimit)
	if err != nil {
		log.Printf("Error getting conversation history for %s: %v", session.SessionID, err)
		history = nil
	}

	if _, err := s.store.AppendMessage(session.SessionID, models.RoleUser, message, ""); err != nil {
		log.Printf("Error storing user message for %s: %v", session.SessionID, err)
	}

	metadata := ChatMetadata{
		UserID:        userID,
		Timestamp:     s.now().Format(time.RFC3339),
		MessageLength: len(message),
	}

	reply, llmErr := s.llm.Reply(ctx, s.buildSystemPrompt(userID), toLLMHistory(history), message)
	if llmErr != nil {
		log.Printf("LLM call failed for session %s: %v", session.SessionID, llmErr)
		reply = fallbackReply
		metadata.Error = "llm_error"
	} else {
		// Extraction only ever sees successfully generated assistant text
		if draft := extraction.Extract(message, reply, s.now()); draft != nil {
			s.persistAppointment(session, userID, draft, &metadata)
		}
	}

	metadata.ResponseLength = len(reply)

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		log.Printf("Error marshaling metadata: %v", err)
		metadataJSON = []byte("{}")
	}
	if _, err := s.store.AppendMessage(session.SessionID, models.RoleAssistant, reply, string(metadataJSON)); err != nil {
		log.Printf("Error storing assistant message for %s: %v", session.SessionID, err)
	}

	return &ChatResult{
		Message:   reply,
		Metadata:  metadata,
		SessionID: session.SessionID,
	}, nil
}

// resolveSession finds the session, creating one when no ID was supplied
func (s *ChatbotService) resolveSession(sessionID string, userID uint) (*models.ChatSession, error) {
	if sessionID == "" {
		session, err := s.store.CreateChatSession(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat session: %w", err)
		}
		return session, nil
	}

	session, err := s.store.GetChatSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s not found: %w", sessionID, err)
	}
	return session, nil
}

// persistAppointment saves a draft and links it to the session. Failures are
// logged and swallowed so the chat reply still reaches the user.
func (s *ChatbotService) persistAppointment(session *models.ChatSession, userID uint, draft *models.AppointmentDraft, metadata *ChatMetadata) {
	appointment, err := s.store.CreateAppointment(userID, draft)
	if err != nil {
		log.Printf("Error creating appointment for session %s: %v", session.SessionID, err)
		return
	}

	metadata.AppointmentCreated = true
	metadata.AppointmentID = appointment.ID
	log.Printf("Created appointment %d for user %d", appointment.ID, userID)

	if err := s.store.LinkSessionAppointment(session.SessionID, appointment.ID); err != nil {
		log.Printf("Error linking appointment %d to session %s: %v", appointment.ID, session.SessionID, err)
	}
}

// buildSystemPrompt appends known user context to the base prompt
func (s *ChatbotService) buildSystemPrompt(userID uint) string {
	user, err := s.store.GetUser(userID)
	if err != nil || user == nil {
		return systemPrompt
	}
	return fmt.Sprintf("%s\n\nUser Information:\n- Name: %s %s\n- Email: %s",
		systemPrompt, user.FirstName, user.LastName, user.Email)
}

// toLLMHistory converts stored turns into LLM messages
func toLLMHistory(history []*models.ChatMessage) []ChatMessage {
	messages := make([]ChatMessage, 0, len(history))
	for _, msg := range history {
		messages = append(messages, ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return messages
}
