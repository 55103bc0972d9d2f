package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Turn is one exchange in a form-edit conversation.
// Table: conversation_turns (id, conversation_id, company_id, user_message,
// explanation, updates jsonb, created_at).
type Turn struct {
	ID             uuid.UUID
	ConversationID string
	CompanyID      string
	UserMessage    string
	Explanation    string
	Updates        []byte
	CreatedAt      time.Time
}

// SaveTurn records a processed message with the patch the agent produced.
func (s *Store) SaveTurn(ctx context.Context, conversationID, companyID, userMessage, explanation string, updates any) (uuid.UUID, error) {
	body, err := json.Marshal(updates)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal updates: %w", err)
	}

	id := uuid.New()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO conversation_turns (id, conversation_id, company_id, user_message, explanation, updates, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		id, conversationID, companyID, userMessage, explanation, body,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert turn: %w", err)
	}
	return id, nil
}

// ListTurns returns a conversation's turns in order.
func (s *Store) ListTurns(ctx context.Context, conversationID string) ([]Turn, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, conversation_id, company_id, user_message, explanation, updates, created_at
		FROM conversation_turns
		WHERE conversation_id = $1
		ORDER BY created_at ASC`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var turn Turn
		if err := rows.Scan(&turn.ID, &turn.ConversationID, &turn.CompanyID, &turn.UserMessage, &turn.Explanation, &turn.Updates, &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}
