package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Conversational state for the chat-bot client. The bot walks users through
// multi-step dialogs (register, login, new category, new transaction); the
// step reached and the partial input live here, keyed by chat id, in the
// database rather than process memory so a restart does not drop users
// mid-dialog.

type BotState string

const (
	BotStateIdle BotState = "idle"

	BotStateRegisterEmail    BotState = "register:email"
	BotStateRegisterPassword BotState = "register:password"

	BotStateLoginEmail    BotState = "login:email"
	BotStateLoginPassword BotState = "login:password"

	BotStateCategoryName   BotState = "category:name"
	BotStateCategoryRename BotState = "category:rename"

	BotStateTxAmount      BotState = "tx:amount"
	BotStateTxCategory    BotState = "tx:category"
	BotStateTxDescription BotState = "tx:description"
)

// transitions maps each dialog step to the next; steps absent here finish
// their dialog and fall back to idle.
var transitions = map[BotState]BotState{
	BotStateRegisterEmail: BotStateRegisterPassword,
	BotStateLoginEmail:    BotStateLoginPassword,
	BotStateTxAmount:      BotStateTxCategory,
	BotStateTxCategory:    BotStateTxDescription,
}

// NextState advances a dialog by one step.
func NextState(current BotState) BotState {
	if next, ok := transitions[current]; ok {
		return next
	}
	return BotStateIdle
}

// Terminal reports whether the dialog completes after input for the current
// step, meaning the collected payload is ready to submit to the API.
func Terminal(current BotState) bool {
	_, more := transitions[current]
	return !more && current != BotStateIdle
}

type BotSession struct {
	ChatID    int64
	State     BotState
	Payload   map[string]string
	Token     string
	UpdatedAt time.Time
}

// BotSessionStore persists bot sessions in Postgres.
type BotSessionStore struct {
	db *sql.DB
}

func NewBotSessionStore(db *sql.DB) *BotSessionStore {
	return &BotSessionStore{db: db}
}

// Get loads a session, returning a fresh idle one for unknown chats.
func (s *BotSessionStore) Get(ctx context.Context, chatID int64) (*BotSession, error) {
	session := BotSession{ChatID: chatID, State: BotStateIdle, Payload: map[string]string{}}

	var payload []byte
	var token sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT state, payload, token, updated_at
		FROM bot_sessions
		WHERE chat_id = $1
	`, chatID).Scan(&session.State, &payload, &token, &session.UpdatedAt)

	if err == sql.ErrNoRows {
		return &session, nil
	}
	if err != nil {
		return nil, err
	}

	session.Token = token.String
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &session.Payload); err != nil {
			return nil, err
		}
	}
	return &session, nil
}

// Save upserts the session row.
func (s *BotSessionStore) Save(ctx context.Context, session *BotSession) error {
	payload, err := json.Marshal(session.Payload)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bot_sessions (chat_id, state, payload, token, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (chat_id)
		DO UPDATE SET state = $2, payload = $3, token = $4, updated_at = NOW()
	`, session.ChatID, session.State, payload, session.Token)
	return err
}

// Reset drops the dialog state but keeps the login token, so an abandoned
// flow does not log the user out.
func (s *BotSessionStore) Reset(ctx context.Context, chatID int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE bot_sessions SET state = $1, payload = '{}', updated_at = NOW()
		WHERE chat_id = $2
	`, BotStateIdle, chatID)
	return err
}

// DeleteIdle removes sessions untouched for longer than maxAge.
func (s *BotSessionStore) DeleteIdle(ctx context.Context, maxAge time.Duration) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM bot_sessions WHERE updated_at < NOW() - make_interval(secs => $1)
	`, maxAge.Seconds())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
