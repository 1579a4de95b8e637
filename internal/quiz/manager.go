package quiz

import (
	"log/slog"
	"sync"

	"quizbot/core/logger"
	"quizbot/internal/category"
)

// Manager tracks at most one active session per chat. All methods are safe
// for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	perRound int
}

// NewManager creates a Manager producing rounds of n questions.
func NewManager(n int) *Manager {
	if n <= 0 {
		n = DefaultQuestionsPerRound
	}
	return &Manager{
		sessions: make(map[int64]*Session),
		perRound: n,
	}
}

// Start begins a new round for the chat, silently replacing any round
// already in progress. Returns the first question.
func (m *Manager) Start(chatID int64, cat category.Category) (category.Question, error) {
	s, err := NewSession(cat, m.perRound)
	if err != nil {
		return category.Question{}, err
	}

	m.mu.Lock()
	replaced := m.sessions[chatID] != nil
	m.sessions[chatID] = s
	m.mu.Unlock()

	logger.Event(logger.Background(), "service.quiz", slog.LevelInfo, "session.start",
		slog.Int64("chat_id", chatID),
		slog.String("category", cat.Name),
		slog.Int("total", m.perRound),
		slog.Bool("replaced", replaced),
	)
	return s.Current(), nil
}

// Submit applies an answer to the chat's active session. When the result
// reports Done the session is removed, so a further Submit returns
// ErrNoActiveSession.
func (m *Manager) Submit(chatID int64, answer string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return Result{}, ErrNoActiveSession
	}

	res := s.Submit(answer)
	if res.Done {
		delete(m.sessions, chatID)
		logger.Event(logger.Background(), "service.quiz", slog.LevelInfo, "session.complete",
			slog.Int64("chat_id", chatID),
			slog.String("category", s.Category),
			slog.Int("score", res.Score),
			slog.Int("total", res.Total),
		)
	}
	return res, nil
}

// Status reports progress of the chat's active session.
func (m *Manager) Status(chatID int64) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return Status{}, ErrNoActiveSession
	}
	return s.Progress(), nil
}

// ForceEnd abandons the chat's active session, returning its final state so
// the caller can persist the partial score.
func (m *Manager) ForceEnd(chatID int64) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return Status{}, ErrNoActiveSession
	}
	delete(m.sessions, chatID)

	st := s.Progress()
	logger.Event(logger.Background(), "service.quiz", slog.LevelInfo, "session.force_end",
		slog.Int64("chat_id", chatID),
		slog.String("category", st.Category),
		slog.Int("score", st.Score),
		slog.Int("question_idx", st.QuestionIdx),
	)
	return st, nil
}

// Active reports whether the chat has a round in progress.
func (m *Manager) Active(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[chatID]
	return ok
}
