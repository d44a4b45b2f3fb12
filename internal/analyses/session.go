package analyses

import "sync"

// Session holds the per-user working state: the inputs of the latest analysis,
// its result, and any artifacts generated from it. Sessions are created on
// first analysis, replaced on re-analysis, and dropped when the account is
// deleted. They are deliberately not persisted.
type Session struct {
	AnalysisID       string
	ResumeText       string
	JobDescription   string
	Result           Result
	ImprovementPlan  string
	OptimizedResume  string
	ImprovementGuide string
	CustomTemplate   string
}

// SessionStore is an in-memory map of username to session state.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns a copy of the user's session, or false when no analysis has
// been run yet.
func (s *SessionStore) Get(username string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[username]
	if !ok {
		return Session{}, false
	}
	return *session, true
}

// Put replaces the user's session wholesale.
func (s *SessionStore) Put(username string, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := session
	s.sessions[username] = &stored
}

// Update applies fn to the user's session in place. It returns false when the
// user has no session to update.
func (s *SessionStore) Update(username string, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[username]
	if !ok {
		return false
	}
	fn(session)
	return true
}

// Drop removes the user's session, if any.
func (s *SessionStore) Drop(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, username)
}
