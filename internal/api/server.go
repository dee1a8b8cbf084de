package api

import (
	"context"
	"encoding/json"
	"net/http"

	"figment/internal/auth"
	"figment/internal/catalog"
	"figment/internal/chat"
	"figment/internal/logging"
	"figment/internal/session"
	"figment/internal/theme"
)

// SessionManager is the session surface the handlers need.
type SessionManager interface {
	SignIn(ctx context.Context, email, password string) (auth.Identity, error)
	SignUp(ctx context.Context, email, password string) (auth.Identity, error)
	ContinueAsGuest() auth.Identity
	Logout(ctx context.Context) error
	ToggleTheme(ctx context.Context) (theme.Mode, error)
	Theme() theme.Mode
	UpdateProfile(ctx context.Context, partial session.Profile) (session.Profile, error)
	State() session.State
	Subscribe(fn func(session.State)) func()
}

// ServerConfig holds server tunables.
type ServerConfig struct {
	// HistoryLimit caps how many trailing messages a transcript fetch
	// returns. Zero means no cap.
	HistoryLimit int
}

// Server holds dependencies and provides HTTP handlers.
type Server struct {
	sessions      SessionManager
	engine        *chat.Engine
	directory     *catalog.Directory
	themes        *theme.Config
	conversations *conversationRegistry
	wsHub         *WebSocketHub
	config        ServerConfig
	logger        *logging.Logger
}

// NewServer creates a server with dependencies and starts the WebSocket hub.
func NewServer(sessions SessionManager, engine *chat.Engine, directory *catalog.Directory, themes *theme.Config, config ServerConfig, logger *logging.Logger) *Server {
	srv := &Server{
		sessions:      sessions,
		engine:        engine,
		directory:     directory,
		themes:        themes,
		conversations: newConversationRegistry(),
		wsHub:         NewWebSocketHub(),
		config:        config,
		logger:        logger,
	}

	go srv.wsHub.Run()

	// Session changes fan out to connected clients so every open screen
	// tracks identity and theme in step.
	sessions.Subscribe(func(state session.State) {
		srv.wsHub.BroadcastJSON("session", state)
	})

	return srv
}

// RegisterRoutes sets up all HTTP routes.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Session
	mux.HandleFunc("/api/signin", s.handleSignIn)
	mux.HandleFunc("/api/signup", s.handleSignUp)
	mux.HandleFunc("/api/guest", s.handleGuest)
	mux.HandleFunc("/api/logout", s.handleLogout)
	mux.HandleFunc("/api/session", s.handleSession)
	mux.HandleFunc("/api/theme", s.handleTheme)
	mux.HandleFunc("/api/theme/toggle", s.handleThemeToggle)
	mux.HandleFunc("/api/profile", s.handleProfile)

	// Catalog
	mux.HandleFunc("/api/characters", s.handleCharacters)
	mux.HandleFunc("/api/characters/", s.handleCharacterByID)

	// Conversations
	mux.HandleFunc("/api/conversations", s.handleConversations)
	mux.HandleFunc("/api/conversations/", s.handleConversationRoutes)

	// WebSocket
	mux.HandleFunc("/ws", s.handleWebSocket)
}

// Close tears down all open conversations. Pending replies are cancelled.
func (s *Server) Close() {
	s.conversations.closeAll()
}

// writeJSON writes a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logf("failed to encode response: %v", err)
	}
}

// writeError writes a structured JSON error.
func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

func (s *Server) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Error(format, args...)
	}
}
