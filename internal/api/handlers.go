package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"figment/internal/auth"
	"figment/internal/chat"
	"figment/internal/session"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authOp func(ctx context.Context, email, password string) (auth.Identity, error)

// handleSignIn authenticates credentials against the provider.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	s.handleCredentials(w, r, s.sessions.SignIn)
}

// handleSignUp registers new credentials.
func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	s.handleCredentials(w, r, s.sessions.SignUp)
}

func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request, op authOp) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	identity, err := op(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrGuestSession):
			s.writeError(w, http.StatusConflict, "guest_session", "log out of the guest session first")
		case errors.Is(err, auth.ErrInvalidCredentials):
			s.writeError(w, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
		default:
			s.logf("authentication failed: %v", err)
			s.writeError(w, http.StatusBadGateway, "auth_unavailable", "authentication provider failed")
		}
		return
	}

	s.writeJSON(w, http.StatusOK, identity)
}

// handleGuest starts a local guest session.
func (s *Server) handleGuest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessions.ContinueAsGuest())
}

// handleLogout ends the current session. The response is 200 even when the
// provider call failed, because local state is cleared either way.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
		return
	}
	if err := s.sessions.Logout(r.Context()); err != nil {
		s.logf("logout: provider sign-out failed: %v", err)
	}
	s.writeJSON(w, http.StatusOK, s.sessions.State())
}

// handleSession returns the current session snapshot.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessions.State())
}

// handleTheme returns the active mode and its palette.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}
	mode := s.sessions.Theme()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"mode":    mode,
		"palette": s.themes.Palette(mode),
	})
}

// handleThemeToggle flips and persists the theme preference.
func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
		return
	}
	mode, err := s.sessions.ToggleTheme(r.Context())
	if err != nil {
		// The in-memory flip already happened; report the persistence
		// failure without undoing it.
		s.logf("theme toggle: %v", err)
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"mode":      mode,
		"palette":   s.themes.Palette(mode),
		"persisted": err == nil,
	})
}

// handleProfile merges fields into the current user's profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "PUT required")
		return
	}

	var partial session.Profile
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	profile, err := s.sessions.UpdateProfile(r.Context(), partial)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveUser) {
			s.writeError(w, http.StatusConflict, "no_active_user", "sign in or continue as guest first")
			return
		}
		s.logf("profile update failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "profile_update_failed", "failed to save profile")
		return
	}

	s.writeJSON(w, http.StatusOK, profile)
}

// handleCharacters lists the character catalog.
func (s *Server) handleCharacters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}
	s.writeJSON(w, http.StatusOK, s.directory.All())
}

// handleCharacterByID returns one character.
func (s *Server) handleCharacterByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/characters/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "character id must be numeric")
		return
	}

	character, err := s.directory.ByID(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "character_not_found", "no such character")
		return
	}
	s.writeJSON(w, http.StatusOK, character)
}

type openConversationRequest struct {
	CharacterID int `json:"character_id"`
}

type conversationResponse struct {
	ID        string         `json:"id"`
	Character interface{}    `json:"character"`
	Messages  []chat.Message `json:"messages"`
	IsTyping  bool           `json:"is_typing"`
}

// handleConversations opens a new conversation.
func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
		return
	}

	var req openConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	conv, err := s.engine.Open(req.CharacterID)
	if err != nil {
		if errors.Is(err, chat.ErrCharacterNotFound) {
			s.writeError(w, http.StatusNotFound, "character_not_found", "no such character")
			return
		}
		s.logf("failed to open conversation: %v", err)
		s.writeError(w, http.StatusInternalServerError, "open_failed", "failed to open conversation")
		return
	}

	oc := s.conversations.add(conv)
	oc.unsubscribe = conv.Subscribe(func(ev chat.Event) {
		s.wsHub.BroadcastJSON("conversation", conversationEvent{
			ConversationID: oc.id,
			Event:          ev,
		})
	})

	s.writeJSON(w, http.StatusCreated, conversationResponse{
		ID:        oc.id,
		Character: conv.Character(),
		Messages:  conv.Messages(),
		IsTyping:  conv.IsTyping(),
	})
}

// handleConversationRoutes dispatches /api/conversations/{id}[/messages].
func (s *Server) handleConversationRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/conversations/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	oc := s.conversations.get(parts[0])
	if oc == nil {
		s.writeError(w, http.StatusNotFound, "conversation_not_found", "no such conversation")
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodDelete:
		s.conversations.remove(oc.id)
		w.WriteHeader(http.StatusNoContent)

	case len(parts) == 2 && parts[1] == "messages" && r.Method == http.MethodGet:
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"messages":  s.trimHistory(oc.conv.Messages()),
			"is_typing": oc.conv.IsTyping(),
		})

	case len(parts) == 2 && parts[1] == "messages" && r.Method == http.MethodPost:
		s.handleSubmitMessage(w, r, oc)

	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method or path")
	}
}

type submitMessageRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSubmitMessage(w http.ResponseWriter, r *http.Request, oc *openConversation) {
	var req submitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	msg, err := oc.conv.Submit(req.Text)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			s.writeError(w, http.StatusBadRequest, "empty_message", "message text is empty")
		case errors.Is(err, chat.ErrReplyPending):
			s.writeError(w, http.StatusConflict, "reply_pending", "wait for the current reply")
		case errors.Is(err, chat.ErrConversationClosed):
			s.writeError(w, http.StatusGone, "conversation_closed", "conversation is closed")
		default:
			s.logf("submit failed: %v", err)
			s.writeError(w, http.StatusInternalServerError, "submit_failed", "failed to submit message")
		}
		return
	}

	s.writeJSON(w, http.StatusCreated, msg)
}

// trimHistory returns the trailing window of a transcript when a history
// limit is configured.
func (s *Server) trimHistory(messages []chat.Message) []chat.Message {
	limit := s.config.HistoryLimit
	if limit <= 0 || len(messages) <= limit {
		return messages
	}
	return messages[len(messages)-limit:]
}
