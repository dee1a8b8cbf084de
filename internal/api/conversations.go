package api

import (
	"sync"

	"github.com/google/uuid"

	"figment/internal/chat"
)

// openConversation is one live conversation plus the hooks tying it to the
// transport layer.
type openConversation struct {
	id          string
	conv        *chat.Conversation
	unsubscribe func()
}

// conversationRegistry tracks open conversations by id.
type conversationRegistry struct {
	mu   sync.RWMutex
	byID map[string]*openConversation
}

func newConversationRegistry() *conversationRegistry {
	return &conversationRegistry{byID: make(map[string]*openConversation)}
}

// add registers a conversation under a fresh id.
func (r *conversationRegistry) add(conv *chat.Conversation) *openConversation {
	oc := &openConversation{
		id:   uuid.NewString(),
		conv: conv,
	}
	r.mu.Lock()
	r.byID[oc.id] = oc
	r.mu.Unlock()
	return oc
}

// get returns the conversation for id, or nil.
func (r *conversationRegistry) get(id string) *openConversation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

// remove closes and unregisters the conversation for id. Idempotent.
func (r *conversationRegistry) remove(id string) bool {
	r.mu.Lock()
	oc, ok := r.byID[id]
	delete(r.byID, id)
	r.mu.Unlock()

	if !ok {
		return false
	}
	if oc.unsubscribe != nil {
		oc.unsubscribe()
	}
	oc.conv.Close()
	return true
}

// closeAll tears down every open conversation. Used at shutdown.
func (r *conversationRegistry) closeAll() {
	r.mu.Lock()
	all := make([]*openConversation, 0, len(r.byID))
	for _, oc := range r.byID {
		all = append(all, oc)
	}
	r.byID = make(map[string]*openConversation)
	r.mu.Unlock()

	for _, oc := range all {
		if oc.unsubscribe != nil {
			oc.unsubscribe()
		}
		oc.conv.Close()
	}
}
