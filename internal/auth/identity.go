package auth

// Kind classifies the current identity
type Kind int

const (
	// KindNone means nobody is signed in
	KindNone Kind = iota
	// KindGuest is a locally synthesized guest identity
	KindGuest
	// KindAuthenticated is an identity vouched for by the auth provider
	KindAuthenticated
)

func (k Kind) String() string {
	switch k {
	case KindGuest:
		return "guest"
	case KindAuthenticated:
		return "authenticated"
	default:
		return "none"
	}
}

// Identity is the current user classification. Guest identities are never
// produced by a Provider; they are synthesized by the session layer.
type Identity struct {
	Kind   Kind   `json:"kind"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Nobody is the signed-out identity
var Nobody = Identity{Kind: KindNone}

// IsNone reports whether no user is signed in
func (i Identity) IsNone() bool {
	return i.Kind == KindNone
}

// IsGuest reports whether the identity is a local guest
func (i Identity) IsGuest() bool {
	return i.Kind == KindGuest
}

// IsAuthenticated reports whether the provider vouched for the identity
func (i Identity) IsAuthenticated() bool {
	return i.Kind == KindAuthenticated
}
