package auth

import (
	"context"
	"fmt"
)

// SSOProvider is a stub for single sign-on authentication
type SSOProvider struct {
	notifier
}

// SignIn returns a "not implemented" error
func (s *SSOProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	return Nobody, fmt.Errorf("SSO authentication not yet implemented")
}

// SignUp returns a "not implemented" error
func (s *SSOProvider) SignUp(ctx context.Context, email, password string) (Identity, error) {
	return Nobody, fmt.Errorf("SSO authentication not yet implemented")
}

// SignOut returns a "not implemented" error
func (s *SSOProvider) SignOut(ctx context.Context) error {
	return fmt.Errorf("SSO authentication not yet implemented")
}

// Current returns a "not implemented" error
func (s *SSOProvider) Current(ctx context.Context) (Identity, error) {
	return Nobody, fmt.Errorf("SSO authentication not yet implemented")
}

// OnChange registers a listener; the stub never fires it
func (s *SSOProvider) OnChange(listener func(Identity)) func() {
	return s.add(listener)
}

// Name returns "sso"
func (s *SSOProvider) Name() string {
	return "sso"
}
