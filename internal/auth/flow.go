// package auth drives the authorization-code + PKCE exchange against the
// Spotify accounts service.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ayomide-o/sportify/internal/session"
	"github.com/ayomide-o/sportify/internal/shared"
	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// State enumerates the flow controller's states.
type State int

const (
	Idle State = iota
	AwaitingRedirect
	Exchanging
	Authenticated
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingRedirect:
		return "awaiting_redirect"
	case Exchanging:
		return "exchanging"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// Flow is the OAuth flow controller.
//
// One authorization attempt at a time. The PKCE verifier lives only for the
// duration of the pending attempt and is discarded on both outcomes; the
// terminal states are re-entrant via Begin.
type Flow struct {
	config   *oauth2.Config
	sessions *session.Manager
	logger   *log.Logger

	mu       sync.Mutex
	state    State
	verifier string
}

// NewFlow creates a flow controller for the given application identity.
func NewFlow(clientID, redirectURI string, scopes []string, sessions *session.Manager, logger *log.Logger) (*Flow, error) {
	if clientID == "" {
		return nil, shared.ErrMissingClientID
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	config := &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Scopes:      scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &Flow{
		config:   config,
		sessions: sessions,
		logger:   logger,
		state:    Idle,
	}, nil
}

// State returns the controller's current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Begin starts a new authorization attempt and returns the provider URL the
// user must visit, along with the CSRF state token the redirect must echo.
//
// Callable from Idle or either terminal state; a fresh PKCE verifier is
// generated per attempt.
func (f *Flow) Begin() (authURL, stateToken string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == AwaitingRedirect || f.state == Exchanging {
		return "", "", fmt.Errorf("%w: authorization already in progress", shared.ErrInvalidInput)
	}

	stateToken, err = shared.GenerateState()
	if err != nil {
		return "", "", err
	}

	f.verifier = oauth2.GenerateVerifier()
	f.state = AwaitingRedirect

	authURL = f.config.AuthCodeURL(stateToken, oauth2.S256ChallengeOption(f.verifier))
	return authURL, stateToken, nil
}

// Cancel records a redirect error or user cancellation.
//
// No network call is made; the verifier is discarded.
func (f *Flow) Cancel(cause error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.verifier = ""
	f.state = Failed
	f.logger.Warnf("authorization attempt abandoned %v", cause)
}

// Exchange trades the authorization code for tokens and persists the session.
//
// Exactly one token-endpoint call. An attempt without a retained verifier is
// a flow-integrity bug and fails fast with ErrMissingVerifier rather than
// letting the provider reject it as a generic error.
func (f *Flow) Exchange(ctx context.Context, code string) error {
	f.mu.Lock()
	verifier := f.verifier
	f.verifier = ""

	if verifier == "" {
		f.state = Failed
		f.mu.Unlock()
		return shared.ErrMissingVerifier
	}

	f.state = Exchanging
	f.mu.Unlock()

	token, err := f.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		f.fail()
		return fmt.Errorf("%w: token exchange: %v", shared.ErrAuthFailed, err)
	}

	if token.AccessToken == "" {
		f.fail()
		return fmt.Errorf("%w: token response missing access token", shared.ErrAuthFailed)
	}

	if err := f.sessions.Persist(token.AccessToken, lifetime(token), token.RefreshToken); err != nil {
		f.fail()
		return fmt.Errorf("failed to persist session: %w", err)
	}

	f.mu.Lock()
	f.state = Authenticated
	f.mu.Unlock()

	f.logger.Info("authorization complete")
	return nil
}

func (f *Flow) fail() {
	f.mu.Lock()
	f.state = Failed
	f.mu.Unlock()
}

// lifetime recovers the provider-reported token lifetime.
func lifetime(token *oauth2.Token) time.Duration {
	if token.ExpiresIn > 0 {
		return time.Duration(token.ExpiresIn) * time.Second
	}
	if !token.Expiry.IsZero() {
		return time.Until(token.Expiry)
	}
	return 0
}
