package shared

import "fmt"

var (
	// Session errors
	ErrSessionExpired  = fmt.Errorf("session expired")
	ErrNoCredential    = fmt.Errorf("no access token stored")
	ErrUnauthorized    = fmt.Errorf("unauthorized")
	ErrMissingVerifier = fmt.Errorf("missing PKCE code verifier")
	ErrAuthFailed      = fmt.Errorf("authentication failed")
	ErrTimeout         = fmt.Errorf("operation timed out")

	// Configuration errors
	ErrMissingConfig   = fmt.Errorf("configuration not found")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")
	ErrMissingClientID = fmt.Errorf("missing client id")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrTrackNotFound      = fmt.Errorf("track not found")
	ErrPreviewUnavailable = fmt.Errorf("preview not available")

	// Playback errors
	ErrResourceLoad  = fmt.Errorf("failed to load playback resource")
	ErrNothingLoaded = fmt.Errorf("no track loaded")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
