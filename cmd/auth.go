package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/ayomide-o/sportify/internal/auth"
	"github.com/ayomide-o/sportify/internal/server"
	"github.com/ayomide-o/sportify/internal/shared"
)

// AuthLogin performs the OAuth2 + PKCE authorization flow.
//
// Starts a local HTTP server, opens the browser for user authorization, and
// exchanges the auth code for tokens which are persisted to the credential store.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: credential store not initialized, run 'sportify setup' first", shared.ErrServiceUnavailable)
	}

	configPath := cmd.String("config")
	config := r.config
	if config == nil {
		var err error
		if _, statErr := os.Stat(configPath); statErr == nil {
			config, err = shared.LoadConfig(configPath)
			if err != nil {
				r.logger.Warnf("failed to load config, using defaults %v", err)
				config = shared.DefaultConfig()
			}
		} else {
			config = shared.DefaultConfig()
		}
	}

	flow, err := auth.NewFlow(config.Spotify.ClientID, config.Server.RedirectURI(), config.Spotify.Scopes, r.sessions, r.logger)
	if err != nil {
		return err
	}

	authURL, state, err := flow.Begin()
	if err != nil {
		return err
	}

	handler := server.NewCallbackHandler(state)
	router := server.NewBasicRouter()
	router.Handler(handler)

	serverAddr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-handler.Result():
		// Got result from callback
	case err := <-serverErrors:
		flow.Cancel(err)
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		err := fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
		flow.Cancel(err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		flow.Cancel(result.Error())
		return fmt.Errorf("authorization failed: %w", result.Error())
	}

	if err := flow.Exchange(ctx, result.Code); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("You can now use: sportify home\n")

	return nil
}

// AuthLogout clears all stored credentials.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: credential store not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.sessions.Logout(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	return r.writePlain("✓ Logged out\n")
}

// AuthStatus reports session validity and, when signed in, the user profile.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: credential store not initialized", shared.ErrServiceUnavailable)
	}

	if !r.sessions.Valid() {
		r.writePlain("Session: ✗ Not authenticated\n")
		r.writePlain("Run 'sportify auth login' to sign in.\n")
		return nil
	}

	r.writePlain("Session: ✓ Authenticated\n")

	if r.catalog != nil {
		if user, err := r.catalog.Me(ctx); err == nil {
			r.writePlain("Signed in as: %s", user.DisplayName)
			if user.Email != "" {
				r.writePlain(" (%s)", user.Email)
			}
			r.writePlain("\n")
		}
	}

	return nil
}
