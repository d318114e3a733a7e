package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/ayomide-o/sportify/internal/player"
	"github.com/ayomide-o/sportify/internal/shared"
)

// Play resolves a track's preview clip and plays it in the foreground.
//
// The command blocks until the clip finishes or the user interrupts it.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	title, artist, id, err := r.resolvePlayTarget(ctx, cmd)
	if err != nil {
		return err
	}

	r.logger.Infof("resolving preview for %v by %v", title, artist)

	match, err := r.previews.BestMatch(ctx, title, artist)
	if err != nil {
		return fmt.Errorf("preview lookup failed for '%s': %w", title, err)
	}

	controller := r.controller
	if controller == nil {
		source, err := player.ExecSource(r.logger)
		if err != nil {
			return err
		}
		controller = player.NewController(source, r.logger)
	}

	done := make(chan struct{}, 1)
	var started atomic.Bool
	controller.Subscribe(func(u player.Update) {
		if u.Track == nil {
			return
		}
		if u.Playing {
			started.Store(true)
			return
		}
		if started.Load() {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	})

	controller.Load(player.Track{
		ID:         id,
		Title:      title,
		Artist:     artist,
		PreviewURL: match.URL,
	})

	if controller.CurrentTrack() == nil {
		return fmt.Errorf("%w: could not start playback", shared.ErrResourceLoad)
	}

	r.writePlain("▶ %s — %s (30s preview)\n", title, artist)
	r.writePlain("Press ctrl+c to stop.\n")

	waitCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-done:
		r.writePlain("✓ Finished\n")
	case <-waitCtx.Done():
		controller.Stop()
		r.writePlain("\n■ Stopped\n")
	}

	return nil
}

// resolvePlayTarget turns the command input into a title/artist pair.
//
// With --query the input is split as "artist - title"; otherwise the
// positional argument is treated as a track ID and looked up in the catalog.
func (r *Runner) resolvePlayTarget(ctx context.Context, cmd *cli.Command) (title, artist, id string, err error) {
	if query := cmd.String("query"); query != "" {
		parts := strings.SplitN(query, " - ", 2)
		if len(parts) == 2 {
			return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[0]), "", nil
		}
		return strings.TrimSpace(query), "", "", nil
	}

	trackID := cmd.StringArg("id")
	if trackID == "" {
		return "", "", "", fmt.Errorf("%w: a track id or --query is required", shared.ErrMissingArgument)
	}

	track, err := r.catalog.Track(ctx, trackID)
	if err != nil {
		return "", "", "", err
	}
	return track.Name, track.Artist, track.ID, nil
}
