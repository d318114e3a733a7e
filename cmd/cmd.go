// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the config file and credential store.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config file and initialize the credential store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the Spotify session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with Spotify using OAuth2 + PKCE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear stored credentials",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show session validity and the signed-in profile",
				Action: r.AuthStatus,
			},
		},
	}
}

// homeCommand loads the home feed sections.
func homeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "home",
		Usage: "Show the home feed (recent tracks, mixes, library)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Home,
	}
}

// searchCommand runs a combined catalog search.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search tracks, albums, artists, and playlists",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "playlists",
				Usage: "Search playlists only",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Search,
	}
}

// recentsCommand manages the bounded recent-search history.
func recentsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "recents",
		Usage: "Show or clear recent searches",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Clear the recent-search history",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Recents,
	}
}

// libraryCommand lists the authenticated user's saved catalog entries.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "List your saved playlists, albums, or followed artists",
		Commands: []*cli.Command{
			{
				Name:  "playlists",
				Usage: "List your playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.LibraryPlaylists,
			},
			{
				Name:  "albums",
				Usage: "List your saved albums",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.LibraryAlbums,
			},
			{
				Name:  "artists",
				Usage: "List artists you follow",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.LibraryArtists,
			},
		},
	}
}

// showCommand displays catalog detail pages.
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show details for a track, album, or artist",
		Commands: []*cli.Command{
			{
				Name:  "track",
				Usage: "Show track details",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.ShowTrack,
			},
			{
				Name:  "album",
				Usage: "Show album details with track listing",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.ShowAlbum,
			},
			{
				Name:  "artist",
				Usage: "Show artist profile, top tracks, and albums",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.ShowArtist,
			},
			{
				Name:  "categories",
				Usage: "Show browse categories",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ShowCategories,
			},
		},
	}
}

// playlistCommand handles playlist reads and mutations.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.PlaylistList,
			},
			{
				Name:  "show",
				Usage: "Show a playlist's track listing",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:  "find",
				Usage: "Find playlists by search term",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "term"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.PlaylistFind,
			},
			{
				Name:  "create",
				Usage: "Create a new private playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "add",
				Usage: "Add a track to a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist-id",
						Usage:    "Playlist to modify",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "track-id",
						Usage:    "Track to add",
						Required: true,
					},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a track from a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist-id",
						Usage:    "Playlist to modify",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "track-id",
						Usage:    "Track to remove",
						Required: true,
					},
				},
				Action: r.PlaylistRemove,
			},
		},
	}
}

// playCommand plays a track preview in the foreground.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play a 30 second track preview",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Search instead of using a track ID (\"artist - title\")",
			},
		},
		Action: r.Play,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI",
		Action:  r.TUI,
	}
}
