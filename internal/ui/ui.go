package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayomide-o/sportify/internal/player"
	"github.com/ayomide-o/sportify/internal/preview"
	"github.com/ayomide-o/sportify/internal/shared"
	"github.com/ayomide-o/sportify/internal/spotify"
	"github.com/ayomide-o/sportify/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	SearchView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	catalog    *spotify.Client
	engine     *tasks.FeedEngine
	previews   *preview.Client
	controller *player.Controller

	width  int
	height int

	homeList   list.Model
	detailList list.Model
	searchList list.Model
	searchIn   textinput.Model
	searching  bool

	playerState  player.Update
	playerErr    error
	playerEvents chan player.Update

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The model subscribes to the playback controller immediately so that no
// state change is missed between construction and the first Update call.
func NewModel(ctx context.Context, catalog *spotify.Client, engine *tasks.FeedEngine, previews *preview.Client, controller *player.Controller) *Model {
	events := make(chan player.Update, 16)
	controller.Subscribe(func(u player.Update) {
		select {
		case events <- u:
		default:
		}
	})

	input := textinput.New()
	input.Placeholder = "Artists, songs, or podcasts"
	input.CharLimit = 80

	return &Model{
		ctx:          ctx,
		view:         HomeView,
		catalog:      catalog,
		engine:       engine,
		previews:     previews,
		controller:   controller,
		searchIn:     input,
		playerEvents: events,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init initializes the TUI by loading the home feed.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadFeed(), m.waitForPlayer())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchInputKeys(msg)
		}
		switch m.view {
		case HomeView:
			return m.handleHomeKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case feedLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.homeList = list.New(flattenFeed(msg.feed), list.NewDefaultDelegate(), 0, 0)
		m.homeList.Title = "Home"
		m.resizeLists()
		return m, nil

	case detailLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.tracks))
		for i, row := range msg.tracks {
			items[i] = trackItem{track: row}
		}
		m.detailList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.detailList.Title = msg.title
		m.resizeLists()
		m.view = DetailView
		return m, nil

	case searchDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.items))
		for i, it := range msg.items {
			items[i] = it
		}
		m.searchList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.searchList.Title = fmt.Sprintf("Results for '%s'", msg.query)
		m.resizeLists()
		m.view = SearchView
		return m, nil

	case previewResolvedMsg:
		m.playerErr = msg.err
		return m, nil

	case playerUpdateMsg:
		m.playerState = player.Update(msg)
		cmds := []tea.Cmd{m.waitForPlayer()}
		if m.playerState.Playing {
			cmds = append(cmds, m.tick())
		}
		return m, tea.Batch(cmds...)

	case tickMsg:
		if m.controller.Playing() {
			return m, m.tick()
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	var body string
	switch m.view {
	case HomeView:
		body = m.renderHome()
	case SearchView:
		body = m.renderSearch()
	case DetailView:
		body = m.renderDetail()
	}

	return fmt.Sprintf("%s\n%s", body, m.renderPlayer())
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.searchIn.SetValue("")
		return m, m.searchIn.Focus()
	case key.Matches(msg, m.keys.toggle):
		m.togglePlayback()
		return m, nil
	case key.Matches(msg, m.keys.stop):
		m.controller.Stop()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if selected, ok := m.homeList.SelectedItem().(feedItem); ok {
			return m, m.openItem(selected.item)
		}
	}

	var cmd tea.Cmd
	m.homeList, cmd = m.homeList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchIn.Blur()
		return m, nil
	case "enter":
		query := m.searchIn.Value()
		m.searching = false
		m.searchIn.Blur()
		if query == "" {
			return m, nil
		}
		return m, m.runSearch(query)
	}

	var cmd tea.Cmd
	m.searchIn, cmd = m.searchIn.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = HomeView
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.searchIn.SetValue("")
		return m, m.searchIn.Focus()
	case key.Matches(msg, m.keys.toggle):
		m.togglePlayback()
		return m, nil
	case key.Matches(msg, m.keys.stop):
		m.controller.Stop()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if selected, ok := m.searchList.SelectedItem().(feedItem); ok {
			return m, m.openItem(selected.item)
		}
	}

	var cmd tea.Cmd
	m.searchList, cmd = m.searchList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = HomeView
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		m.togglePlayback()
		return m, nil
	case key.Matches(msg, m.keys.stop):
		m.controller.Stop()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if selected, ok := m.detailList.SelectedItem().(trackItem); ok {
			return m, m.playTrack(selected.track)
		}
	}

	var cmd tea.Cmd
	m.detailList, cmd = m.detailList.Update(msg)
	return m, cmd
}

// togglePlayback flips between pause and resume for the loaded track.
func (m *Model) togglePlayback() {
	if m.controller.CurrentTrack() == nil {
		return
	}
	if m.controller.Playing() {
		m.controller.Pause()
	} else {
		m.controller.Resume()
	}
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case HomeView:
		m.homeList, cmd = m.homeList.Update(msg)
	case SearchView:
		m.searchList, cmd = m.searchList.Update(msg)
	case DetailView:
		m.detailList, cmd = m.detailList.Update(msg)
	}
	return m, cmd
}

func (m *Model) resizeLists() {
	if m.width == 0 {
		return
	}
	w, h := m.width-4, m.height-10
	m.homeList.SetSize(w, h)
	m.detailList.SetSize(w, h)
	m.searchList.SetSize(w, h)
}

func (m *Model) loadFeed() tea.Cmd {
	return func() tea.Msg {
		feed, err := m.engine.Load(m.ctx, nil)
		return feedLoadedMsg{feed: feed, err: err}
	}
}

// openItem dispatches on item kind: tracks start preview playback, anything
// else opens a detail listing.
func (m *Model) openItem(item spotify.ListItem) tea.Cmd {
	switch item.Kind {
	case spotify.KindTrack:
		return m.playTrack(trackRow{ID: item.ID, Title: item.Title, Artist: item.Subtitle, ImageURL: item.ImageURL})
	case spotify.KindPlaylist:
		return m.loadPlaylist(item.ID)
	case spotify.KindAlbum:
		return m.loadAlbum(item.ID)
	case spotify.KindArtist:
		return m.loadArtistTop(item.ID, item.Title)
	}
	return nil
}

func (m *Model) loadPlaylist(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.catalog.Playlist(m.ctx, id)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		rows := make([]trackRow, len(detail.Tracks))
		for i, tr := range detail.Tracks {
			rows[i] = trackRow{ID: tr.ID, Title: tr.Name, Artist: tr.Artist, ImageURL: tr.ImageURL}
		}
		return detailLoadedMsg{title: detail.Title, tracks: rows}
	}
}

func (m *Model) loadAlbum(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.catalog.Album(m.ctx, id)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		rows := make([]trackRow, len(detail.Tracks))
		for i, tr := range detail.Tracks {
			rows[i] = trackRow{ID: tr.ID, Title: tr.Name, Artist: tr.Artist, ImageURL: detail.ImageURL, DurationMS: tr.DurationMS}
		}
		return detailLoadedMsg{title: detail.Title, tracks: rows}
	}
}

func (m *Model) loadArtistTop(id, name string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.catalog.ArtistTopTracks(m.ctx, id)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		rows := make([]trackRow, len(items))
		for i, it := range items {
			rows[i] = trackRow{ID: it.ID, Title: it.Title, Artist: it.Subtitle, ImageURL: it.ImageURL}
		}
		return detailLoadedMsg{title: fmt.Sprintf("Top tracks • %s", name), tracks: rows}
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.catalog.Search(m.ctx, query)
		if err != nil {
			return searchDoneMsg{query: query, err: err}
		}
		items := make([]feedItem, len(results))
		for i, r := range results {
			items[i] = feedItem{item: spotify.ListItem{
				ID:       r.ID,
				Title:    r.Name,
				Kind:     r.Kind,
				ImageURL: r.ImageURL,
				Subtitle: r.SubText,
			}}
		}
		return searchDoneMsg{query: query, items: items}
	}
}

// playTrack resolves the preview clip for a track and hands it to the
// playback controller. Player state changes arrive separately through the
// controller's update channel.
func (m *Model) playTrack(row trackRow) tea.Cmd {
	return func() tea.Msg {
		match, err := m.previews.BestMatch(m.ctx, row.Title, row.Artist)
		if err != nil {
			return previewResolvedMsg{err: err}
		}

		track := player.Track{
			ID:         row.ID,
			Title:      row.Title,
			Artist:     row.Artist,
			PreviewURL: match.URL,
			ImageURL:   row.ImageURL,
		}
		m.controller.Load(track)
		return previewResolvedMsg{track: track}
	}
}

func (m *Model) waitForPlayer() tea.Cmd {
	return func() tea.Msg {
		return playerUpdateMsg(<-m.playerEvents)
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) renderHome() string {
	if m.searching {
		return fmt.Sprintf("%s\n\n%s", styles.title.Render("Search"), m.searchIn.View())
	}
	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.homeList.View(), helpView)
}

func (m *Model) renderSearch() string {
	if m.searching {
		return fmt.Sprintf("%s\n\n%s", styles.title.Render("Search"), m.searchIn.View())
	}
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.search, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.searchList.View(), helpView)
}

func (m *Model) renderDetail() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.toggle, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.detailList.View(), helpView)
}

// renderPlayer draws the mini player pane shown under every view.
func (m *Model) renderPlayer() string {
	if m.playerErr != nil {
		line := styles.warn.Render(fmt.Sprintf("Preview not available: %v", m.playerErr))
		return styles.player.Render(line)
	}

	track := m.playerState.Track
	if track == nil {
		return styles.player.Render(styles.help.Render("Nothing playing"))
	}

	icon := "▶"
	if !m.playerState.Playing {
		icon = "⏸"
	}

	pos, dur := m.controller.Progress()
	var line string
	if dur > 0 {
		line = fmt.Sprintf("%s %s — %s  %s / %s", icon, track.Title, track.Artist,
			shared.FormatDuration(int(pos.Milliseconds())), shared.FormatDuration(int(dur.Milliseconds())))
	} else {
		line = fmt.Sprintf("%s %s — %s", icon, track.Title, track.Artist)
	}
	return styles.player.Render(line)
}

// flattenFeed turns the sectioned home feed into a single browsable list.
func flattenFeed(feed *tasks.HomeFeed) []list.Item {
	var items []list.Item
	add := func(section string, entries []spotify.ListItem) {
		for _, entry := range entries {
			items = append(items, feedItem{item: entry, section: section})
		}
	}
	add("Recently played", feed.RecentlyPlayed)
	add("Made for you", feed.MadeForYou)
	add("Your playlists", feed.Playlists)
	add("Your albums", feed.Albums)
	add("Following", feed.FollowedArtists)
	return items
}
