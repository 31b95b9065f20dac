// Package player implements the Player contract on top of an MPD
// server: playback control and property reads over the client
// connection, load events from an MPD idle watcher, and the server's
// queue exposed as the playlist capability.
package player

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/fhs/gompd/mpd"
	"github.com/mister-ben/mediasessiond/internal/domain"
	"go.uber.org/zap"
)

const pingInterval = 30 * time.Second

// mpdClient is the subset of the gompd client the player uses.
// This abstraction allows us to exercise the mapping logic in tests
// without a running MPD server.
type mpdClient interface {
	Status() (mpd.Attrs, error)
	CurrentSong() (mpd.Attrs, error)
	PlaylistInfo(start, end int) ([]mpd.Attrs, error)
	Pause(pause bool) error
	Seek(pos, seconds int) error
	Next() error
	Previous() error
	Ping() error
	Close() error
}

// MPDPlayer adapts an MPD server to the domain.Player contract
type MPDPlayer struct {
	logger      *zap.Logger
	client      mpdClient
	addr        string
	password    string
	artTemplate string

	watcher *mpd.Watcher
	quit    chan struct{}

	mu            sync.Mutex
	loadCallbacks []func()
	lastSongID    string
}

var (
	_ domain.Player   = (*MPDPlayer)(nil)
	_ domain.Playlist = (*mpdQueue)(nil)
)

// NewMPDPlayer connects to the MPD server named by the configuration
func NewMPDPlayer(logger *zap.Logger, cfg domain.Config) (*MPDPlayer, error) {
	addr := cfg.GetMPDAddress()
	password := cfg.GetMPDPassword()

	var (
		client *mpd.Client
		err    error
	)
	if password != "" {
		client, err = mpd.DialAuthenticated("tcp", addr, password)
	} else {
		client, err = mpd.Dial("tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MPD at %s: %w", addr, err)
	}

	logger.Info("connected to MPD", zap.String("address", addr))

	return &MPDPlayer{
		logger:      logger,
		client:      client,
		addr:        addr,
		password:    password,
		artTemplate: cfg.GetArtURLTemplate(),
		quit:        make(chan struct{}),
	}, nil
}

// Start launches the idle watcher that turns MPD player-subsystem
// events into load-start callbacks. Callbacks are dispatched serially
// from a single goroutine.
func (p *MPDPlayer) Start() error {
	w, err := mpd.NewWatcher("tcp", p.addr, p.password, "player")
	if err != nil {
		return fmt.Errorf("failed to start MPD watcher: %w", err)
	}
	p.watcher = w

	// Seed the song ID so the first watcher event after startup is
	// only treated as a load when the song actually changed.
	if st, err := p.client.Status(); err == nil {
		p.mu.Lock()
		p.lastSongID = st["songid"]
		p.mu.Unlock()
	}

	go p.watch()
	return nil
}

// Stop closes the watcher and the client connection
func (p *MPDPlayer) Stop() error {
	close(p.quit)
	if p.watcher != nil {
		if err := p.watcher.Close(); err != nil {
			p.logger.Warn("failed to close MPD watcher", zap.Error(err))
		}
	}
	return p.client.Close()
}

func (p *MPDPlayer) watch() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.quit:
			return
		case <-ticker.C:
			// The control connection idles between commands; keep it
			// from being dropped by the server.
			if err := p.client.Ping(); err != nil {
				p.logger.Warn("MPD ping failed", zap.Error(err))
			}
		case err, ok := <-p.watcher.Error:
			if !ok {
				return
			}
			p.logger.Debug("MPD watcher error", zap.Error(err))
		case _, ok := <-p.watcher.Event:
			if !ok {
				return
			}
			p.handlePlayerEvent()
		}
	}
}

// handlePlayerEvent fires the load callbacks when the current song
// changed. Pause/resume events touch the player subsystem too but do
// not start a new load.
func (p *MPDPlayer) handlePlayerEvent() {
	st, err := p.client.Status()
	if err != nil {
		p.logger.Debug("failed to read MPD status", zap.Error(err))
		return
	}
	id := st["songid"]

	p.mu.Lock()
	changed := id != p.lastSongID
	p.lastSongID = id
	callbacks := make([]func(), len(p.loadCallbacks))
	copy(callbacks, p.loadCallbacks)
	p.mu.Unlock()

	if !changed || id == "" {
		return
	}
	p.logger.Debug("song change detected", zap.String("songid", id))
	for _, fn := range callbacks {
		fn()
	}
}

// Play resumes playback of the current song
func (p *MPDPlayer) Play() error {
	return p.client.Pause(false)
}

// Pause suspends playback
func (p *MPDPlayer) Pause() error {
	return p.client.Pause(true)
}

// CurrentTime returns the elapsed time within the current song
func (p *MPDPlayer) CurrentTime() time.Duration {
	return p.statusSeconds("elapsed")
}

// SetCurrentTime seeks within the current song
func (p *MPDPlayer) SetCurrentTime(t time.Duration) error {
	st, err := p.client.Status()
	if err != nil {
		return fmt.Errorf("failed to read MPD status: %w", err)
	}
	pos, err := strconv.Atoi(st["song"])
	if err != nil {
		return fmt.Errorf("no current song to seek in")
	}
	return p.client.Seek(pos, int(t.Seconds()))
}

// Duration returns the length of the current song
func (p *MPDPlayer) Duration() time.Duration {
	return p.statusSeconds("duration")
}

// PlaybackRate returns 1.0 while MPD is playing and 0 otherwise; MPD
// has no variable-rate playback.
func (p *MPDPlayer) PlaybackRate() float64 {
	st, err := p.client.Status()
	if err != nil {
		p.logger.Debug("failed to read MPD status", zap.Error(err))
		return 0
	}
	if st["state"] == "play" {
		return 1.0
	}
	return 0
}

// CurrentSrc returns the file path of the current song
func (p *MPDPlayer) CurrentSrc() string {
	song, err := p.client.CurrentSong()
	if err != nil {
		p.logger.Debug("failed to read current song", zap.Error(err))
		return ""
	}
	return song["file"]
}

// Poster returns the empty string; MPD has no poster concept
func (p *MPDPlayer) Poster() string {
	return ""
}

// ActiveMedia describes the current song
func (p *MPDPlayer) ActiveMedia() *domain.ActiveMedia {
	song, err := p.client.CurrentSong()
	if err != nil {
		p.logger.Debug("failed to read current song", zap.Error(err))
		return nil
	}
	return mediaFromSong(song, p.artTemplate)
}

// OnLoadStart registers a callback fired on every song change
func (p *MPDPlayer) OnLoadStart(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadCallbacks = append(p.loadCallbacks, fn)
}

// Playlist exposes the MPD queue as the playlist capability
func (p *MPDPlayer) Playlist() domain.Playlist {
	return &mpdQueue{p}
}

func (p *MPDPlayer) statusSeconds(key string) time.Duration {
	st, err := p.client.Status()
	if err != nil {
		p.logger.Debug("failed to read MPD status", zap.Error(err))
		return 0
	}
	secs, err := strconv.ParseFloat(st[key], 64)
	if err != nil {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// mediaFromSong maps MPD song attributes to an ActiveMedia description.
// Songs without a tagged title fall back to the file's base name. When
// an art URL template is configured, a thumbnail pointing at it is
// synthesized for the song.
func mediaFromSong(song mpd.Attrs, artTemplate string) *domain.ActiveMedia {
	file := song["file"]
	if file == "" {
		return nil
	}
	media := &domain.ActiveMedia{
		Name: song["Title"],
		Src:  file,
	}
	if media.Name == "" {
		media.Name = path.Base(file)
	}
	if artTemplate != "" {
		media.Thumbnails = []domain.Thumbnail{
			{Src: fmt.Sprintf(artTemplate, url.QueryEscape(file))},
		}
	}
	return media
}

// mpdQueue implements domain.Playlist over the MPD queue
type mpdQueue struct {
	p *MPDPlayer
}

// Current returns the currently-indexed queue entry
func (q *mpdQueue) Current() *domain.ActiveMedia {
	st, err := q.p.client.Status()
	if err != nil {
		q.p.logger.Debug("failed to read MPD status", zap.Error(err))
		return nil
	}
	pos, err := strconv.Atoi(st["song"])
	if err != nil {
		return nil
	}
	songs, err := q.p.client.PlaylistInfo(pos, -1)
	if err != nil || len(songs) == 0 {
		return nil
	}
	return mediaFromSong(songs[0], q.p.artTemplate)
}

// Previous navigates to the previous queue entry
func (q *mpdQueue) Previous() error {
	return q.p.client.Previous()
}

// Next navigates to the next queue entry
func (q *mpdQueue) Next() error {
	return q.p.client.Next()
}
