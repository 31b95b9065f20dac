package domain

import (
	"context"
	"time"
)

// Action names a remote-control intent originating from the OS surface
type Action string

const (
	ActionPlay          Action = "play"
	ActionPause         Action = "pause"
	ActionStop          Action = "stop"
	ActionSeekBackward  Action = "seekbackward"
	ActionSeekForward   Action = "seekforward"
	ActionSeekTo        Action = "seekto"
	ActionPreviousTrack Action = "previoustrack"
	ActionNextTrack     Action = "nexttrack"
)

// ActionDetails carries the optional parameters of an OS-originated intent
type ActionDetails struct {
	// SeekOffset is the requested skip amount for seekbackward/seekforward.
	// Zero means the OS did not supply one and the default applies.
	SeekOffset time.Duration
	// SeekTime is the absolute target position for seekto
	SeekTime time.Duration
}

// ActionHandler executes one control intent against the player
type ActionHandler func(details ActionDetails)

// Player defines the media engine contract the session adapts.
// Property reads are synchronous and must not block.
type Player interface {
	// Play resumes playback
	Play() error

	// Pause suspends playback
	Pause() error

	// CurrentTime returns the current playback position
	CurrentTime() time.Duration

	// SetCurrentTime seeks to an absolute position
	SetCurrentTime(t time.Duration) error

	// Duration returns the length of the current item
	Duration() time.Duration

	// PlaybackRate returns the current playback rate
	// (1.0 when playing, 0 when halted)
	PlaybackRate() float64

	// CurrentSrc returns the resolved source URL of the current item
	CurrentSrc() string

	// Poster returns the poster image URL for the current item,
	// empty when the player has none
	Poster() string

	// ActiveMedia returns the description of the currently loaded item,
	// nil when nothing is loaded
	ActiveMedia() *ActiveMedia

	// OnLoadStart registers a callback fired whenever a new item begins
	// loading
	OnLoadStart(fn func())

	// Playlist returns the attached playlist capability, nil when the
	// player has none. The result is read once at setup and treated as
	// constant for the session lifetime.
	Playlist() Playlist
}

// Playlist is the optional track-navigation capability attached to a player
//
//go:generate mockgen -destination=mocks/interfaces_mock.go -package=mocks github.com/mister-ben/mediasessiond/internal/domain Playlist,Surface,PositionStateSetter,ArtResolver
type Playlist interface {
	// Current returns the currently-indexed entry, nil when the queue
	// is empty
	Current() *ActiveMedia

	// Previous navigates to the previous entry
	Previous() error

	// Next navigates to the next entry
	Next() error
}

// Surface is the OS media-control surface: the native API that exposes
// remote playback controls and displays now-playing metadata. It is
// injected rather than ambient so the session core can run against a
// fake in tests.
type Surface interface {
	// SetActionHandler binds a handler for one named action. It returns
	// an error if the surface cannot represent the action; a nil handler
	// removes the binding.
	SetActionHandler(action Action, h ActionHandler) error

	// SetMetadata publishes a metadata snapshot, replacing any previous
	// one in full
	SetMetadata(meta MediaMetadataSnapshot) error

	// Close releases the surface
	Close() error
}

// PositionStateSetter is implemented by surfaces that can display a
// playback position. Callers resolve it once at setup; surfaces without
// it simply never receive position reports.
type PositionStateSetter interface {
	SetPositionState(pos PositionSnapshot) error
}

// ArtResolver turns an artwork URL into one the OS shell can load
type ArtResolver interface {
	Resolve(ctx context.Context, url string) (string, error)
}

// Config defines the interface for application configuration
type Config interface {
	// GetMPDAddress returns the MPD server address
	GetMPDAddress() string

	// GetMPDPassword returns the MPD password, empty when unset
	GetMPDPassword() string

	// GetIdentity returns the name this process presents on the OS
	// media-control surface
	GetIdentity() string

	// GetCacheDir returns the directory for cached artwork
	GetCacheDir() string

	// GetArtURLTemplate returns an optional printf-style template used
	// to derive a thumbnail URL from a track's file path
	GetArtURLTemplate() string
}
