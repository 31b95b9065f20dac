// Package session keeps a media player and the OS media-control surface
// synchronized: it binds OS-originated control intents (play, pause, seek,
// track navigation) to player commands and publishes metadata and position
// snapshots back to the surface whenever the active media changes.
package session

import (
	"github.com/mister-ben/mediasessiond/internal/domain"
	"go.uber.org/zap"
)

// Session is the bidirectional adapter between one player and the OS
// media-control surface. All methods run synchronously on the caller's
// goroutine; handlers close over the live player reference, never a
// snapshot of it.
type Session struct {
	logger   *zap.Logger
	player   domain.Player
	surface  domain.Surface
	pos      domain.PositionStateSetter // nil when the surface has no position support
	playlist domain.Playlist            // nil when the player has no playlist capability
	enabled  bool
}

// New creates a session for the given player and surface. A nil surface
// means the device has no media-control surface; Setup then degrades to
// a no-op. Both capabilities (position support, playlist) are resolved
// here, once, and treated as constant afterwards.
func New(logger *zap.Logger, player domain.Player, surface domain.Surface) *Session {
	s := &Session{
		logger:  logger,
		player:  player,
		surface: surface,
	}
	if surface != nil {
		s.pos, _ = surface.(domain.PositionStateSetter)
	}
	s.playlist = player.Playlist()
	return s
}

// Setup runs the one-time capability gate: it binds the action handlers,
// subscribes metadata sync to the player's load events and pushes an
// initial snapshot covering media that is already active. When the
// surface is absent the whole subsystem stays disabled and nothing else
// happens. Setup never returns an error to the host.
func (s *Session) Setup() {
	if s.surface == nil {
		s.logger.Debug("no media-control surface on this device, session disabled")
		return
	}

	s.bindActions()
	s.player.OnLoadStart(s.SyncMetadata)
	s.SyncMetadata()
	s.enabled = true

	s.logger.Info("media session enabled",
		zap.Bool("positionSupport", s.pos != nil),
		zap.Bool("playlist", s.playlist != nil))
}

// Enabled reports whether Setup completed against a live surface.
// Purely informational; no behavior depends on it.
func (s *Session) Enabled() bool {
	return s.enabled
}
