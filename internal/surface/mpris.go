// Package surface implements the OS media-control surface for Linux
// desktops over MPRIS: it claims an org.mpris.MediaPlayer2 bus name,
// serves the MPRIS properties from the last published snapshots and
// dispatches incoming method calls into the bound action handlers.
package surface

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/mister-ben/mediasessiond/internal/domain"
	"go.uber.org/zap"
)

const (
	mprisInterface       = "org.mpris.MediaPlayer2"
	mprisPlayerInterface = "org.mpris.MediaPlayer2.Player"
	mprisObjectPath      = "/org/mpris/MediaPlayer2"
	propertiesInterface  = "org.freedesktop.DBus.Properties"

	busNamePrefix = "org.mpris.MediaPlayer2."
	trackIDPrefix = "/org/mpris/mediasessiond/track/"
)

// mprisActions is the set of action names representable over MPRIS.
// SetActionHandler rejects anything outside it.
var mprisActions = map[domain.Action]struct{}{
	domain.ActionPlay:          {},
	domain.ActionPause:         {},
	domain.ActionStop:          {},
	domain.ActionSeekBackward:  {},
	domain.ActionSeekForward:   {},
	domain.ActionSeekTo:        {},
	domain.ActionPreviousTrack: {},
	domain.ActionNextTrack:     {},
}

// MPRISSurface implements domain.Surface and domain.PositionStateSetter
// on top of a session-bus connection.
type MPRISSurface struct {
	logger   *zap.Logger
	conn     busConn
	identity string
	art      domain.ArtResolver // optional, may be nil

	mu       sync.Mutex
	handlers map[domain.Action]domain.ActionHandler
	metadata domain.MediaMetadataSnapshot
	position domain.PositionSnapshot
}

var (
	_ domain.Surface             = (*MPRISSurface)(nil)
	_ domain.PositionStateSetter = (*MPRISSurface)(nil)
)

// New connects to the session bus and claims an MPRIS name. A nil
// result (with no error) means this device has no media-control
// surface; callers degrade to a disabled session. That outcome is
// logged at debug level only and never surfaced to the user.
func New(logger *zap.Logger, cfg domain.Config, art domain.ArtResolver) domain.Surface {
	conn, err := dbus.SessionBus()
	if err != nil {
		logger.Debug("session bus unavailable, media controls disabled", zap.Error(err))
		return nil
	}
	s, err := newWithConn(logger, conn, cfg.GetIdentity(), art)
	if err != nil {
		logger.Debug("could not attach to MPRIS, media controls disabled", zap.Error(err))
		_ = conn.Close()
		return nil
	}
	logger.Info("MPRIS surface attached", zap.String("identity", s.identity))
	return s
}

func newWithConn(logger *zap.Logger, conn busConn, identity string, art domain.ArtResolver) (*MPRISSurface, error) {
	reply, err := conn.RequestName(busNamePrefix+identity, dbus.NameFlagDoNotQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return nil, fmt.Errorf("bus name %q already taken", busNamePrefix+identity)
	}

	s := &MPRISSurface{
		logger:   logger,
		conn:     conn,
		identity: identity,
		art:      art,
		handlers: make(map[domain.Action]domain.ActionHandler),
	}
	if err := s.exportInterfaces(); err != nil {
		return nil, fmt.Errorf("failed to export interfaces: %w", err)
	}
	return s, nil
}

func (s *MPRISSurface) exportInterfaces() error {
	if err := s.conn.Export(s, dbus.ObjectPath(mprisObjectPath), mprisInterface); err != nil {
		return err
	}
	if err := s.conn.Export(s, dbus.ObjectPath(mprisObjectPath), mprisPlayerInterface); err != nil {
		return err
	}
	return s.conn.Export(s, dbus.ObjectPath(mprisObjectPath), propertiesInterface)
}

// SetActionHandler binds a handler for one action name. Names outside
// the MPRIS vocabulary are rejected with an error; the caller treats
// that as a skipped action, not a fatal condition.
func (s *MPRISSurface) SetActionHandler(action domain.Action, h domain.ActionHandler) error {
	if _, ok := mprisActions[action]; !ok {
		return fmt.Errorf("action %q is not representable over MPRIS", action)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if h == nil {
		delete(s.handlers, action)
		return nil
	}
	s.handlers[action] = h
	return nil
}

// SetMetadata replaces the published metadata in full and notifies
// listening shells. When an artwork resolver is attached, the first
// artwork entry is rewritten to a locally-loadable URL first; a failed
// resolution keeps the original URL.
func (s *MPRISSurface) SetMetadata(meta domain.MediaMetadataSnapshot) error {
	if s.art != nil && len(meta.Artwork) > 0 {
		local, err := s.art.Resolve(context.Background(), meta.Artwork[0].Src)
		if err != nil {
			s.logger.Debug("artwork resolution failed",
				zap.String("url", meta.Artwork[0].Src), zap.Error(err))
		} else if local != meta.Artwork[0].Src {
			artwork := append([]domain.Artwork(nil), meta.Artwork...)
			artwork[0].Src = local
			meta.Artwork = artwork
		}
	}

	s.mu.Lock()
	s.metadata = meta
	s.mu.Unlock()

	return s.emitPropertiesChanged(map[string]dbus.Variant{
		"Metadata": dbus.MakeVariant(s.metadataMap()),
	})
}

// SetPositionState updates the served position, rate and duration and
// emits a Seeked signal so shells re-read the position immediately.
func (s *MPRISSurface) SetPositionState(pos domain.PositionSnapshot) error {
	s.mu.Lock()
	s.position = pos
	s.mu.Unlock()

	// Duration rides along inside mpris:length, so shells that only
	// watch Metadata stay correct too.
	err := s.emitPropertiesChanged(map[string]dbus.Variant{
		"PlaybackStatus": dbus.MakeVariant(s.playbackStatus()),
		"Rate":           dbus.MakeVariant(pos.PlaybackRate),
		"Metadata":       dbus.MakeVariant(s.metadataMap()),
	})
	if err != nil {
		return err
	}
	return s.conn.Emit(
		dbus.ObjectPath(mprisObjectPath),
		mprisPlayerInterface+".Seeked",
		pos.Position.Microseconds(),
	)
}

// Close releases the bus connection
func (s *MPRISSurface) Close() error {
	return s.conn.Close()
}

// dispatch invokes the bound handler for an action. An unbound action
// is ignored with a debug log; OS-originated calls are fire-and-forget.
func (s *MPRISSurface) dispatch(action domain.Action, d domain.ActionDetails) {
	s.mu.Lock()
	h := s.handlers[action]
	s.mu.Unlock()
	if h == nil {
		s.logger.Debug("no handler bound for action", zap.String("action", string(action)))
		return
	}
	h(d)
}

func (s *MPRISSurface) hasHandler(action domain.Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handlers[action] != nil
}

// org.mpris.MediaPlayer2 methods

func (s *MPRISSurface) Raise() *dbus.Error {
	return nil
}

func (s *MPRISSurface) Quit() *dbus.Error {
	return nil
}

// org.mpris.MediaPlayer2.Player methods

func (s *MPRISSurface) Play() *dbus.Error {
	s.dispatch(domain.ActionPlay, domain.ActionDetails{})
	return nil
}

func (s *MPRISSurface) Pause() *dbus.Error {
	s.dispatch(domain.ActionPause, domain.ActionDetails{})
	return nil
}

func (s *MPRISSurface) PlayPause() *dbus.Error {
	if s.playbackStatus() == string(domain.StatusPlaying) {
		return s.Pause()
	}
	return s.Play()
}

func (s *MPRISSurface) Stop() *dbus.Error {
	s.dispatch(domain.ActionStop, domain.ActionDetails{})
	return nil
}

func (s *MPRISSurface) Next() *dbus.Error {
	s.dispatch(domain.ActionNextTrack, domain.ActionDetails{})
	return nil
}

func (s *MPRISSurface) Previous() *dbus.Error {
	s.dispatch(domain.ActionPreviousTrack, domain.ActionDetails{})
	return nil
}

// Seek handles the MPRIS relative seek: a negative offset becomes a
// seekbackward intent, a positive one seekforward, each carrying the
// requested magnitude.
func (s *MPRISSurface) Seek(offset int64) *dbus.Error {
	d := time.Duration(offset) * time.Microsecond
	if d < 0 {
		s.dispatch(domain.ActionSeekBackward, domain.ActionDetails{SeekOffset: -d})
	} else {
		s.dispatch(domain.ActionSeekForward, domain.ActionDetails{SeekOffset: d})
	}
	return nil
}

func (s *MPRISSurface) SetPosition(trackID dbus.ObjectPath, position int64) *dbus.Error {
	s.dispatch(domain.ActionSeekTo, domain.ActionDetails{
		SeekTime: time.Duration(position) * time.Microsecond,
	})
	return nil
}

func (s *MPRISSurface) OpenUri(uri string) *dbus.Error {
	return nil
}

// org.freedesktop.DBus.Properties methods

func (s *MPRISSurface) Get(iface, prop string) (dbus.Variant, *dbus.Error) {
	switch iface {
	case mprisInterface:
		if v, ok := s.rootProperties()[prop]; ok {
			return v, nil
		}
	case mprisPlayerInterface:
		if v, ok := s.playerProperties()[prop]; ok {
			return v, nil
		}
	}
	return dbus.Variant{}, dbus.MakeFailedError(fmt.Errorf("unknown property: %s.%s", iface, prop))
}

func (s *MPRISSurface) GetAll(iface string) (map[string]dbus.Variant, *dbus.Error) {
	switch iface {
	case mprisInterface:
		return s.rootProperties(), nil
	case mprisPlayerInterface:
		return s.playerProperties(), nil
	}
	return nil, dbus.MakeFailedError(fmt.Errorf("unknown interface: %s", iface))
}

func (s *MPRISSurface) Set(iface, prop string, value dbus.Variant) *dbus.Error {
	// No writable properties are exposed
	return nil
}

func (s *MPRISSurface) rootProperties() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"CanQuit":             dbus.MakeVariant(false),
		"CanRaise":            dbus.MakeVariant(false),
		"HasTrackList":        dbus.MakeVariant(false),
		"Identity":            dbus.MakeVariant(s.identity),
		"SupportedUriSchemes": dbus.MakeVariant([]string{}),
		"SupportedMimeTypes":  dbus.MakeVariant([]string{}),
	}
}

func (s *MPRISSurface) playerProperties() map[string]dbus.Variant {
	s.mu.Lock()
	pos := s.position
	s.mu.Unlock()

	return map[string]dbus.Variant{
		"PlaybackStatus": dbus.MakeVariant(s.playbackStatus()),
		"Metadata":       dbus.MakeVariant(s.metadataMap()),
		"Position":       dbus.MakeVariant(pos.Position.Microseconds()),
		"Rate":           dbus.MakeVariant(pos.PlaybackRate),
		"MinimumRate":    dbus.MakeVariant(1.0),
		"MaximumRate":    dbus.MakeVariant(1.0),
		"Volume":         dbus.MakeVariant(1.0),
		"CanGoNext":      dbus.MakeVariant(s.hasHandler(domain.ActionNextTrack)),
		"CanGoPrevious":  dbus.MakeVariant(s.hasHandler(domain.ActionPreviousTrack)),
		"CanPlay":        dbus.MakeVariant(s.hasHandler(domain.ActionPlay)),
		"CanPause":       dbus.MakeVariant(s.hasHandler(domain.ActionPause)),
		"CanSeek":        dbus.MakeVariant(s.hasHandler(domain.ActionSeekTo)),
		"CanControl":     dbus.MakeVariant(true),
	}
}

// playbackStatus derives the MPRIS status from the reported rate: the
// player contract reports rate 0 while halted.
func (s *MPRISSurface) playbackStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position.PlaybackRate > 0 {
		return string(domain.StatusPlaying)
	}
	return string(domain.StatusPaused)
}

func (s *MPRISSurface) metadataMap() map[string]dbus.Variant {
	s.mu.Lock()
	meta := s.metadata
	pos := s.position
	s.mu.Unlock()

	m := map[string]dbus.Variant{
		"mpris:trackid": dbus.MakeVariant(trackObjectPath(meta.Src)),
	}
	if meta.Title != "" {
		m["xesam:title"] = dbus.MakeVariant(meta.Title)
	}
	if meta.Src != "" {
		m["xesam:url"] = dbus.MakeVariant(meta.Src)
	}
	if pos.Duration > 0 {
		m["mpris:length"] = dbus.MakeVariant(pos.Duration.Microseconds())
	}
	if len(meta.Artwork) > 0 {
		m["mpris:artUrl"] = dbus.MakeVariant(meta.Artwork[0].Src)
	}
	return m
}

// trackObjectPath derives a stable object path from the source URL so
// shells notice track changes
func trackObjectPath(src string) dbus.ObjectPath {
	h := fnv.New64a()
	_, _ = h.Write([]byte(src))
	return dbus.ObjectPath(fmt.Sprintf("%s%x", trackIDPrefix, h.Sum64()))
}

func (s *MPRISSurface) emitPropertiesChanged(props map[string]dbus.Variant) error {
	return s.conn.Emit(
		dbus.ObjectPath(mprisObjectPath),
		propertiesInterface+".PropertiesChanged",
		mprisPlayerInterface,
		props,
		[]string{},
	)
}
