package surface

import (
	"errors"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/mister-ben/mediasessiond/internal/domain"
	"github.com/mister-ben/mediasessiond/internal/domain/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// fakeConn records export and emit calls instead of talking to a bus
type fakeConn struct {
	reply    dbus.RequestNameReply
	nameErr  error
	requests []string
	exports  []string
	signals  []emittedSignal
	closed   bool
}

type emittedSignal struct {
	path   dbus.ObjectPath
	name   string
	values []interface{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{reply: dbus.RequestNameReplyPrimaryOwner}
}

func (c *fakeConn) RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error) {
	c.requests = append(c.requests, name)
	return c.reply, c.nameErr
}

func (c *fakeConn) Export(v interface{}, path dbus.ObjectPath, iface string) error {
	c.exports = append(c.exports, iface)
	return nil
}

func (c *fakeConn) Emit(path dbus.ObjectPath, name string, values ...interface{}) error {
	c.signals = append(c.signals, emittedSignal{path: path, name: name, values: values})
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func newTestSurface(t *testing.T, art domain.ArtResolver) (*MPRISSurface, *fakeConn) {
	t.Helper()
	conn := newFakeConn()
	s, err := newWithConn(zap.NewNop(), conn, "testplayer", art)
	if err != nil {
		t.Fatalf("newWithConn failed: %v", err)
	}
	return s, conn
}

func TestNewWithConn(t *testing.T) {
	s, conn := newTestSurface(t, nil)

	if len(conn.requests) != 1 || conn.requests[0] != "org.mpris.MediaPlayer2.testplayer" {
		t.Errorf("unexpected bus name requests %v", conn.requests)
	}
	wantExports := []string{mprisInterface, mprisPlayerInterface, propertiesInterface}
	if len(conn.exports) != len(wantExports) {
		t.Fatalf("exported %v, want %v", conn.exports, wantExports)
	}
	for i, iface := range wantExports {
		if conn.exports[i] != iface {
			t.Errorf("export %d = %q, want %q", i, conn.exports[i], iface)
		}
	}
	if s.identity != "testplayer" {
		t.Errorf("identity = %q", s.identity)
	}
}

func TestNewWithConn_NameTaken(t *testing.T) {
	conn := newFakeConn()
	conn.reply = dbus.RequestNameReplyExists

	if _, err := newWithConn(zap.NewNop(), conn, "testplayer", nil); err == nil {
		t.Error("expected error when the bus name is already taken")
	}
}

func TestSetActionHandler(t *testing.T) {
	s, _ := newTestSurface(t, nil)

	if err := s.SetActionHandler(domain.ActionPlay, func(domain.ActionDetails) {}); err != nil {
		t.Errorf("binding a known action failed: %v", err)
	}
	if err := s.SetActionHandler("toggletranslation", func(domain.ActionDetails) {}); err == nil {
		t.Error("binding an unknown action name should fail")
	}
	if err := s.SetActionHandler(domain.ActionPlay, nil); err != nil {
		t.Errorf("unbinding failed: %v", err)
	}
	if s.hasHandler(domain.ActionPlay) {
		t.Error("nil handler should remove the binding")
	}
}

// TestMethodDispatch verifies that incoming MPRIS method calls invoke
// the handler bound to the corresponding action with the right details.
func TestMethodDispatch(t *testing.T) {
	tests := []struct {
		name        string
		call        func(s *MPRISSurface)
		wantAction  domain.Action
		wantDetails domain.ActionDetails
	}{
		{
			name:       "Play",
			call:       func(s *MPRISSurface) { s.Play() },
			wantAction: domain.ActionPlay,
		},
		{
			name:       "Pause",
			call:       func(s *MPRISSurface) { s.Pause() },
			wantAction: domain.ActionPause,
		},
		{
			name:       "Stop",
			call:       func(s *MPRISSurface) { s.Stop() },
			wantAction: domain.ActionStop,
		},
		{
			name:       "Next",
			call:       func(s *MPRISSurface) { s.Next() },
			wantAction: domain.ActionNextTrack,
		},
		{
			name:       "Previous",
			call:       func(s *MPRISSurface) { s.Previous() },
			wantAction: domain.ActionPreviousTrack,
		},
		{
			name:        "Seek forward",
			call:        func(s *MPRISSurface) { s.Seek(3_000_000) },
			wantAction:  domain.ActionSeekForward,
			wantDetails: domain.ActionDetails{SeekOffset: 3 * time.Second},
		},
		{
			name:        "Seek backward carries magnitude",
			call:        func(s *MPRISSurface) { s.Seek(-5_000_000) },
			wantAction:  domain.ActionSeekBackward,
			wantDetails: domain.ActionDetails{SeekOffset: 5 * time.Second},
		},
		{
			name:        "SetPosition is absolute",
			call:        func(s *MPRISSurface) { s.SetPosition("/some/track", 17_000_000) },
			wantAction:  domain.ActionSeekTo,
			wantDetails: domain.ActionDetails{SeekTime: 17 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSurface(t, nil)

			var gotAction domain.Action
			var gotDetails domain.ActionDetails
			calls := 0
			for action := range mprisActions {
				action := action
				err := s.SetActionHandler(action, func(d domain.ActionDetails) {
					gotAction = action
					gotDetails = d
					calls++
				})
				if err != nil {
					t.Fatalf("bind %s: %v", action, err)
				}
			}

			tt.call(s)

			if calls != 1 {
				t.Fatalf("expected exactly 1 handler invocation, got %d", calls)
			}
			if gotAction != tt.wantAction {
				t.Errorf("dispatched %q, want %q", gotAction, tt.wantAction)
			}
			if gotDetails != tt.wantDetails {
				t.Errorf("details = %+v, want %+v", gotDetails, tt.wantDetails)
			}
		})
	}
}

// TestDispatch_UnboundAction: a method call with no bound handler is
// ignored.
func TestDispatch_UnboundAction(t *testing.T) {
	s, _ := newTestSurface(t, nil)
	if err := s.Play(); err != nil {
		t.Errorf("unbound Play returned %v", err)
	}
}

func TestSetMetadata(t *testing.T) {
	s, conn := newTestSurface(t, nil)

	err := s.SetMetadata(domain.MediaMetadataSnapshot{
		Title: "Song Title",
		Src:   "library/song.mp3",
		Artwork: []domain.Artwork{
			{Src: "https://example.com/cover.jpg", Type: "image/jpeg"},
		},
	})
	if err != nil {
		t.Fatalf("SetMetadata failed: %v", err)
	}

	if len(conn.signals) != 1 || conn.signals[0].name != propertiesInterface+".PropertiesChanged" {
		t.Fatalf("expected one PropertiesChanged signal, got %+v", conn.signals)
	}

	m := s.metadataMap()
	if got := m["xesam:title"].Value(); got != "Song Title" {
		t.Errorf("title = %v", got)
	}
	if got := m["xesam:url"].Value(); got != "library/song.mp3" {
		t.Errorf("url = %v", got)
	}
	if got := m["mpris:artUrl"].Value(); got != "https://example.com/cover.jpg" {
		t.Errorf("artUrl = %v", got)
	}
	if _, ok := m["mpris:length"]; ok {
		t.Error("length should be absent before any position report")
	}
}

// TestSetMetadata_FullReplace: a new snapshot fully replaces the
// previous one, it is not merged.
func TestSetMetadata_FullReplace(t *testing.T) {
	s, _ := newTestSurface(t, nil)

	_ = s.SetMetadata(domain.MediaMetadataSnapshot{
		Title:   "First",
		Artwork: []domain.Artwork{{Src: "first.jpg", Type: "image/jpeg"}},
	})
	_ = s.SetMetadata(domain.MediaMetadataSnapshot{Title: "Second"})

	m := s.metadataMap()
	if got := m["xesam:title"].Value(); got != "Second" {
		t.Errorf("title = %v, want Second", got)
	}
	if _, ok := m["mpris:artUrl"]; ok {
		t.Error("artwork from the previous snapshot must not survive")
	}
}

func TestSetPositionState(t *testing.T) {
	s, conn := newTestSurface(t, nil)

	err := s.SetPositionState(domain.PositionSnapshot{
		Duration:     3 * time.Minute,
		PlaybackRate: 1.0,
		Position:     42 * time.Second,
	})
	if err != nil {
		t.Fatalf("SetPositionState failed: %v", err)
	}

	// PropertiesChanged followed by Seeked
	if len(conn.signals) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(conn.signals))
	}
	seeked := conn.signals[1]
	if seeked.name != mprisPlayerInterface+".Seeked" {
		t.Errorf("second signal = %q, want Seeked", seeked.name)
	}
	if got := seeked.values[0].(int64); got != (42 * time.Second).Microseconds() {
		t.Errorf("Seeked position = %d µs", got)
	}

	if got := s.metadataMap()["mpris:length"].Value(); got != (3 * time.Minute).Microseconds() {
		t.Errorf("length = %v", got)
	}
	if got := s.playbackStatus(); got != "Playing" {
		t.Errorf("status = %q, want Playing while rate > 0", got)
	}

	_ = s.SetPositionState(domain.PositionSnapshot{PlaybackRate: 0})
	if got := s.playbackStatus(); got != "Paused" {
		t.Errorf("status = %q, want Paused at rate 0", got)
	}
}

func TestCapabilityProperties(t *testing.T) {
	s, _ := newTestSurface(t, nil)

	props := s.playerProperties()
	if props["CanGoNext"].Value() != false || props["CanPlay"].Value() != false {
		t.Error("Can flags should be false before binding")
	}

	_ = s.SetActionHandler(domain.ActionPlay, func(domain.ActionDetails) {})
	_ = s.SetActionHandler(domain.ActionNextTrack, func(domain.ActionDetails) {})

	props = s.playerProperties()
	if props["CanGoNext"].Value() != true || props["CanPlay"].Value() != true {
		t.Error("Can flags should follow handler presence")
	}
	if props["CanGoPrevious"].Value() != false {
		t.Error("CanGoPrevious should stay false with no previoustrack binding")
	}
}

// TestSetMetadata_ArtResolution: with a resolver attached the first
// artwork entry is rewritten; a failed resolution keeps the original
// URL and is not an error.
func TestSetMetadata_ArtResolution(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("Resolved", func(t *testing.T) {
		art := mocks.NewMockArtResolver(ctrl)
		art.EXPECT().Resolve(gomock.Any(), "https://example.com/cover.jpg").
			Return("file:///tmp/cache/abc.jpg", nil)

		s, _ := newTestSurface(t, art)
		_ = s.SetMetadata(domain.MediaMetadataSnapshot{
			Artwork: []domain.Artwork{{Src: "https://example.com/cover.jpg"}},
		})

		if got := s.metadataMap()["mpris:artUrl"].Value(); got != "file:///tmp/cache/abc.jpg" {
			t.Errorf("artUrl = %v, want the resolved path", got)
		}
	})

	t.Run("Resolution failure keeps original", func(t *testing.T) {
		art := mocks.NewMockArtResolver(ctrl)
		art.EXPECT().Resolve(gomock.Any(), "https://example.com/cover.jpg").
			Return("", errors.New("network down"))

		s, _ := newTestSurface(t, art)
		err := s.SetMetadata(domain.MediaMetadataSnapshot{
			Artwork: []domain.Artwork{{Src: "https://example.com/cover.jpg"}},
		})
		if err != nil {
			t.Fatalf("SetMetadata should contain resolver failures, got %v", err)
		}
		if got := s.metadataMap()["mpris:artUrl"].Value(); got != "https://example.com/cover.jpg" {
			t.Errorf("artUrl = %v, want the original URL", got)
		}
	})
}

func TestPlayPauseFollowsStatus(t *testing.T) {
	s, _ := newTestSurface(t, nil)

	var got []domain.Action
	for _, action := range []domain.Action{domain.ActionPlay, domain.ActionPause} {
		action := action
		_ = s.SetActionHandler(action, func(domain.ActionDetails) { got = append(got, action) })
	}

	// Paused (rate 0) -> PlayPause plays
	s.PlayPause()
	// Playing -> PlayPause pauses
	_ = s.SetPositionState(domain.PositionSnapshot{PlaybackRate: 1.0})
	s.PlayPause()

	want := []domain.Action{domain.ActionPlay, domain.ActionPause}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("PlayPause dispatched %v, want %v", got, want)
	}
}
