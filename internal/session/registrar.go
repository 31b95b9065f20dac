package session

import (
	"fmt"
	"time"

	"github.com/mister-ben/mediasessiond/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// defaultSeekSkip is applied when the OS supplies no explicit offset
// with a seekbackward/seekforward intent.
const defaultSeekSkip = 10 * time.Second

// binding pairs one named action with its handler
type binding struct {
	action  domain.Action
	handler domain.ActionHandler
}

// actionTable returns the fixed action vocabulary, plus the two
// track-navigation actions when a playlist capability is attached.
// Handlers read player state at invocation time, so one invoked after
// the media has changed always observes current state.
func (s *Session) actionTable() []binding {
	table := []binding{
		{domain.ActionPlay, s.handlePlay},
		{domain.ActionPause, s.handlePause},
		// stop carries no distinct halt-and-reset semantics; it behaves
		// exactly as pause
		{domain.ActionStop, s.handlePause},
		{domain.ActionSeekBackward, s.handleSeekBackward},
		{domain.ActionSeekForward, s.handleSeekForward},
		{domain.ActionSeekTo, s.handleSeekTo},
	}
	if s.playlist != nil {
		table = append(table,
			binding{domain.ActionPreviousTrack, s.handlePreviousTrack},
			binding{domain.ActionNextTrack, s.handleNextTrack},
		)
	}
	return table
}

// bindActions registers every action in the table with the surface.
// Registration is best-effort, not an atomic batch: a surface rejecting
// one action name does not stop the remaining actions from being bound.
// Failures are aggregated for a single debug log and never propagate.
func (s *Session) bindActions() {
	var errs error
	for _, b := range s.actionTable() {
		if err := s.surface.SetActionHandler(b.action, b.handler); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", b.action, err))
		}
	}
	if errs != nil {
		s.logger.Debug("some actions are not supported by the surface", zap.Error(errs))
	}
}

func (s *Session) handlePlay(domain.ActionDetails) {
	if err := s.player.Play(); err != nil {
		s.logger.Debug("play failed", zap.Error(err))
	}
}

func (s *Session) handlePause(domain.ActionDetails) {
	if err := s.player.Pause(); err != nil {
		s.logger.Debug("pause failed", zap.Error(err))
	}
}

func (s *Session) handleSeekBackward(d domain.ActionDetails) {
	s.seekBy(-skipOffset(d))
}

func (s *Session) handleSeekForward(d domain.ActionDetails) {
	s.seekBy(skipOffset(d))
}

// seekBy adjusts the current time by delta and then pushes exactly one
// position report, in that order.
func (s *Session) seekBy(delta time.Duration) {
	target := s.player.CurrentTime() + delta
	if target < 0 {
		target = 0
	}
	if err := s.player.SetCurrentTime(target); err != nil {
		s.logger.Debug("seek failed", zap.Duration("target", target), zap.Error(err))
	}
	s.ReportPosition()
}

func (s *Session) handleSeekTo(d domain.ActionDetails) {
	if err := s.player.SetCurrentTime(d.SeekTime); err != nil {
		s.logger.Debug("seek failed", zap.Duration("target", d.SeekTime), zap.Error(err))
	}
	s.ReportPosition()
}

func (s *Session) handlePreviousTrack(domain.ActionDetails) {
	if err := s.playlist.Previous(); err != nil {
		s.logger.Debug("previous track failed", zap.Error(err))
	}
}

func (s *Session) handleNextTrack(domain.ActionDetails) {
	if err := s.playlist.Next(); err != nil {
		s.logger.Debug("next track failed", zap.Error(err))
	}
}

func skipOffset(d domain.ActionDetails) time.Duration {
	if d.SeekOffset > 0 {
		return d.SeekOffset
	}
	return defaultSeekSkip
}
