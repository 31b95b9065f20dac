package session

import (
	"strings"

	"github.com/mister-ben/mediasessiond/internal/domain"
	"go.uber.org/zap"
)

// SyncMetadata builds a fresh metadata snapshot from the active media
// description and publishes it to the surface, followed by a position
// report. It runs at setup and on every media load event. Failures are
// contained here; nothing propagates to the host.
func (s *Session) SyncMetadata() {
	if s.surface == nil {
		return
	}

	media := s.activeMedia()

	var snap domain.MediaMetadataSnapshot
	if media != nil {
		snap.Title = media.Name
		snap.Artwork = artworkFor(media, s.poster(media))
	}
	// The player's resolved source wins over whatever the raw
	// description carried.
	snap.Src = s.player.CurrentSrc()

	if err := s.surface.SetMetadata(snap); err != nil {
		s.logger.Debug("metadata publish failed", zap.Error(err))
	} else {
		s.logger.Debug("metadata published",
			zap.String("title", snap.Title),
			zap.Int("artwork", len(snap.Artwork)))
	}

	s.ReportPosition()
}

// ReportPosition pushes duration, playback rate and current time, read
// from the player at call time, to the surface. Surfaces without
// position support make this a silent no-op. There is no smoothing or
// periodic re-reporting; every report is event-triggered.
func (s *Session) ReportPosition() {
	if s.pos == nil {
		return
	}
	snap := domain.PositionSnapshot{
		Duration:     s.player.Duration(),
		PlaybackRate: s.player.PlaybackRate(),
		Position:     s.player.CurrentTime(),
	}
	if err := s.pos.SetPositionState(snap); err != nil {
		s.logger.Debug("position report failed", zap.Error(err))
	}
}

// activeMedia returns a copy of whichever media description is
// available: the currently-indexed playlist entry when the capability
// is present, the player's own description otherwise.
func (s *Session) activeMedia() *domain.ActiveMedia {
	if s.playlist != nil {
		if m := s.playlist.Current(); m != nil {
			return m.Copy()
		}
		return nil
	}
	return s.player.ActiveMedia().Copy()
}

// poster prefers the description's own poster URL over the player-wide one
func (s *Session) poster(media *domain.ActiveMedia) string {
	if media.Poster != "" {
		return media.Poster
	}
	return s.player.Poster()
}

// artworkFor derives the artwork list through a three-tier fallback,
// first match wins: an explicit artwork list is used verbatim; otherwise
// thumbnails are mapped entry-by-entry; otherwise a poster yields a
// single entry. Absence of all three yields no artwork, which is not an
// error.
func artworkFor(media *domain.ActiveMedia, poster string) []domain.Artwork {
	if len(media.Artwork) > 0 {
		return media.Artwork
	}
	if len(media.Thumbnails) > 0 {
		artwork := make([]domain.Artwork, 0, len(media.Thumbnails))
		for _, th := range media.Thumbnails {
			src := th.Src
			if th.SrcSet != "" {
				src = th.SrcSet
			}
			typ := th.Type
			if typ == "" {
				typ = inferMIMEType(src)
			}
			artwork = append(artwork, domain.Artwork{Src: src, Type: typ})
		}
		return artwork
	}
	if poster != "" {
		return []domain.Artwork{{Src: poster, Type: inferMIMEType(poster)}}
	}
	return nil
}

// inferMIMEType derives an image MIME type from a URL's file extension.
// This is a direct template, not content sniffing: any unrecognized
// extension x produces "image/x" unchanged.
func inferMIMEType(url string) string {
	ext := url
	if i := strings.LastIndex(url, "."); i >= 0 {
		ext = url[i+1:]
	}
	switch ext {
	case "jpg":
		return "image/jpeg"
	case "svg":
		return "image/svg+xml"
	default:
		return "image/" + ext
	}
}
