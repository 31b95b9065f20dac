package domain

import "time"

// PlayerStatus represents the current state of the media player
type PlayerStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlayerStatus = "Playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlayerStatus = "Paused"
	// StatusStopped indicates the media is stopped
	StatusStopped PlayerStatus = "Stopped"
)

// Thumbnail is one candidate image attached to a playable item.
// SrcSet, when present, takes precedence over Src.
type Thumbnail struct {
	// Src is the plain image URL
	Src string
	// SrcSet is an optional responsive source set
	SrcSet string
	// Type is the declared MIME type, may be empty
	Type string
}

// Artwork is a single OS-facing artwork entry
type Artwork struct {
	Src  string
	Type string
}

// ActiveMedia describes the currently loaded playable item.
// It is produced by the player or playlist collaborator and is
// read-only to the session core.
type ActiveMedia struct {
	// Name is the display title
	Name string
	// Src is the source URL of the item
	Src string
	// Thumbnails holds candidate images, may be empty
	Thumbnails []Thumbnail
	// Artwork is an optional pre-built artwork list; when present it is
	// used verbatim and the thumbnails are ignored
	Artwork []Artwork
	// Poster is an optional poster image URL
	Poster string
}

// Copy returns an independent copy of the media description so the
// collaborator's original is never shared or mutated.
func (m *ActiveMedia) Copy() *ActiveMedia {
	if m == nil {
		return nil
	}
	cp := *m
	if m.Thumbnails != nil {
		cp.Thumbnails = append([]Thumbnail(nil), m.Thumbnails...)
	}
	if m.Artwork != nil {
		cp.Artwork = append([]Artwork(nil), m.Artwork...)
	}
	return &cp
}

// MediaMetadataSnapshot is the OS-facing metadata value, rebuilt from
// scratch on every media load event.
type MediaMetadataSnapshot struct {
	// Title of the current item
	Title string
	// Src is the player's resolved source URL
	Src string
	// Artwork is non-empty only when the active media supplied an
	// artwork list, thumbnails or a poster
	Artwork []Artwork
}

// PositionSnapshot is an instantaneous duration/rate/position report.
// It is recomputed for every reporting call and never cached.
type PositionSnapshot struct {
	Duration     time.Duration
	PlaybackRate float64
	Position     time.Duration
}
