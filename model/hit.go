package model

// Sound identifies the hit sound a playback backend should trigger.
type Sound uint8

const (
	SoundTap         Sound = 0
	SoundFlick       Sound = 1
	SoundSlide       Sound = 2
	SoundRotateLeft  Sound = 3 // negative delta
	SoundRotateRight Sound = 4
	SoundCatch       Sound = 5
)

// NumSounds is the number of distinct sound ids.
const NumSounds = 6

// HitEvent is a scheduled hit-sound trigger. Tick marks a synthesized slide
// subdivision rather than a note head.
type HitEvent struct {
	Time      float64 `csv:"time" json:"time"`
	Sound     Sound   `csv:"sound" json:"sound"`
	Tick      bool    `csv:"tick" json:"tick"`
	Triggered bool    `csv:"triggered" json:"triggered"`
}

// TimeKey implements timeline.Timed.
func (e HitEvent) TimeKey() float64 { return e.Time }
