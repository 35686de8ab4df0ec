package media

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
)

const (
	// MaxInputTextLength mirrors the provider's per-scene script limit.
	MaxInputTextLength = 5000
	// DefaultWidth and DefaultHeight apply when the caller omits a dimension;
	// the provider rejects a missing dimension on some endpoints.
	DefaultWidth  = 360
	DefaultHeight = 640
	// DefaultBackgroundColor matches what the front end has always rendered.
	DefaultBackgroundColor = "#FFFFFF"
	// DefaultTitle labels jobs submitted without a title.
	DefaultTitle = "Generated Video"
)

// Background selects exactly one of a solid color, an image or a video.
type Background struct {
	Color    string `json:"color,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// Dimension is the output resolution in pixels.
type Dimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GenerationRequest is the provider-neutral description of a video job.
type GenerationRequest struct {
	AvatarID   string      `json:"avatarId"`
	VoiceID    string      `json:"voiceId"`
	Text       string      `json:"text"`
	Locale     string      `json:"locale,omitempty"`
	Background *Background `json:"background,omitempty"`
	Dimension  *Dimension  `json:"dimension,omitempty"`
	Title      string      `json:"title,omitempty"`
}

// Normalize trims identifiers and fills server defaults. It never makes an
// invalid request valid; call Validate afterwards.
func (r *GenerationRequest) Normalize() {
	if r == nil {
		return
	}
	r.AvatarID = strings.TrimSpace(r.AvatarID)
	r.VoiceID = strings.TrimSpace(r.VoiceID)
	r.Text = strings.TrimSpace(r.Text)
	r.Locale = strings.TrimSpace(r.Locale)
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		r.Title = DefaultTitle
	}
	if r.Background != nil {
		r.Background.Color = strings.TrimSpace(r.Background.Color)
		r.Background.ImageURL = strings.TrimSpace(r.Background.ImageURL)
		r.Background.VideoURL = strings.TrimSpace(r.Background.VideoURL)
	} else {
		r.Background = &Background{Color: DefaultBackgroundColor}
	}
	if r.Dimension == nil {
		r.Dimension = &Dimension{Width: DefaultWidth, Height: DefaultHeight}
	}
}

// Validate checks the invariants that can be decided without the provider.
func (r *GenerationRequest) Validate() error {
	if r == nil {
		return Validation("generation request is required")
	}
	switch {
	case r.AvatarID == "" && r.VoiceID == "":
		return Validation("avatarId and voiceId are required")
	case r.AvatarID == "":
		return Validation("avatarId is required")
	case r.VoiceID == "":
		return Validation("voiceId is required")
	}
	if r.Text == "" {
		return Validation("text is required")
	}
	if n := utf8.RuneCountInString(r.Text); n > MaxInputTextLength {
		return Validation("text exceeds %d characters (got %d)", MaxInputTextLength, n)
	}
	if r.Locale != "" {
		if _, err := language.Parse(r.Locale); err != nil {
			return Validation("locale %q is not a valid language tag", r.Locale)
		}
	}
	if err := r.Background.validate(); err != nil {
		return err
	}
	if d := r.Dimension; d != nil && (d.Width <= 0 || d.Height <= 0) {
		return Validation("dimension width and height must be positive")
	}
	return nil
}

func (b *Background) validate() error {
	if b == nil {
		return nil
	}
	set := 0
	for _, v := range []string{b.Color, b.ImageURL, b.VideoURL} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return Validation("background must set exactly one of color, imageUrl or videoUrl")
	}
	return nil
}
