package heygen

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"gateway/internal/domain/media"
)

// Catalog reads avatars and voices straight through from the provider. Every
// call is fresh; nothing is cached.
type Catalog struct {
	client *Client
}

func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// ListAvatars returns the avatars usable for video generation.
func (c *Catalog) ListAvatars(ctx context.Context) ([]media.CatalogEntry, error) {
	items, err := c.fetch(ctx, Call{Op: OpListAvatars}, "avatars")
	if err != nil {
		return nil, err
	}
	return entries(media.EntryAvatar, items), nil
}

// ListStreamingAvatars returns the avatars usable in interactive streaming.
func (c *Catalog) ListStreamingAvatars(ctx context.Context) ([]media.CatalogEntry, error) {
	items, err := c.fetch(ctx, Call{Op: OpListStreamingAvatars}, "avatars")
	if err != nil {
		return nil, err
	}
	return entries(media.EntryStreamingAvatar, items), nil
}

// ListAvatarGroup returns the members of one avatar group.
func (c *Catalog) ListAvatarGroup(ctx context.Context, groupID string) ([]media.CatalogEntry, error) {
	if err := validateIdentifier("group id", groupID); err != nil {
		return nil, err
	}
	items, err := c.fetch(ctx, Call{Op: OpListAvatarGroup, ID: groupID}, "avatar_list")
	if err != nil {
		return nil, err
	}
	return entries(media.EntryAvatarGroupMember, items), nil
}

// ListVoices returns every voice, or when locale is set, only the voices
// that can speak it. A locale the workspace does not offer yields no voices.
func (c *Catalog) ListVoices(ctx context.Context, locale string) ([]media.CatalogEntry, error) {
	locale = strings.TrimSpace(locale)
	var tag language.Tag
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, media.Validation("locale %q is not a valid language tag", locale)
		}
		tag = parsed
		offered, err := c.ListVoiceLocales(ctx)
		if err != nil {
			return nil, err
		}
		if !containsLocale(offered, tag) {
			c.client.Logger().Warn().Str("locale", tag.String()).Msg("heygen: locale not enabled for workspace")
			return []media.CatalogEntry{}, nil
		}
	}
	items, err := c.fetch(ctx, Call{Op: OpListVoices}, "voices")
	if err != nil {
		return nil, err
	}
	if locale != "" {
		items = voicesFor(items, tag)
	}
	return entries(media.EntryVoice, items), nil
}

// ListVoiceLocales returns the locale tags the workspace may request.
func (c *Catalog) ListVoiceLocales(ctx context.Context) ([]string, error) {
	resp, err := c.client.Do(ctx, Call{Op: OpListVoiceLocales})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, c.client.Reject(OpListVoiceLocales, resp)
	}
	var raw []any
	switch p := Payload(resp.Body).(type) {
	case []any:
		raw = p
	case map[string]any:
		raw, _ = p["locales"].([]any)
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		switch l := v.(type) {
		case string:
			if l = strings.TrimSpace(l); l != "" {
				out = append(out, l)
			}
		case map[string]any:
			if s := String(l, "locale", "value", "code"); s != "" {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (c *Catalog) fetch(ctx context.Context, call Call, key string) ([]map[string]any, error) {
	resp, err := c.client.Do(ctx, call)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, c.client.Reject(call.Op, resp)
	}
	return Collection(resp.Body, key), nil
}

func containsLocale(offered []string, want language.Tag) bool {
	for _, l := range offered {
		if strings.EqualFold(l, want.String()) {
			return true
		}
		if tag, err := language.Parse(l); err == nil && tag == want {
			return true
		}
	}
	return false
}

// voicesFor keeps the voices that advertise locale support and whose language
// names tag's base language, e.g. "Portuguese" for pt-BR.
func voicesFor(items []map[string]any, tag language.Tag) []map[string]any {
	base, _ := tag.Base()
	name := strings.ToLower(display.English.Languages().Name(base))
	out := make([]map[string]any, 0, len(items))
	if name == "" {
		return out
	}
	for _, item := range items {
		if !Bool(item, "support_locale") {
			continue
		}
		if strings.Contains(strings.ToLower(String(item, "language")), name) {
			out = append(out, item)
		}
	}
	return out
}

func entries(kind media.EntryKind, items []map[string]any) []media.CatalogEntry {
	out := make([]media.CatalogEntry, 0, len(items))
	for _, item := range items {
		var id string
		if kind == media.EntryVoice {
			id = String(item, "voice_id", "id")
		} else {
			id = String(item, "avatar_id", "id", "talking_photo_id")
		}
		if id == "" {
			continue
		}
		out = append(out, media.CatalogEntry{
			Kind:            kind,
			ID:              id,
			Name:            String(item, "avatar_name", "name", "display_name", "pose_name", "talking_photo_name"),
			Gender:          String(item, "gender"),
			Language:        String(item, "language"),
			PreviewImageURL: String(item, "preview_image_url", "normal_preview", "image_url"),
			PreviewVideoURL: String(item, "preview_video_url"),
			Details:         item,
		})
	}
	return out
}

// validateIdentifier rejects identifiers that are blank or could not be a
// single path segment. Provider identifiers are otherwise opaque.
func validateIdentifier(what, id string) error {
	if strings.TrimSpace(id) == "" {
		return media.Validation("%s is required", what)
	}
	if id != strings.TrimSpace(id) || strings.ContainsAny(id, "/?#") {
		return media.Validation("%s %q is malformed", what, id)
	}
	return nil
}
