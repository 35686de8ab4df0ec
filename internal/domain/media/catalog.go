package media

// EntryKind tags which catalog a CatalogEntry came from.
type EntryKind string

const (
	EntryAvatar            EntryKind = "avatar"
	EntryVoice             EntryKind = "voice"
	EntryAvatarGroupMember EntryKind = "avatar_group_member"
	EntryStreamingAvatar   EntryKind = "streaming_avatar"
)

// CatalogEntry is one avatar, voice or group member as offered by the provider.
// Details keeps the untouched provider item so the front end does not lose
// fields this gateway does not model.
type CatalogEntry struct {
	Kind            EntryKind      `json:"kind"`
	ID              string         `json:"id"`
	Name            string         `json:"name,omitempty"`
	Gender          string         `json:"gender,omitempty"`
	Language        string         `json:"language,omitempty"`
	PreviewImageURL string         `json:"previewImageUrl,omitempty"`
	PreviewVideoURL string         `json:"previewVideoUrl,omitempty"`
	Details         map[string]any `json:"details,omitempty"`
}
