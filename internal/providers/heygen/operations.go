package heygen

import "net/http"

// Operation describes one upstream endpoint. Path may contain a single %s,
// filled with a path-escaped identifier.
type Operation struct {
	Name   string
	Method string
	Path   string
	Scheme Scheme
}

var (
	OpListAvatars          = Operation{Name: "list_avatars", Method: http.MethodGet, Path: "/v2/avatars"}
	OpListStreamingAvatars = Operation{Name: "list_streaming_avatars", Method: http.MethodGet, Path: "/v1/streaming/avatar.list"}
	OpListAvatarGroup      = Operation{Name: "list_avatar_group", Method: http.MethodGet, Path: "/v2/avatar_group/%s/avatars"}
	OpListVoices           = Operation{Name: "list_voices", Method: http.MethodGet, Path: "/v2/voices"}
	OpListVoiceLocales     = Operation{Name: "list_voice_locales", Method: http.MethodGet, Path: "/v2/voices/locales"}

	// Token minting needs the raw key whatever the default scheme is.
	OpCreateStreamingToken  = Operation{Name: "create_streaming_token", Method: http.MethodPost, Path: "/v1/streaming.create_token", Scheme: SchemeAPIKey}
	OpListStreamingSessions = Operation{Name: "list_streaming_sessions", Method: http.MethodGet, Path: "/v1/streaming.list"}
	OpStopStreamingSession  = Operation{Name: "stop_streaming_session", Method: http.MethodPost, Path: "/v1/streaming.stop"}
	OpGenerateVideo         = Operation{Name: "generate_video", Method: http.MethodPost, Path: "/v2/video/generate"}
	OpVideoStatus           = Operation{Name: "video_status", Method: http.MethodGet, Path: "/v1/video_status.get"}
)

// Operations lists every operation the gateway performs, keyed by name.
func Operations() map[string]Operation {
	ops := []Operation{
		OpListAvatars,
		OpListStreamingAvatars,
		OpListAvatarGroup,
		OpListVoices,
		OpListVoiceLocales,
		OpCreateStreamingToken,
		OpListStreamingSessions,
		OpStopStreamingSession,
		OpGenerateVideo,
		OpVideoStatus,
	}
	out := make(map[string]Operation, len(ops))
	for _, op := range ops {
		out[op.Name] = op
	}
	return out
}
