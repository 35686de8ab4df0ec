package heygen

import (
	"context"

	"gateway/internal/domain/media"
)

// Jobs submits video generation jobs. Submission is never retried: the
// provider has no idempotency key, so a blind retry may bill a second job.
type Jobs struct {
	client *Client
}

func NewJobs(client *Client) *Jobs {
	return &Jobs{client: client}
}

type videoGenerateRequest struct {
	VideoInputs []videoInput   `json:"video_inputs"`
	Dimension   videoDimension `json:"dimension"`
	Title       string         `json:"title,omitempty"`
}

type videoInput struct {
	Character  videoCharacter   `json:"character"`
	Voice      videoVoice       `json:"voice"`
	Background *videoBackground `json:"background,omitempty"`
}

type videoCharacter struct {
	Type        string `json:"type"`
	AvatarID    string `json:"avatar_id"`
	AvatarStyle string `json:"avatar_style"`
}

type videoVoice struct {
	Type      string `json:"type"`
	InputText string `json:"input_text"`
	VoiceID   string `json:"voice_id"`
	Locale    string `json:"locale,omitempty"`
}

type videoBackground struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	URL   string `json:"url,omitempty"`
}

type videoDimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Submit validates req, sends it once and returns the job in the Submitted
// state. Validation failures never reach the network.
func (j *Jobs) Submit(ctx context.Context, req media.GenerationRequest) (*media.Job, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := j.client.Do(ctx, Call{Op: OpGenerateVideo, Body: buildVideoPayload(req)})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, j.client.Reject(OpGenerateVideo, resp)
	}
	id := String(Object(resp.Body), "video_id", "id")
	if id == "" {
		return nil, media.Inconsistent("provider accepted the job without a video_id")
	}
	j.client.Logger().Info().
		Str("job_id", id).
		Str("avatar_id", req.AvatarID).
		Msg("heygen: video job submitted")
	return &media.Job{ID: id, State: media.JobSubmitted}, nil
}

// buildVideoPayload expects a normalized request.
func buildVideoPayload(req media.GenerationRequest) videoGenerateRequest {
	input := videoInput{
		Character: videoCharacter{
			Type:        "avatar",
			AvatarID:    req.AvatarID,
			AvatarStyle: "normal",
		},
		Voice: videoVoice{
			Type:      "text",
			InputText: req.Text,
			VoiceID:   req.VoiceID,
			Locale:    req.Locale,
		},
		Background: backgroundPayload(req.Background),
	}
	dim := videoDimension{Width: media.DefaultWidth, Height: media.DefaultHeight}
	if req.Dimension != nil {
		dim = videoDimension{Width: req.Dimension.Width, Height: req.Dimension.Height}
	}
	return videoGenerateRequest{
		VideoInputs: []videoInput{input},
		Dimension:   dim,
		Title:       req.Title,
	}
}

func backgroundPayload(bg *media.Background) *videoBackground {
	switch {
	case bg == nil:
		return nil
	case bg.Color != "":
		return &videoBackground{Type: "color", Value: bg.Color}
	case bg.ImageURL != "":
		return &videoBackground{Type: "image", URL: bg.ImageURL}
	case bg.VideoURL != "":
		return &videoBackground{Type: "video", URL: bg.VideoURL}
	}
	return nil
}
