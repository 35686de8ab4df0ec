package heygen

import (
	"context"
	"net/url"
	"strings"

	"gateway/internal/domain/media"
)

// Poller reads a job's current state. It performs exactly one upstream read
// per call; polling cadence belongs to the caller.
type Poller struct {
	client *Client
}

func NewPoller(client *Client) *Poller {
	return &Poller{client: client}
}

var statusVocabulary = map[string]media.JobState{
	"pending":     media.JobSubmitted,
	"waiting":     media.JobSubmitted,
	"queued":      media.JobSubmitted,
	"submitted":   media.JobSubmitted,
	"processing":  media.JobProcessing,
	"rendering":   media.JobProcessing,
	"running":     media.JobProcessing,
	"in_progress": media.JobProcessing,
	"completed":   media.JobCompleted,
	"complete":    media.JobCompleted,
	"success":     media.JobCompleted,
	"succeeded":   media.JobCompleted,
	"done":        media.JobCompleted,
	"failed":      media.JobFailed,
	"failure":     media.JobFailed,
	"error":       media.JobFailed,
	"cancelled":   media.JobFailed,
	"canceled":    media.JobFailed,
}

// MapStatus folds a provider status into the four-state model. Unknown
// values map to Processing and report ok=false.
func MapStatus(status string) (state media.JobState, ok bool) {
	key := strings.ToLower(strings.TrimSpace(status))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	if state, ok := statusVocabulary[key]; ok {
		return state, true
	}
	return media.JobProcessing, false
}

// Poll returns the job's state as the provider reports it now.
func (p *Poller) Poll(ctx context.Context, jobID string) (*media.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, media.Validation("job id is required")
	}
	resp, err := p.client.Do(ctx, Call{
		Op:    OpVideoStatus,
		Query: url.Values{"video_id": {jobID}},
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, p.client.Reject(OpVideoStatus, resp)
	}
	detail := Object(resp.Body)
	raw := String(detail, "status")
	state, known := MapStatus(raw)
	if !known {
		p.client.Logger().Warn().
			Str("job_id", jobID).
			Str("status", raw).
			Msg("heygen: unknown video status, treating as processing")
	}
	job := &media.Job{
		ID:           jobID,
		State:        state,
		ThumbnailURL: String(detail, "thumbnail_url"),
		Duration:     Float(detail, "duration"),
	}
	switch state {
	case media.JobCompleted:
		job.ResultURL = String(detail, "video_url", "url")
		if job.ResultURL == "" {
			p.client.Logger().Error().
				Str("job_id", jobID).
				Msg("heygen: job completed without a video url")
			return nil, media.Inconsistent("job %s completed without a result url", jobID)
		}
	case media.JobFailed:
		job.Error = p.client.binder.Redact(errorField(detail["error"]))
		if job.Error == "" {
			job.Error = "generation failed"
		}
	}
	return job, nil
}
