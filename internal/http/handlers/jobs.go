package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"gateway/internal/domain/media"
)

// maxJobBodyBytes bounds a submission body; scripts are capped well below it.
const maxJobBodyBytes = 1 << 20

type submitJobResponse struct {
	JobID string `json:"jobId"`
}

// SubmitJob validates the body against the request schema, then hands it to
// the job service. The provider call happens at most once.
func (a *App) SubmitJob(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJobBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.fail(w, r, media.Validation("request body exceeds %d bytes", maxJobBodyBytes))
			return
		}
		a.fail(w, r, media.Validation("could not read request body"))
		return
	}
	if err := validateGenerationRequest(raw); err != nil {
		a.fail(w, r, err)
		return
	}
	var req media.GenerationRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		a.fail(w, r, media.Validation("invalid payload"))
		return
	}
	job, err := a.Jobs.Submit(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, submitJobResponse{JobID: job.ID})
}

// JobStatus performs one provider read and returns the job snapshot.
func (a *App) JobStatus(w http.ResponseWriter, r *http.Request) {
	job, err := a.Poller.Poll(r.Context(), pathParam(r, "jobId"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, job)
}
