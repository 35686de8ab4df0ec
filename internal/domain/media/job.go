package media

// JobState is the fixed lifecycle every provider vocabulary is folded into.
type JobState string

const (
	JobSubmitted  JobState = "Submitted"
	JobProcessing JobState = "Processing"
	JobCompleted  JobState = "Completed"
	JobFailed     JobState = "Failed"
)

// Job is a snapshot of an asynchronous generation task owned by the provider.
type Job struct {
	ID           string   `json:"jobId"`
	State        JobState `json:"state"`
	ResultURL    string   `json:"resultUrl,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Duration     float64  `json:"duration,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Terminal reports whether the job will not change state anymore.
func (j *Job) Terminal() bool {
	return j.State == JobCompleted || j.State == JobFailed
}
