package entity

type JobStatus string

const (
	JobStatusQueued     JobStatus = "QUEUED"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusDone       JobStatus = "DONE"
	JobStatusFailed     JobStatus = "FAILED"
)

// Finished reports whether the job reached a terminal status.
func (s JobStatus) Finished() bool {
	return s == JobStatusDone || s == JobStatusFailed
}

type JobSource string

const (
	JobSourceFile   JobSource = "FILE"
	JobSourceUpload JobSource = "UPLOAD"
)
