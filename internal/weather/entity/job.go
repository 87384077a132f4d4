package entity

type JobMeta struct {
	ID        string
	Source    JobSource
	File      string // path relative to the data dir, empty for uploads
	Bytes     int64
	Status    JobStatus
	Err       string
	ErrCode   string
	CreatedAt int64
	StartedAt int64
	EndedAt   int64

	Workers  int
	Stations int
}

// Station is one row of a finished job. Temperatures are in tenths.
type Station struct {
	Name  string
	Min   int64
	Mean  int64
	Max   int64
	Sum   int64
	Count uint64
}

type JobFinishedEvent struct {
	EventID string
	JobID   string
	Status  JobStatus
	Report  string
}
