package model

import (
	"github.com/gogf/gf/v2/os/gtime"

	"transcription-hub/internal/model/entity"
)

// TranscriptionTask 任务列表中的一行。
type TranscriptionTask struct {
	Segment       *entity.AudioSegment  `json:"segment"`
	Transcription *entity.Transcription `json:"transcription,omitempty"`
	Filename      string                `json:"filename"`
	DueDate       *gtime.Time           `json:"dueDate"`
}

type TaskSummary struct {
	Assigned      int `json:"assigned"`
	PendingReview int `json:"pendingReview"`
	Completed     int `json:"completed"`
}

// ActivityEvent 由记录推导出的动态，不落库。
type ActivityEvent struct {
	Kind      string      `json:"kind"` // segment 或 transcription
	Id        int64       `json:"id"`
	SegmentId int64       `json:"segmentId"`
	Type      string      `json:"type"`
	Status    string      `json:"status"`
	UpdatedAt *gtime.Time `json:"updatedAt"`
}

// FormattedTranscription 已通过转写的导出行。
type FormattedTranscription struct {
	SegmentId     int64       `json:"segmentId"`
	AudioFileId   int64       `json:"audioFileId"`
	Filename      string      `json:"filename"`
	SegmentPath   string      `json:"segmentPath"`
	StartTime     float64     `json:"startTime"`
	EndTime       float64     `json:"endTime"`
	Duration      float64     `json:"duration"`
	Text          string      `json:"text"`
	Notes         string      `json:"notes"`
	Rating        int         `json:"rating"`
	TranscribedBy int64       `json:"transcribedBy"`
	ReviewedBy    int64       `json:"reviewedBy"`
	UpdatedAt     *gtime.Time `json:"updatedAt"`
}
