package model

import "transcription-hub/internal/model/entity"

type SubmitInput struct {
	SegmentId   int64
	Text        string
	Notes       string
	SubmitterId int64
}

type ReviewInput struct {
	SegmentId  int64
	Decision   string
	Rating     int
	Notes      string
	ReviewerId int64
}

// BatchFailure 批量操作中单个失败条目及原因。
type BatchFailure struct {
	Id     int64  `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult 非原子批量操作的结果，成功的部分不回滚。
type BatchResult struct {
	Succeeded []int64        `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

func (r *BatchResult) Fail(id int64, err error) {
	r.Failed = append(r.Failed, BatchFailure{Id: id, Reason: err.Error()})
}

// SegmentDetail 片段及其转写（可能为空）。
type SegmentDetail struct {
	Segment       *entity.AudioSegment  `json:"segment"`
	Transcription *entity.Transcription `json:"transcription"`
}
