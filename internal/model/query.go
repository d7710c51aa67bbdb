package model

import "github.com/gogf/gf/v2/os/gtime"

// SegmentQuery 片段查询条件，零值忽略，结果按创建时间正序。
type SegmentQuery struct {
	AudioFileId   int64
	Statuses      []string
	AssignedTo    int64
	TranscribedBy int64
	ReviewedBy    int64
	// Involving 匹配用户作为分配对象、转写人或审核人的片段
	Involving int64
}

// TranscriptionQuery 转写查询条件，结果按 id 排序。
type TranscriptionQuery struct {
	Status      string
	Involving   int64
	UpdatedFrom *gtime.Time
	UpdatedTo   *gtime.Time
}

type AudioFileQuery struct {
	Status     string
	UploadedBy int64
}
