package model

// 以下 Update 结构列出操作允许修改的字段，nil 指针或空 Status 表示不修改。

type AudioFileUpdate struct {
	Status       string
	ProcessedDir *string
	SegmentCount *int
	Duration     *float64
	ErrorMessage *string
}

type SegmentUpdate struct {
	Status        string
	AssignedTo    *int64
	TranscribedBy *int64
	ReviewedBy    *int64
}

type TranscriptionUpdate struct {
	Text        *string
	Notes       *string
	Status      string
	Rating      *int
	ReviewNotes *string
	ReviewedBy  *int64
}
