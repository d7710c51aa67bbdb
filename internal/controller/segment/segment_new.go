// =================================================================================
// This is auto-generated by GoFrame CLI tool only once. Fill this file as you wish.
// =================================================================================

package segment

import (
	"transcription-hub/api/segment"
	"transcription-hub/internal/service/lifecycle"
	"transcription-hub/internal/service/taskquery"
)

type ControllerV1 struct {
	lifecycle *lifecycle.Service
	query     *taskquery.Engine
}

func NewV1(lc *lifecycle.Service, query *taskquery.Engine) segment.ISegmentV1 {
	return &ControllerV1{lifecycle: lc, query: query}
}
