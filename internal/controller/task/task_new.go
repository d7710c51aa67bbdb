// =================================================================================
// This is auto-generated by GoFrame CLI tool only once. Fill this file as you wish.
// =================================================================================

package task

import (
	"transcription-hub/api/task"
	"transcription-hub/internal/service/taskquery"
)

type ControllerV1 struct {
	query *taskquery.Engine
}

func NewV1(query *taskquery.Engine) task.ITaskV1 {
	return &ControllerV1{query: query}
}
