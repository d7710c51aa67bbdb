package v1

import (
	"github.com/gogf/gf/v2/frame/g"

	"transcription-hub/internal/model"
)

type ListReq struct {
	g.Meta `path:"/list" method:"get" summary:"我的任务" dc:"管理员不带过滤条件时返回全部片段"`
	Filter string `json:"filter" v:"in:assigned,review,completed" dc:"assigned / review / completed，为空返回全部相关片段"`
}
type ListRes struct {
	Tasks []*model.TranscriptionTask `json:"tasks"`
}

type SummaryReq struct {
	g.Meta `path:"/summary" method:"get" summary:"任务统计"`
}
type SummaryRes struct {
	*model.TaskSummary
}

type ActivityReq struct {
	g.Meta `path:"/activity" method:"get" summary:"最近动态"`
	Limit int `json:"limit" d:"10" v:"between:1,100"`
}
type ActivityRes struct {
	Events []*model.ActivityEvent `json:"events"`
}
