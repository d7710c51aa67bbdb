package v1

import (
	"github.com/gogf/gf/v2/frame/g"

	"transcription-hub/internal/model"
	"transcription-hub/internal/model/entity"
)

type AvailableReq struct {
	g.Meta `path:"/available" method:"get" summary:"待分配片段" dc:"最早创建的在前"`
}
type AvailableRes struct {
	Segments []*entity.AudioSegment `json:"segments"`
}

type GetReq struct {
	g.Meta `path:"/{id}" method:"get" summary:"片段详情"`
	Id int64 `json:"id" in:"path" v:"required|min:1"`
}
type GetRes struct {
	*model.SegmentDetail
}

type HistoryReq struct {
	g.Meta `path:"/{id}/history" method:"get" summary:"片段状态流转记录"`
	Id int64 `json:"id" in:"path" v:"required|min:1"`
}
type HistoryRes struct {
	Transitions []*entity.SegmentTransition `json:"transitions"`
}

type AssignReq struct {
	g.Meta     `path:"/assign" method:"post" summary:"分配片段" dc:"逐个校验，部分成功"`
	SegmentIds []int64 `json:"segmentIds" v:"required|min-length:1" dc:"片段 ID 列表"`
	UserId     int64   `json:"userId" v:"required|min:1" dc:"被分配的用户"`
}
type AssignRes struct {
	*model.BatchResult
}

type AssignReviewerReq struct {
	g.Meta     `path:"/assign-reviewer" method:"post" summary:"指定审核人" dc:"只对 transcribed 片段生效，不改变状态"`
	SegmentIds []int64 `json:"segmentIds" v:"required|min-length:1"`
	ReviewerId int64   `json:"reviewerId" v:"required|min:1"`
}
type AssignReviewerRes struct {
	*model.BatchResult
}

type SubmitReq struct {
	g.Meta `path:"/{id}/transcription" method:"post" summary:"提交转写" dc:"重复提交会覆盖原转写"`
	Id    int64  `json:"id" in:"path" v:"required|min:1"`
	Text  string `json:"text" v:"required" dc:"转写文本"`
	Notes string `json:"notes" dc:"备注"`
}
type SubmitRes struct {
	*entity.Transcription
}

type ReviewReq struct {
	g.Meta   `path:"/{id}/review" method:"post" summary:"审核转写"`
	Id       int64  `json:"id" in:"path" v:"required|min:1"`
	Decision string `json:"decision" v:"required|in:approve,reject" dc:"approve 或 reject"`
	Rating   int    `json:"rating" dc:"1-5 星，通过时必填"`
	Notes    string `json:"notes" dc:"审核意见，驳回时必填"`
}
type ReviewRes struct {
	*entity.Transcription
}

type BatchReviewReq struct {
	g.Meta     `path:"/review/batch" method:"post" summary:"批量审核" dc:"逐个校验，部分成功。批量通过使用默认评分"`
	SegmentIds []int64 `json:"segmentIds" v:"required|min-length:1"`
	Decision   string  `json:"decision" v:"required|in:approve,reject"`
	Notes      string  `json:"notes" dc:"驳回时必填"`
}
type BatchReviewRes struct {
	Succeeded    int                  `json:"succeeded" dc:"成功数量"`
	SucceededIds []int64              `json:"succeededIds"`
	Failed       []model.BatchFailure `json:"failed"`
}
