package v1

import (
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gtime"

	"transcription-hub/internal/model"
)

type VerifiedReq struct {
	g.Meta `path:"/verified" method:"get" summary:"导出已通过的转写" dc:"按转写更新时间过滤，需要审核人或管理员"`
	From *gtime.Time `json:"from" dc:"起始时间（含）"`
	To   *gtime.Time `json:"to" dc:"结束时间（含）"`
}
type VerifiedRes struct {
	Total          int                             `json:"total"`
	Transcriptions []*model.FormattedTranscription `json:"transcriptions"`
}
