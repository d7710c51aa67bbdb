package export

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"

	"transcription-hub/api/export/v1"
	"transcription-hub/internal/consts"
	"transcription-hub/internal/middlewares"
)

// Verified 导出已审核通过的转写，需要审核人或管理员
func (c *ControllerV1) Verified(ctx context.Context, req *v1.VerifiedReq) (res *v1.VerifiedRes, err error) {
	user, err := middlewares.RequireRole(ctx, consts.RoleReviewer, consts.RoleAdmin)
	if err != nil {
		return nil, err
	}
	rows, err := c.exporter.VerifiedTranscriptions(ctx, req.From, req.To)
	if err != nil {
		return nil, err
	}
	g.Log().Infof(ctx, "user %d exported %d verified transcriptions", user.Id, len(rows))
	return &v1.VerifiedRes{Total: len(rows), Transcriptions: rows}, nil
}
