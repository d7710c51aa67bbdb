package segment

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"

	"transcription-hub/api/segment/v1"
	"transcription-hub/internal/consts"
	"transcription-hub/internal/middlewares"
)

// Available 待分配队列，最早创建的片段排在最前
func (c *ControllerV1) Available(ctx context.Context, req *v1.AvailableReq) (res *v1.AvailableRes, err error) {
	if _, err = middlewares.RequireUser(ctx); err != nil {
		return nil, err
	}
	segments, err := c.query.AvailableSegments(ctx)
	if err != nil {
		return nil, gerror.WrapCode(consts.CodeDbOperationError, err, "查询待分配片段失败")
	}
	return &v1.AvailableRes{Segments: segments}, nil
}
