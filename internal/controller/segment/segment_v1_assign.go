package segment

import (
	"context"

	"transcription-hub/api/segment/v1"
	"transcription-hub/internal/middlewares"
)

// Assign 批量分配，权限由生命周期服务校验
func (c *ControllerV1) Assign(ctx context.Context, req *v1.AssignReq) (res *v1.AssignRes, err error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	result, err := c.lifecycle.BulkAssign(ctx, user.Id, req.SegmentIds, req.UserId)
	if err != nil {
		return nil, err
	}
	return &v1.AssignRes{BatchResult: result}, nil
}
