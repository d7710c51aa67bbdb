package segment

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"

	"transcription-hub/api/segment/v1"
	"transcription-hub/internal/consts"
	"transcription-hub/internal/middlewares"
	"transcription-hub/internal/model"
	"transcription-hub/internal/service/taskquery"
)

func (c *ControllerV1) Get(ctx context.Context, req *v1.GetReq) (res *v1.GetRes, err error) {
	detail, err := c.visibleDetail(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &v1.GetRes{SegmentDetail: detail}, nil
}

// visibleDetail 读取片段详情，待分配的片段所有人可见，其余按参与关系判断
func (c *ControllerV1) visibleDetail(ctx context.Context, id int64) (*model.SegmentDetail, error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	detail, err := c.lifecycle.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.Segment.Status != consts.SegmentStatusAvailable && !taskquery.CanSee(user, detail.Segment) {
		return nil, gerror.NewCodef(consts.CodeNotAuthorized, "无权查看片段 %d", id)
	}
	return detail, nil
}
