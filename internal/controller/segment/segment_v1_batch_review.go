package segment

import (
	"context"

	"transcription-hub/api/segment/v1"
	"transcription-hub/internal/middlewares"
)

// BatchReview 逐个审核，单个失败记录原因后继续
func (c *ControllerV1) BatchReview(ctx context.Context, req *v1.BatchReviewReq) (res *v1.BatchReviewRes, err error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	result, err := c.lifecycle.BatchReview(ctx, user.Id, req.SegmentIds, req.Decision, req.Notes)
	if err != nil {
		return nil, err
	}
	return &v1.BatchReviewRes{
		Succeeded:    len(result.Succeeded),
		SucceededIds: result.Succeeded,
		Failed:       result.Failed,
	}, nil
}
