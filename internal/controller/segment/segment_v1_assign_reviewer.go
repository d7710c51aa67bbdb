package segment

import (
	"context"

	"transcription-hub/api/segment/v1"
	"transcription-hub/internal/middlewares"
)

func (c *ControllerV1) AssignReviewer(ctx context.Context, req *v1.AssignReviewerReq) (res *v1.AssignReviewerRes, err error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	result, err := c.lifecycle.AssignReviewer(ctx, user.Id, req.SegmentIds, req.ReviewerId)
	if err != nil {
		return nil, err
	}
	return &v1.AssignReviewerRes{BatchResult: result}, nil
}
