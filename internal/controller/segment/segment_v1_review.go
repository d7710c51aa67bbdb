package segment

import (
	"context"

	"transcription-hub/api/segment/v1"
	"transcription-hub/internal/middlewares"
	"transcription-hub/internal/model"
)

func (c *ControllerV1) Review(ctx context.Context, req *v1.ReviewReq) (res *v1.ReviewRes, err error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	t, err := c.lifecycle.Review(ctx, model.ReviewInput{
		SegmentId:  req.Id,
		Decision:   req.Decision,
		Rating:     req.Rating,
		Notes:      req.Notes,
		ReviewerId: user.Id,
	})
	if err != nil {
		return nil, err
	}
	return &v1.ReviewRes{Transcription: t}, nil
}
