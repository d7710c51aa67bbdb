package segment

import (
	"context"

	"transcription-hub/api/segment/v1"
	"transcription-hub/internal/middlewares"
	"transcription-hub/internal/model"
)

func (c *ControllerV1) Submit(ctx context.Context, req *v1.SubmitReq) (res *v1.SubmitRes, err error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	t, err := c.lifecycle.Submit(ctx, model.SubmitInput{
		SegmentId:   req.Id,
		Text:        req.Text,
		Notes:       req.Notes,
		SubmitterId: user.Id,
	})
	if err != nil {
		return nil, err
	}
	return &v1.SubmitRes{Transcription: t}, nil
}
