package task

import (
	"context"

	"transcription-hub/api/task/v1"
	"transcription-hub/internal/middlewares"
)

func (c *ControllerV1) Summary(ctx context.Context, req *v1.SummaryReq) (res *v1.SummaryRes, err error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := c.query.TaskSummary(ctx, user.Id)
	if err != nil {
		return nil, err
	}
	return &v1.SummaryRes{TaskSummary: summary}, nil
}
