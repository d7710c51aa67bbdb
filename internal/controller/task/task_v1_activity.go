package task

import (
	"context"

	"transcription-hub/api/task/v1"
	"transcription-hub/internal/middlewares"
)

func (c *ControllerV1) Activity(ctx context.Context, req *v1.ActivityReq) (res *v1.ActivityRes, err error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	events, err := c.query.RecentActivity(ctx, user.Id, req.Limit)
	if err != nil {
		return nil, err
	}
	return &v1.ActivityRes{Events: events}, nil
}
