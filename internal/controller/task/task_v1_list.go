package task

import (
	"context"

	"transcription-hub/api/task/v1"
	"transcription-hub/internal/middlewares"
)

func (c *ControllerV1) List(ctx context.Context, req *v1.ListReq) (res *v1.ListRes, err error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := c.query.TasksFor(ctx, user.Id, req.Filter)
	if err != nil {
		return nil, err
	}
	return &v1.ListRes{Tasks: tasks}, nil
}
