package user

import (
	"context"

	"transcription-hub/api/user/v1"
	"transcription-hub/internal/middlewares"
)

func (c *ControllerV1) Me(ctx context.Context, req *v1.MeReq) (res *v1.MeRes, err error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return &v1.MeRes{User: user}, nil
}
