package user

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"

	"transcription-hub/api/user/v1"
	"transcription-hub/internal/consts"
	"transcription-hub/internal/middlewares"
)

func (c *ControllerV1) List(ctx context.Context, req *v1.ListReq) (res *v1.ListRes, err error) {
	if _, err = middlewares.RequireRole(ctx, consts.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := c.store.ListUsers(ctx)
	if err != nil {
		return nil, gerror.WrapCode(consts.CodeDbOperationError, err, "查询用户失败")
	}
	return &v1.ListRes{Users: users}, nil
}
