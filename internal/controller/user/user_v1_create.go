package user

import (
	"context"
	"strings"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"

	"transcription-hub/api/user/v1"
	"transcription-hub/internal/consts"
	"transcription-hub/internal/middlewares"
	"transcription-hub/internal/model/entity"
)

// Create 登记用户，用户名唯一
func (c *ControllerV1) Create(ctx context.Context, req *v1.CreateReq) (res *v1.CreateRes, err error) {
	admin, err := middlewares.RequireRole(ctx, consts.RoleAdmin)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)
	users, err := c.store.ListUsers(ctx)
	if err != nil {
		return nil, gerror.WrapCode(consts.CodeDbOperationError, err, "查询用户失败")
	}
	for _, u := range users {
		if u.Username == username {
			return nil, gerror.NewCodef(consts.CodePreconditionFailed, "用户名 %s 已存在", username)
		}
	}
	id, err := c.store.CreateUser(ctx, &entity.User{
		Username: username,
		Role:     req.Role,
		FullName: strings.TrimSpace(req.FullName),
	})
	if err != nil {
		return nil, gerror.WrapCode(consts.CodeDbOperationError, err, "创建用户失败")
	}
	created, err := c.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Log().Infof(ctx, "user %d (%s, %s) created by admin %d", id, username, req.Role, admin.Id)
	return &v1.CreateRes{User: created}, nil
}
