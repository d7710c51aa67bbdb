package audio

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"

	"transcription-hub/api/audio/v1"
	"transcription-hub/internal/consts"
	"transcription-hub/internal/middlewares"
	"transcription-hub/internal/model"
)

func (c *ControllerV1) List(ctx context.Context, req *v1.ListReq) (res *v1.ListRes, err error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	q := model.AudioFileQuery{Status: req.Status}
	// 非管理员只能看到自己上传的文件
	if req.Mine || user.Role != consts.RoleAdmin {
		q.UploadedBy = user.Id
	}
	files, err := c.svc.List(ctx, q)
	if err != nil {
		return nil, gerror.WrapCode(consts.CodeDbOperationError, err, "查询音频列表失败")
	}
	return &v1.ListRes{Files: files}, nil
}
