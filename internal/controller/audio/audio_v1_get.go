package audio

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"

	"transcription-hub/api/audio/v1"
	"transcription-hub/internal/consts"
	"transcription-hub/internal/middlewares"
	"transcription-hub/internal/model/entity"
)

func (c *ControllerV1) Get(ctx context.Context, req *v1.GetReq) (res *v1.GetRes, err error) {
	file, err := c.ownedFile(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &v1.GetRes{AudioFile: file}, nil
}

// ownedFile 读取文件并校验当前用户是上传者或管理员
func (c *ControllerV1) ownedFile(ctx context.Context, id int64) (*entity.AudioFile, error) {
	user, err := middlewares.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	file, err := c.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != consts.RoleAdmin && file.UploadedBy != user.Id {
		return nil, gerror.NewCodef(consts.CodeNotAuthorized, "无权访问音频文件 %d", id)
	}
	return file, nil
}
