package audio

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"

	"transcription-hub/api/audio/v1"
	"transcription-hub/internal/consts"
	"transcription-hub/internal/middlewares"
	audioSvc "transcription-hub/internal/service/audio"
)

// Upload 上传音频（支持单文件和多文件），每个文件独立入队切分
func (c *ControllerV1) Upload(ctx context.Context, req *v1.UploadReq) (res *v1.UploadRes, err error) {
	user, err := middlewares.RequireRole(ctx, consts.RoleCollector, consts.RoleAdmin)
	if err != nil {
		return nil, err
	}
	uploadFiles := g.RequestFromCtx(ctx).GetUploadFiles("files")
	if uploadFiles == nil {
		return nil, gerror.NewCode(consts.CodeMissingParameter, "上传文件为空，请使用字段名'files'上传文件")
	}

	sources := make([]audioSvc.UploadSource, 0, len(uploadFiles))
	for _, file := range uploadFiles {
		sources = append(sources, audioSvc.NewHttpUploadSource(file))
	}

	res = &v1.UploadRes{Total: len(uploadFiles)}
	for _, result := range c.svc.UploadAll(ctx, sources, user.Id) {
		if result.Error != "" {
			res.Errors = append(res.Errors, v1.FileError{FileName: result.FileName, Error: result.Error})
			continue
		}
		res.Files = append(res.Files, result.File)
	}
	res.Success = len(res.Files)
	res.Failed = len(res.Errors)
	return res, nil
}
