package segment

import (
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/gogf/gf/v2/os/gfile"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/middlewares"
	"transcription-hub/internal/service/lifecycle"
	"transcription-hub/internal/service/storage"
)

// NewAudioHandler 返回片段音频。已镜像到对象存储时重定向到预签名地址，否则直接输出本地文件。
// mirror 为 nil 表示未启用镜像。
func NewAudioHandler(lc *lifecycle.Service, mirror *storage.Mirror) ghttp.HandlerFunc {
	c := &ControllerV1{lifecycle: lc}
	return func(r *ghttp.Request) {
		ctx := r.Context()
		detail, err := c.visibleDetail(ctx, r.Get("id").Int64())
		if err != nil {
			middlewares.WriteError(r, err)
			return
		}
		seg := detail.Segment
		if mirror != nil {
			if url := mirror.URL(ctx, seg); url != "" {
				r.Response.RedirectTo(url)
				return
			}
		}
		if !gfile.IsFile(seg.SegmentPath) {
			middlewares.WriteError(r, gerror.NewCodef(consts.CodeNotFound, "Segment audio %d not found", seg.Id))
			return
		}
		r.Response.ServeFile(seg.SegmentPath)
	}
}
