package cmd

import (
	"context"
	"fmt"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/gogf/gf/v2/os/gcmd"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/controller/audio"
	"transcription-hub/internal/controller/export"
	"transcription-hub/internal/controller/segment"
	"transcription-hub/internal/controller/task"
	"transcription-hub/internal/controller/user"
	"transcription-hub/internal/middlewares"
	audioSvc "transcription-hub/internal/service/audio"
	exportSvc "transcription-hub/internal/service/export"
	"transcription-hub/internal/service/lifecycle"
	"transcription-hub/internal/service/media"
	"transcription-hub/internal/service/segmentation"
	"transcription-hub/internal/service/storage"
	"transcription-hub/internal/service/taskquery"
	"transcription-hub/internal/service/vad"
)

var (
	Main = gcmd.Command{
		Name:  "main",
		Usage: "main",
		Brief: "start http server",
		Func: func(ctx context.Context, parser *gcmd.Parser) (err error) {
			fmt.Println(`
 _____                              _       _   _               _   _       _
|_   _| __ __ _ _ __  ___  ___ _ __(_)_ __ | |_(_) ___  _ __   | | | |_   _| |__
  | || '__/ _' | '_ \/ __|/ __| '__| | '_ \| __| |/ _ \| '_ \  | |_| | | | | '_ \
  | || | | (_| | | | \__ \ (__| |  | | |_) | |_| | (_) | | | | |  _  | |_| | |_) |
  |_||_|  \__,_|_| |_|___/\___|_|  |_| .__/ \__|_|\___/|_| |_| |_| |_|\__,_|_.__/
                                     |_|
					 `)
			fmt.Println("Team Audio Transcription Hub")
			fmt.Println()
			logger := g.Log()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			if err = seedUsers(ctx, st); err != nil {
				return err
			}

			// 切分：VAD → 协调器 → 队列，进度经 hub 推送，可选镜像到 TOS
			hub := segmentation.NewHub(g.Cfg().MustGet(ctx, "segment.progressBuffer", 16).Int())
			coord := segmentation.NewCoordinator(
				st,
				vad.NewExecRunner(ctx),
				g.Cfg().MustGet(ctx, "segment.outputDir", "data/segments").String(),
				hub,
			)
			mirror := setupMirror(ctx, coord)
			queue := segmentation.NewQueue(
				st,
				coord,
				g.Cfg().MustGet(ctx, "segment.workers", 2).Int(),
				g.Cfg().MustGet(ctx, "segment.queueSize", 64).Int(),
			)

			var converter *media.FFmpegConverter
			if g.Cfg().MustGet(ctx, "media.convert.enabled", false).Bool() {
				converter = media.NewConverter(g.Cfg().MustGet(ctx, "media.convert.ffmpeg", "ffmpeg").String(), media.VADOptions)
			}

			var (
				uploads   = storage.NewLocal(g.Cfg().MustGet(ctx, "segment.uploadDir", "data/uploads").String())
				audios    = audioSvc.New(st, uploads, queue, coord, converter)
				lc        = lifecycle.New(st, g.Cfg().MustGet(ctx, "review.batchRating", consts.DefaultBatchRating).Int())
				query     = taskquery.New(st, g.Cfg().MustGet(ctx, "task.dueDays", consts.DefaultDueDays).Int())
				exporter  = exportSvc.New(st)
				identity  = middlewares.Identity(st)
				bodyLimit = int64(consts.MaxUploadSize)
			)

			s := g.Server()
			s.SetPort(g.Cfg().MustGet(ctx, "server.port", 8000).Int())
			s.SetClientMaxBodySize(bodyLimit)
			s.Use(middlewares.Brotli(g.Cfg().MustGet(ctx, "server.brotliLevel", 5).Int()))
			s.Use(ghttp.MiddlewareCORS)
			oai := s.GetOpenApi()
			oai.Config.CommonResponse = ghttp.DefaultHandlerResponse{}
			oai.Config.CommonResponseDataField = "Data"
			s.SetOpenApiPath(g.Cfg().MustGet(ctx, "server.openapiPath").String())
			s.SetSwaggerPath(g.Cfg().MustGet(ctx, "server.swaggerPath").String())

			// WebSocket 与文件下载自行写响应，不走统一响应中间件
			s.Group("/", func(group *ghttp.RouterGroup) {
				group.Middleware(identity)
				group.GET("/audio/{id}/progress", audio.NewProgressHandler(audios, hub))
				group.GET("/segment/{id}/audio", segment.NewAudioHandler(lc, mirror))
			})
			s.Group("/", func(group *ghttp.RouterGroup) {
				group.Middleware(identity, middlewares.HandlerResponse)
				group.Group("/audio", func(group *ghttp.RouterGroup) {
					group.Bind(audio.NewV1(audios))
				})
				group.Group("/segment", func(group *ghttp.RouterGroup) {
					group.Bind(segment.NewV1(lc, query))
				})
				group.Group("/task", func(group *ghttp.RouterGroup) {
					group.Bind(task.NewV1(query))
				})
				group.Group("/export", func(group *ghttp.RouterGroup) {
					group.Bind(export.NewV1(exporter))
				})
				group.Group("/user", func(group *ghttp.RouterGroup) {
					group.Bind(user.NewV1(st))
				})
			})

			queue.Start(ctx)
			if mirror != nil {
				mirror.Start(ctx)
			}
			if _, _, err = queue.Recover(ctx); err != nil {
				logger.Warningf(ctx, "恢复未完成的切分任务失败: %v", err)
			}

			s.Run()
			return nil
		},
	}
)
