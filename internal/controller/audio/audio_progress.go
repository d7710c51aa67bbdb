package audio

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/middlewares"
	"transcription-hub/internal/model/entity"
	audioSvc "transcription-hub/internal/service/audio"
	"transcription-hub/internal/service/segmentation"
)

const progressWriteTimeout = 5 * time.Second

var wsUpGrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return checkOrigin(r, g.Cfg().MustGet(r.Context(), "server.allowedOrigins").Strings())
	},
	Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
	},
}

// checkOrigin 没有 Origin 头（非浏览器客户端）或与 Host 同源时放行，
// 其余只接受 allowed 中列出的来源，"*" 表示不限制。
func checkOrigin(r *http.Request, allowed []string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(strings.TrimSuffix(a, "/"), origin) {
			return true
		}
	}
	return false
}

// NewProgressHandler 通过 WebSocket 推送文件的切分进度。
// 先发送当前快照；文件已不在 processing 时发送结束事件后关闭连接。
func NewProgressHandler(svc *audioSvc.Service, hub *segmentation.Hub) ghttp.HandlerFunc {
	c := &ControllerV1{svc: svc}
	return func(r *ghttp.Request) {
		ctx := r.Context()
		logger := g.Log()

		file, err := c.ownedFile(ctx, r.Get("id").Int64())
		if err != nil {
			middlewares.WriteError(r, err)
			return
		}

		connectID := uuid.NewString()
		r.Response.Header().Set("X-Api-Connect-Id", connectID)
		conn, err := wsUpGrader.Upgrade(r.Response.Writer, r.Request, nil)
		if err != nil {
			r.Response.Write(err.Error())
			return
		}
		defer conn.Close()

		// 先订阅再读快照，避免错过两者之间的事件
		events, unsubscribe := hub.Subscribe(file.Id)
		defer unsubscribe()

		if file, err = c.svc.Get(ctx, file.Id); err != nil {
			logger.Warningf(ctx, "读取音频文件失败，connect_id=%s: %v", connectID, err)
			return
		}
		if err = writeEvent(conn, snapshot(file)); err != nil {
			return
		}
		if file.Status != consts.FileStatusProcessing {
			closeNormally(conn)
			return
		}

		closed := make(chan struct{})
		go drain(ctx, conn, closed)

		logger.Infof(ctx, "开始推送切分进度，file=%d, connect_id=%s", file.Id, connectID)
		for {
			select {
			case <-closed:
				return
			case e, ok := <-events:
				if !ok {
					closeNormally(conn)
					return
				}
				if err = writeEvent(conn, e); err != nil {
					logger.Debugf(ctx, "推送进度失败，connect_id=%s: %v", connectID, err)
					return
				}
			}
		}
	}
}

func snapshot(file *entity.AudioFile) segmentation.Event {
	e := segmentation.Event{
		Type:   segmentation.EventSegment,
		FileId: file.Id,
		Done:   file.SegmentCount,
		Total:  file.SegmentCount,
		Status: file.Status,
		Error:  file.ErrorMessage,
	}
	if file.Status != consts.FileStatusProcessing {
		e.Type = segmentation.EventFinished
	}
	return e
}

func writeEvent(conn *websocket.Conn, e segmentation.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(progressWriteTimeout))
	return conn.WriteJSON(e)
}

func closeNormally(conn *websocket.Conn) {
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(time.Second),
	)
}

// drain 读取客户端消息直到连接关闭，客户端不需要发送任何内容
func drain(ctx context.Context, conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived, websocket.CloseGoingAway) {
				g.Log().Debugf(ctx, "进度连接异常关闭: %v", err)
			}
			return
		}
	}
}
