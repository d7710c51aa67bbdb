package segmentation

import (
	"context"
	"sync"

	"github.com/gogf/gf/v2/frame/g"

	"transcription-hub/internal/model/entity"
)

const (
	EventSegment  = "segment"
	EventFinished = "finished"
)

// Event 推送给进度订阅者的消息。
type Event struct {
	Type      string `json:"type"`
	FileId    int64  `json:"fileId"`
	SegmentId int64  `json:"segmentId,omitempty"`
	Done      int    `json:"done"`
	Total     int    `json:"total"`
	Status    string `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Hub 按文件分发切分进度。订阅者消费不及时时丢弃事件，不阻塞切分。
type Hub struct {
	mu     sync.Mutex
	buffer int
	subs   map[int64]map[chan Event]struct{}
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{buffer: buffer, subs: make(map[int64]map[chan Event]struct{})}
}

// Subscribe 订阅文件进度，返回的函数用于取消订阅。文件处理完成后通道会被关闭。
func (h *Hub) Subscribe(fileId int64) (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)
	h.mu.Lock()
	if h.subs[fileId] == nil {
		h.subs[fileId] = make(map[chan Event]struct{})
	}
	h.subs[fileId][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[fileId][ch]; ok {
				delete(h.subs[fileId], ch)
				close(ch)
			}
			if len(h.subs[fileId]) == 0 {
				delete(h.subs, fileId)
			}
		})
	}
}

func (h *Hub) SegmentCreated(ctx context.Context, seg *entity.AudioSegment, done, total int) {
	h.publish(ctx, Event{
		Type:      EventSegment,
		FileId:    seg.AudioFileId,
		SegmentId: seg.Id,
		Done:      done,
		Total:     total,
	}, false)
}

func (h *Hub) Finished(ctx context.Context, outcome Outcome) {
	h.publish(ctx, Event{
		Type:   EventFinished,
		FileId: outcome.FileId,
		Done:   outcome.Segments,
		Total:  outcome.Total,
		Status: outcome.Status,
		Error:  outcome.Error,
	}, true)
}

func (h *Hub) publish(ctx context.Context, e Event, last bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[e.FileId] {
		select {
		case ch <- e:
		default:
			g.Log().Debugf(ctx, "progress subscriber of file %d is slow, event dropped", e.FileId)
		}
		if last {
			close(ch)
		}
	}
	if last {
		delete(h.subs, e.FileId)
	}
}
