package segmentation

import (
	"context"
	"sync"

	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/util/gconv"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model"
	"transcription-hub/internal/store"
)

// InterruptedMessage 重启时发现切分中断、且已有片段的文件所记录的错误信息。
const InterruptedMessage = "segmentation interrupted"

// Queue 切分任务队列，固定数量的 worker 依次处理文件。
type Queue struct {
	store   store.Store
	coord   *Coordinator
	jobs    chan int64
	workers int
	once    sync.Once
	wg      sync.WaitGroup
}

func NewQueue(s store.Store, coord *Coordinator, workers, size int) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if size <= 0 {
		size = 64
	}
	return &Queue{
		store:   s,
		coord:   coord,
		jobs:    make(chan int64, size),
		workers: workers,
	}
}

// Start 启动 worker，ctx 结束后 worker 退出。重复调用无效。
func (q *Queue) Start(ctx context.Context) {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go q.worker(ctx)
		}
		g.Log().Infof(ctx, "segmentation queue started with %d workers", q.workers)
	})
}

// Wait 等待全部 worker 退出。
func (q *Queue) Wait() {
	q.wg.Wait()
}

// Enqueue 将文件加入队列，队列已满时返回错误，不阻塞请求。
func (q *Queue) Enqueue(ctx context.Context, fileId int64) error {
	select {
	case q.jobs <- fileId:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return gerror.NewCodef(gcode.CodeInternalError, "segmentation queue is full, file %d not queued", fileId)
	}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case fileId := <-q.jobs:
			q.run(ctx, fileId)
		}
	}
}

func (q *Queue) run(ctx context.Context, fileId int64) {
	file, err := q.store.GetAudioFile(ctx, fileId)
	if err != nil {
		g.Log().Errorf(ctx, "load audio file %d failed: %v", fileId, err)
		return
	}
	// 排队期间被取消或删除的文件直接跳过
	if file == nil || file.Status != consts.FileStatusProcessing {
		return
	}
	if _, err = q.coord.Process(ctx, file); err != nil {
		g.Log().Errorf(ctx, "segmentation of file %d aborted: %v", fileId, err)
	}
}

// Recover 处理上次运行时中断的文件：没有片段的重新入队，
// 已有部分片段的标记为 error，重跑会产生重复片段。
func (q *Queue) Recover(ctx context.Context) (requeued, failed int, err error) {
	files, err := q.store.ListAudioFiles(ctx, model.AudioFileQuery{Status: consts.FileStatusProcessing})
	if err != nil {
		return 0, 0, err
	}
	for _, f := range files {
		if q.coord.Running(f.Id) {
			continue
		}
		segments, err := q.store.ListSegments(ctx, model.SegmentQuery{AudioFileId: f.Id})
		if err != nil {
			return requeued, failed, err
		}
		if len(segments) == 0 {
			if err = q.Enqueue(ctx, f.Id); err != nil {
				g.Log().Warningf(ctx, "requeue audio file %d failed: %v", f.Id, err)
				continue
			}
			requeued++
			continue
		}
		ok, err := q.store.UpdateAudioFileIf(ctx, f.Id, []string{consts.FileStatusProcessing}, model.AudioFileUpdate{
			Status:       consts.FileStatusError,
			SegmentCount: gconv.PtrInt(len(segments)),
			ErrorMessage: gconv.PtrString(InterruptedMessage),
		})
		if err != nil {
			return requeued, failed, err
		}
		if ok {
			failed++
		}
	}
	if requeued+failed > 0 {
		g.Log().Infof(ctx, "已恢复中断的切分任务：重新入队 %d 个，标记失败 %d 个", requeued, failed)
	}
	return requeued, failed, nil
}
