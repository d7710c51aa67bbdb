// Package segmentation 驱动 VAD 对上传的音频切分，并把结果写成片段记录。
package segmentation

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gfile"
	"github.com/gogf/gf/v2/util/gconv"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model"
	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/service/vad"
	"transcription-hub/internal/store"
)

// Outcome 一次切分的结果。Status 为 processed、error 或 cancelled，
// cancelled 只是告知调用方，文件状态由调用方自行设置。
// 终态只在文件仍为 processing 时写入，期间被取消的文件保持 cancelled。
type Outcome struct {
	FileId   int64
	Status   string
	Segments int
	Total    int
	Error    string
}

// Observer 接收切分进度，回调在切分协程中同步执行。
type Observer interface {
	SegmentCreated(ctx context.Context, seg *entity.AudioSegment, done, total int)
	Finished(ctx context.Context, outcome Outcome)
}

type Coordinator struct {
	store      store.Store
	runner     vad.Runner
	outputRoot string
	observers  []Observer

	mu      sync.Mutex
	running map[int64]context.CancelFunc
}

func NewCoordinator(s store.Store, runner vad.Runner, outputRoot string, observers ...Observer) *Coordinator {
	return &Coordinator{
		store:      s,
		runner:     runner,
		outputRoot: outputRoot,
		observers:  observers,
		running:    make(map[int64]context.CancelFunc),
	}
}

// Observe 追加进度观察者，需在开始处理前调用。
func (c *Coordinator) Observe(o Observer) {
	c.observers = append(c.observers, o)
}

// OutputDir 返回文件的片段输出目录。
func (c *Coordinator) OutputDir(fileId int64) string {
	return filepath.Join(c.outputRoot, "file_"+gconv.String(fileId))
}

// Process 对 file 执行一次完整切分。
//
// VAD 工具失败时文件被标记为 error 并附带工具给出的信息，返回的 error 仅表示存储失败。
// 取消只在片段之间检查，正在运行的 VAD 进程不会被中断，已创建的片段全部保留。
func (c *Coordinator) Process(ctx context.Context, file *entity.AudioFile) (*Outcome, error) {
	runCtx, cancel := context.WithCancel(ctx)
	if !c.register(file.Id, cancel) {
		cancel()
		return nil, gerror.NewCodef(consts.CodePreconditionFailed, "Audio file %d is already being segmented", file.Id)
	}
	defer c.unregister(file.Id)

	outcome := &Outcome{FileId: file.Id}
	// 调用方检查状态之后、登记之前可能已被取消
	if status := c.status(ctx, file.Id); status != consts.FileStatusProcessing {
		outcome.Status = status
		g.Log().Infof(ctx, "segmentation of file %d skipped, status is %s", file.Id, status)
		c.finish(ctx, *outcome)
		return outcome, nil
	}
	outDir := c.OutputDir(file.Id)
	if err := gfile.Mkdir(outDir); err != nil {
		return c.fail(ctx, outcome, gerror.Wrapf(err, "create output directory %s", outDir))
	}
	if err := c.store.UpdateAudioFile(ctx, file.Id, model.AudioFileUpdate{ProcessedDir: gconv.PtrString(outDir)}); err != nil {
		return nil, err
	}

	// VAD 使用外层 ctx，取消不会杀掉进程
	res, err := c.runner.Process(ctx, file.OriginalPath, outDir)
	if err != nil {
		return c.fail(ctx, outcome, err)
	}
	outcome.Total = len(res.Segments)
	if err = c.store.UpdateAudioFile(ctx, file.Id, model.AudioFileUpdate{
		Duration: gconv.PtrFloat64(res.TotalDuration() / 1000),
	}); err != nil {
		return nil, err
	}

	for _, s := range res.Segments {
		if runCtx.Err() != nil {
			break
		}
		seg := &entity.AudioSegment{
			AudioFileId: file.Id,
			SegmentPath: s.Path,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			Duration:    s.Duration,
			Status:      consts.SegmentStatusAvailable,
		}
		if seg.Id, err = c.store.CreateSegment(ctx, seg); err != nil {
			return c.fail(ctx, outcome, gerror.Wrapf(err, "create segment #%d", s.Index))
		}
		outcome.Segments++
		if err = c.store.UpdateAudioFile(ctx, file.Id, model.AudioFileUpdate{
			SegmentCount: gconv.PtrInt(outcome.Segments),
		}); err != nil {
			return nil, err
		}
		for _, o := range c.observers {
			o.SegmentCreated(ctx, seg, outcome.Segments, outcome.Total)
		}
	}

	if runCtx.Err() != nil {
		outcome.Status = consts.FileStatusCancelled
		g.Log().Infof(ctx, "segmentation of file %d cancelled after %d/%d segments", file.Id, outcome.Segments, outcome.Total)
		c.finish(ctx, *outcome)
		return outcome, nil
	}
	outcome.Status = consts.FileStatusProcessed
	g.Log().Infof(ctx, "segmentation of file %d done, %d segments", file.Id, outcome.Segments)
	return c.settle(ctx, outcome, model.AudioFileUpdate{Status: consts.FileStatusProcessed})
}

func (c *Coordinator) fail(ctx context.Context, outcome *Outcome, cause error) (*Outcome, error) {
	outcome.Status = consts.FileStatusError
	outcome.Error = cause.Error()
	g.Log().Warningf(ctx, "segmentation of file %d failed: %v", outcome.FileId, cause)
	return c.settle(ctx, outcome, model.AudioFileUpdate{
		Status:       consts.FileStatusError,
		ErrorMessage: gconv.PtrString(outcome.Error),
	})
}

// settle 以 processing 为前提写入终态，文件已离开 processing 时以当前状态为准。
func (c *Coordinator) settle(ctx context.Context, outcome *Outcome, u model.AudioFileUpdate) (*Outcome, error) {
	ok, err := c.store.UpdateAudioFileIf(ctx, outcome.FileId, []string{consts.FileStatusProcessing}, u)
	if err != nil {
		return nil, err
	}
	if !ok {
		outcome.Status = c.status(ctx, outcome.FileId)
		outcome.Error = ""
		g.Log().Infof(ctx, "segmentation of file %d ended after status changed to %s", outcome.FileId, outcome.Status)
	}
	c.finish(ctx, *outcome)
	return outcome, nil
}

// status 读取文件当前状态，文件不存在或读取失败时视为 cancelled。
func (c *Coordinator) status(ctx context.Context, fileId int64) string {
	file, err := c.store.GetAudioFile(ctx, fileId)
	if err != nil {
		g.Log().Warningf(ctx, "load audio file %d failed: %v", fileId, err)
		return consts.FileStatusCancelled
	}
	if file == nil {
		return consts.FileStatusCancelled
	}
	return file.Status
}

func (c *Coordinator) finish(ctx context.Context, outcome Outcome) {
	for _, o := range c.observers {
		o.Finished(ctx, outcome)
	}
}

// Cancel 请求停止文件的切分，文件不在处理中时返回 false。
func (c *Coordinator) Cancel(fileId int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cancel, ok := c.running[fileId]
	if ok {
		cancel()
	}
	return ok
}

// Running 判断文件是否正在切分。
func (c *Coordinator) Running(fileId int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.running[fileId]
	return ok
}

func (c *Coordinator) register(fileId int64, cancel context.CancelFunc) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.running[fileId]; ok {
		return false
	}
	c.running[fileId] = cancel
	return true
}

func (c *Coordinator) unregister(fileId int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cancel, ok := c.running[fileId]; ok {
		cancel()
		delete(c.running, fileId)
	}
}
