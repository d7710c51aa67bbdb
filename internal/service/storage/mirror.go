package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gfile"

	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/service/segmentation"
)

type mirrorJob struct {
	key  string
	path string
}

// Mirror 把切分出的片段音频异步上传到远端存储。
// 作为切分进度的观察者注册，队列满时丢弃任务，不影响切分。
type Mirror struct {
	remote  FileStorage
	jobs    chan mirrorJob
	workers int
	once    sync.Once
}

func NewMirror(remote FileStorage, workers, size int) *Mirror {
	if workers <= 0 {
		workers = 2
	}
	if size <= 0 {
		size = 256
	}
	return &Mirror{remote: remote, jobs: make(chan mirrorJob, size), workers: workers}
}

// ObjectKey 片段在远端存储中的 key。
func ObjectKey(seg *entity.AudioSegment) string {
	return fmt.Sprintf("segments/%d/%s", seg.AudioFileId, filepath.Base(seg.SegmentPath))
}

func (m *Mirror) Start(ctx context.Context) {
	m.once.Do(func() {
		for i := 0; i < m.workers; i++ {
			go m.worker(ctx)
		}
	})
}

func (m *Mirror) worker(ctx context.Context) {
	logger := g.Log()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-m.jobs:
			if err := m.upload(ctx, job); err != nil {
				logger.Warningf(ctx, "segment mirror failed, key=%s: %v", job.key, err)
				continue
			}
			logger.Debugf(ctx, "segment mirrored, key=%s", job.key)
		}
	}
}

func (m *Mirror) upload(ctx context.Context, job mirrorJob) error {
	f, err := gfile.Open(job.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.remote.Write(ctx, job.key, f)
}

func (m *Mirror) SegmentCreated(ctx context.Context, seg *entity.AudioSegment, done, total int) {
	job := mirrorJob{key: ObjectKey(seg), path: seg.SegmentPath}
	select {
	case m.jobs <- job:
	default:
		g.Log().Warningf(ctx, "segment mirror queue is full, key=%s dropped", job.key)
	}
}

func (m *Mirror) Finished(ctx context.Context, outcome segmentation.Outcome) {}

// URL 片段已上传且远端支持预签名时返回下载地址，否则返回空串，由调用方回退到本地文件。
func (m *Mirror) URL(ctx context.Context, seg *entity.AudioSegment) string {
	presigner, ok := m.remote.(Presigner)
	if !ok {
		return ""
	}
	key := ObjectKey(seg)
	exists, err := m.remote.Exists(ctx, key)
	if err != nil || !exists {
		return ""
	}
	url, err := presigner.URL(ctx, key)
	if err != nil {
		g.Log().Warningf(ctx, "presign %s failed: %v", key, err)
		return ""
	}
	return url
}
