package audio_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/os/gfile"
	"github.com/gogf/gf/v2/test/gtest"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/service/audio"
	"transcription-hub/internal/service/segmentation"
	"transcription-hub/internal/service/storage"
	"transcription-hub/internal/service/vad"
	"transcription-hub/internal/store"
)

type fakeQueue struct {
	queued    []int64
	cancelled []int64
	full      bool
}

func (q *fakeQueue) Enqueue(ctx context.Context, fileId int64) error {
	if q.full {
		return gerror.New("segmentation queue is full")
	}
	q.queued = append(q.queued, fileId)
	return nil
}

func (q *fakeQueue) Cancel(fileId int64) bool {
	q.cancelled = append(q.cancelled, fileId)
	return true
}

const wavHeader = "RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00\x80\x3e\x00\x00\x00\x7d\x00\x00\x02\x00\x10\x00data\x00\x00\x00\x00"

func source(t *gtest.T, dir, name, content string) audio.UploadSource {
	p := filepath.Join(dir, name)
	t.AssertNil(gfile.PutContents(p, content))
	src, err := audio.NewLocalUploadFile(p)
	t.AssertNil(err)
	return src
}

func Test_UploadAll(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		s := store.NewMemory()
		q := &fakeQueue{}
		svc := audio.New(s, storage.NewLocal(filepath.Join(dir, "uploads")), q, q, nil)

		results := svc.UploadAll(ctx, []audio.UploadSource{
			source(t, dir, "standup.wav", wavHeader),
			source(t, dir, "notes.txt", "just some text"),
		}, 7)
		t.Assert(len(results), 2)
		t.Assert(results[0].Error, "")
		t.Assert(results[0].File.Status, consts.FileStatusProcessing)
		t.Assert(results[0].File.Filename, "standup.wav")
		t.Assert(results[0].File.UploadedBy, 7)
		t.Assert(results[0].File.Size, len(wavHeader))
		t.Assert(gfile.IsFile(results[0].File.OriginalPath), true)
		t.Assert(strings.HasSuffix(results[0].File.OriginalPath, ".wav"), true)
		t.Assert(q.queued, []int64{results[0].File.Id})

		t.AssertNil(results[1].File)
		t.Assert(strings.Contains(results[1].Error, "不支持的文件格式"), true)
	})
}

func Test_Upload_QueueFull(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		s := store.NewMemory()
		q := &fakeQueue{full: true}
		svc := audio.New(s, storage.NewLocal(dir), q, q, nil)

		_, err := svc.Upload(ctx, source(t, dir, "a.wav", wavHeader), 1)
		t.AssertNE(err, nil)
		file, _ := s.GetAudioFile(ctx, 1)
		t.Assert(file.Status, consts.FileStatusError)
	})
}

func Test_Cancel(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		s := store.NewMemory()
		q := &fakeQueue{}
		svc := audio.New(s, storage.NewLocal(t.TempDir()), q, q, nil)

		id, err := s.CreateAudioFile(ctx, &entity.AudioFile{Filename: "a.wav", Status: consts.FileStatusProcessing})
		t.AssertNil(err)
		_, err = s.CreateSegment(ctx, &entity.AudioSegment{AudioFileId: id, Status: consts.SegmentStatusAvailable})
		t.AssertNil(err)

		file, err := svc.Cancel(ctx, id)
		t.AssertNil(err)
		t.Assert(file.Status, consts.FileStatusCancelled)
		t.Assert(q.cancelled, []int64{id})
		segments, err := svc.Segments(ctx, id)
		t.AssertNil(err)
		t.Assert(len(segments), 1)

		_, err = svc.Cancel(ctx, id)
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)
		_, err = svc.Cancel(ctx, 404)
		t.Assert(gerror.Code(err), consts.CodeNotFound)
	})
}

// slowRunner 阻塞到 release 给出结果，模拟正在运行的 VAD 进程。
type slowRunner struct {
	started chan struct{}
	release chan error
}

func (r *slowRunner) Process(ctx context.Context, src, outDir string) (*vad.Result, error) {
	close(r.started)
	if err := <-r.release; err != nil {
		return nil, err
	}
	return &vad.Result{Segments: []vad.Segment{
		{Index: 0, Path: filepath.Join(outDir, "segment_0.wav"), EndTime: 500, Duration: 500},
	}}, nil
}

func Test_Cancel_DuringSegmentation(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		for _, result := range []error{gerror.NewCode(consts.CodeExternalToolFailure, "corrupt audio"), nil} {
			ctx := context.Background()
			s := store.NewMemory()
			runner := &slowRunner{started: make(chan struct{}), release: make(chan error)}
			coord := segmentation.NewCoordinator(s, runner, dir)
			svc := audio.New(s, storage.NewLocal(dir), &fakeQueue{}, coord, nil)

			id, err := s.CreateAudioFile(ctx, &entity.AudioFile{Filename: "a.wav", Status: consts.FileStatusProcessing})
			t.AssertNil(err)
			file, err := s.GetAudioFile(ctx, id)
			t.AssertNil(err)
			done := make(chan *segmentation.Outcome, 1)
			go func() {
				outcome, _ := coord.Process(ctx, file)
				done <- outcome
			}()
			<-runner.started

			cancelled, err := svc.Cancel(ctx, id)
			t.AssertNil(err)
			t.Assert(cancelled.Status, consts.FileStatusCancelled)
			runner.release <- result

			outcome := <-done
			t.Assert(outcome.Status, consts.FileStatusCancelled)
			t.Assert(outcome.Error, "")
			got, err := s.GetAudioFile(ctx, id)
			t.AssertNil(err)
			t.Assert(got.Status, consts.FileStatusCancelled)
			t.Assert(got.ErrorMessage, "")
		}
	})
}
