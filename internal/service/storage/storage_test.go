package storage_test

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/os/gfile"
	"github.com/gogf/gf/v2/test/gtest"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/service/storage"
)

func Test_Local(t *testing.T) {
	root := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		local := storage.NewLocal(root)

		ok, err := local.Exists(ctx, "a/b.wav")
		t.AssertNil(err)
		t.Assert(ok, false)

		t.AssertNil(local.Write(ctx, "a/b.wav", bytes.NewReader([]byte("RIFF"))))
		ok, err = local.Exists(ctx, "a/b.wav")
		t.AssertNil(err)
		t.Assert(ok, true)

		r, err := local.Read(ctx, "a/b.wav")
		t.AssertNil(err)
		data, err := io.ReadAll(r)
		t.AssertNil(err)
		t.AssertNil(r.Close())
		t.Assert(string(data), "RIFF")

		p, err := local.Path("/a/b.wav")
		t.AssertNil(err)
		t.Assert(p, filepath.Join(root, "a", "b.wav"))

		_, err = local.Read(ctx, "a/missing.wav")
		t.Assert(gerror.Code(err), consts.CodeNotFound)

		t.AssertNE(local.Write(ctx, "../escape.wav", bytes.NewReader(nil)), nil)
		_, err = local.Path("")
		t.AssertNE(err, nil)
	})
}

func Test_ObjectKey(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		seg := &entity.AudioSegment{AudioFileId: 12, SegmentPath: "/data/segments/file_12/segment_3.wav"}
		t.Assert(storage.ObjectKey(seg), "segments/12/segment_3.wav")
	})
}

func Test_Mirror(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		src := filepath.Join(dir, "local", "segment_0.wav")
		t.AssertNil(gfile.PutContents(src, "pcm"))
		remote := storage.NewLocal(filepath.Join(dir, "remote"))
		mirror := storage.NewMirror(remote, 1, 4)
		mirror.Start(ctx)

		seg := &entity.AudioSegment{Id: 1, AudioFileId: 5, SegmentPath: src}
		mirror.SegmentCreated(ctx, seg, 1, 1)

		deadline := time.Now().Add(5 * time.Second)
		for {
			if ok, _ := remote.Exists(ctx, storage.ObjectKey(seg)); ok {
				break
			}
			if time.Now().After(deadline) {
				t.Fatal("segment was not mirrored")
			}
			time.Sleep(10 * time.Millisecond)
		}
		p, _ := remote.Path(storage.ObjectKey(seg))
		t.Assert(gfile.GetContents(p), "pcm")

		// 本地存储不支持预签名
		t.Assert(mirror.URL(ctx, seg), "")
	})
}
