// Package audio 处理录音上传、切分入队与取消。
package audio

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/util/gconv"
	"github.com/google/uuid"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model"
	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/service/media"
	"transcription-hub/internal/service/storage"
	"transcription-hub/internal/store"
)

// Enqueuer 接收待切分的文件。
type Enqueuer interface {
	Enqueue(ctx context.Context, fileId int64) error
}

// Canceller 请求停止正在进行的切分。
type Canceller interface {
	Cancel(fileId int64) bool
}

type UploadResult struct {
	FileName string            `json:"fileName"`
	File     *entity.AudioFile `json:"file,omitempty"`
	Error    string            `json:"error,omitempty"`
}

type Service struct {
	store     store.Store
	uploads   *storage.Local
	queue     Enqueuer
	canceller Canceller
	converter *media.FFmpegConverter
}

// New converter 为 nil 时不做格式转换，直接把原文件交给 VAD。
func New(s store.Store, uploads *storage.Local, queue Enqueuer, canceller Canceller, converter *media.FFmpegConverter) *Service {
	return &Service{
		store:     s,
		uploads:   uploads,
		queue:     queue,
		canceller: canceller,
		converter: converter,
	}
}

// UploadAll 逐个处理上传文件，单个文件失败不影响其他文件。
func (s *Service) UploadAll(ctx context.Context, files []UploadSource, uploaderId int64) []UploadResult {
	results := make([]UploadResult, 0, len(files))
	for _, f := range files {
		result := UploadResult{FileName: f.FileName()}
		file, err := s.Upload(ctx, f, uploaderId)
		if err != nil {
			g.Log().Warningf(ctx, "upload %s failed: %v", f.FileName(), err)
			result.Error = err.Error()
		}
		result.File = file
		results = append(results, result)
	}
	return results
}

// Upload 保存原始文件，创建 processing 状态的 AudioFile 并加入切分队列。
func (s *Service) Upload(ctx context.Context, src UploadSource, uploaderId int64) (*entity.AudioFile, error) {
	if src.FileSize() >= consts.MaxUploadSize {
		return nil, gerror.NewCodef(consts.CodeInvalidParameter, "文件大小超过最大限制：%d / 1,073,741,824 字节", src.FileSize())
	}

	reader, err := src.Open()
	if err != nil {
		return nil, gerror.Wrap(err, "打开文件失败")
	}
	defer reader.Close()

	mType, err := mimetype.DetectReader(reader)
	if err != nil {
		return nil, gerror.Wrap(err, "检测文件类型失败")
	}
	if _, ok := consts.AudioExt[mType.Extension()]; !ok {
		return nil, gerror.NewCodef(consts.CodeInvalidParameter, "不支持的文件格式：%s", mType.String())
	}
	// 重置文件读取器，因为 mimetype.DetectReader 已经读取了一部分
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return nil, gerror.Wrap(err, "无法重置文件读取器")
	}

	key := uuid.NewString() + mType.Extension()
	if err = s.uploads.Write(ctx, key, reader); err != nil {
		return nil, gerror.Wrap(err, "保存文件失败")
	}
	originalPath, err := s.uploads.Path(key)
	if err != nil {
		return nil, err
	}
	if s.converter != nil {
		if originalPath, err = s.converter.Convert(ctx, originalPath); err != nil {
			return nil, gerror.WrapCode(consts.CodeExternalToolFailure, err, "音频格式转换失败")
		}
	}

	id, err := s.store.CreateAudioFile(ctx, &entity.AudioFile{
		Filename:     sanitizeName(src.FileName()),
		OriginalPath: originalPath,
		Status:       consts.FileStatusProcessing,
		Size:         src.FileSize(),
		UploadedBy:   uploaderId,
	})
	if err != nil {
		return nil, err
	}
	if err = s.queue.Enqueue(ctx, id); err != nil {
		_, _ = s.store.UpdateAudioFileIf(ctx, id, []string{consts.FileStatusProcessing}, model.AudioFileUpdate{
			Status:       consts.FileStatusError,
			ErrorMessage: gconv.PtrString(err.Error()),
		})
		return nil, err
	}
	g.Log().Infof(ctx, "audio file %d (%s) queued for segmentation", id, src.FileName())
	return s.store.GetAudioFile(ctx, id)
}

// Cancel 停止文件的切分并把状态置为 cancelled，已生成的片段保留。
func (s *Service) Cancel(ctx context.Context, fileId int64) (*entity.AudioFile, error) {
	file, err := s.Get(ctx, fileId)
	if err != nil {
		return nil, err
	}
	if file.Status != consts.FileStatusProcessing {
		return nil, gerror.NewCodef(consts.CodePreconditionFailed, "Audio file is not being processed (status: %s)", file.Status)
	}
	ok, err := s.store.UpdateAudioFileIf(ctx, fileId, []string{consts.FileStatusProcessing}, model.AudioFileUpdate{
		Status: consts.FileStatusCancelled,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		if file, err = s.Get(ctx, fileId); err != nil {
			return nil, err
		}
		return nil, gerror.NewCodef(consts.CodePreconditionFailed, "Audio file is not being processed (status: %s)", file.Status)
	}
	// 先写状态再停止切分：协调器登记后会重读状态，终态也只覆盖 processing。
	// 仍在排队的文件不在运行表中，worker 取出时会因状态跳过
	running := s.canceller.Cancel(fileId)
	g.Log().Infof(ctx, "audio file %d cancelled, running=%v", fileId, running)
	return s.store.GetAudioFile(ctx, fileId)
}

func (s *Service) Get(ctx context.Context, fileId int64) (*entity.AudioFile, error) {
	file, err := s.store.GetAudioFile(ctx, fileId)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, gerror.NewCodef(consts.CodeNotFound, "Audio file %d not found", fileId)
	}
	return file, nil
}

func (s *Service) List(ctx context.Context, q model.AudioFileQuery) ([]*entity.AudioFile, error) {
	return s.store.ListAudioFiles(ctx, q)
}

// Segments 返回文件的片段，按 VAD 输出顺序。
func (s *Service) Segments(ctx context.Context, fileId int64) ([]*entity.AudioSegment, error) {
	if _, err := s.Get(ctx, fileId); err != nil {
		return nil, err
	}
	return s.store.ListSegments(ctx, model.SegmentQuery{AudioFileId: fileId})
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return "upload"
	}
	return name
}
