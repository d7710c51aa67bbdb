// Package store 片段存储，音频文件、片段、转写与用户的唯一数据来源。
// 内存实现与基于 gdb 的实现共用同一个 Store 接口。
package store

import (
	"context"

	"transcription-hub/internal/model"
	"transcription-hub/internal/model/entity"
)

// TranscriptionChangedMessage 审核期间转写被重新提交时返回的错误信息。
const TranscriptionChangedMessage = "Transcription changed since review started"

// Store 服务层使用的持久化接口。
//
// Get* 在记录不存在时返回 (nil, nil)，由调用方决定如何处理。
// 片段状态变更统一走 UpdateSegmentIf：仅当当前状态属于 from 时才更新，
// 生命周期校验依赖这一 compare-and-swap。
type Store interface {
	CreateUser(ctx context.Context, user *entity.User) (int64, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)

	CreateAudioFile(ctx context.Context, file *entity.AudioFile) (int64, error)
	GetAudioFile(ctx context.Context, id int64) (*entity.AudioFile, error)
	ListAudioFiles(ctx context.Context, q model.AudioFileQuery) ([]*entity.AudioFile, error)
	UpdateAudioFile(ctx context.Context, id int64, u model.AudioFileUpdate) error
	// UpdateAudioFileIf 仅当文件当前状态属于 from 时才更新，返回是否更新。
	UpdateAudioFileIf(ctx context.Context, id int64, from []string, u model.AudioFileUpdate) (bool, error)

	CreateSegment(ctx context.Context, seg *entity.AudioSegment) (int64, error)
	GetSegment(ctx context.Context, id int64) (*entity.AudioSegment, error)
	ListSegments(ctx context.Context, q model.SegmentQuery) ([]*entity.AudioSegment, error)
	UpdateSegmentIf(ctx context.Context, id int64, from []string, u model.SegmentUpdate) (bool, error)

	// SaveTranscription 创建 t.SegmentId 的转写；已存在时覆盖文本、备注、提交人和状态。
	// 每个片段最多一条转写。
	SaveTranscription(ctx context.Context, t *entity.Transcription) (*entity.Transcription, error)
	// SubmitTranscription 在同一个事务内完成片段状态的 compare-and-swap 与转写写入。
	// 片段状态不属于 from 时不做任何修改并返回 false。
	SubmitTranscription(ctx context.Context, t *entity.Transcription, from []string, u model.SegmentUpdate) (*entity.Transcription, bool, error)
	// ReviewTranscription 在同一个事务内完成片段状态的 compare-and-swap 与审核结果写入。
	// 转写文本已不是 seen.Text（审核期间被重新提交）时整体回滚并返回 CodePreconditionFailed。
	ReviewTranscription(ctx context.Context, seen *entity.Transcription, from []string, u model.SegmentUpdate, tu model.TranscriptionUpdate) (bool, error)
	GetTranscriptionBySegment(ctx context.Context, segmentId int64) (*entity.Transcription, error)
	ListTranscriptions(ctx context.Context, q model.TranscriptionQuery) ([]*entity.Transcription, error)
	UpdateTranscription(ctx context.Context, id int64, u model.TranscriptionUpdate) error

	AppendTransition(ctx context.Context, tr *entity.SegmentTransition) error
	ListTransitions(ctx context.Context, segmentId int64) ([]*entity.SegmentTransition, error)
}
