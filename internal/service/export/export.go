// Package export 导出审核通过的转写，供下游训练使用。
package export

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/os/gtime"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model"
	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/store"
)

type Exporter struct {
	store store.Store
}

func New(s store.Store) *Exporter {
	return &Exporter{store: s}
}

// VerifiedTranscriptions 返回更新时间落在 [from, to] 内的已通过转写，from/to 为 nil 表示不限制。
func (e *Exporter) VerifiedTranscriptions(ctx context.Context, from, to *gtime.Time) ([]*model.FormattedTranscription, error) {
	if from != nil && to != nil && from.After(to) {
		return nil, gerror.NewCodef(consts.CodeInvalidParameter, "Invalid date range: %s is after %s", from, to)
	}
	list, err := e.store.ListTranscriptions(ctx, model.TranscriptionQuery{
		Status:      consts.TranscriptionStatusApproved,
		UpdatedFrom: from,
		UpdatedTo:   to,
	})
	if err != nil {
		return nil, err
	}
	files := make(map[int64]*entity.AudioFile)
	rows := make([]*model.FormattedTranscription, 0, len(list))
	for _, t := range list {
		seg, err := e.store.GetSegment(ctx, t.SegmentId)
		if err != nil {
			return nil, err
		}
		if seg == nil {
			continue
		}
		file, ok := files[seg.AudioFileId]
		if !ok {
			if file, err = e.store.GetAudioFile(ctx, seg.AudioFileId); err != nil {
				return nil, err
			}
			files[seg.AudioFileId] = file
		}
		row := &model.FormattedTranscription{
			SegmentId:     seg.Id,
			AudioFileId:   seg.AudioFileId,
			SegmentPath:   seg.SegmentPath,
			StartTime:     seg.StartTime,
			EndTime:       seg.EndTime,
			Duration:      seg.Duration,
			Text:          t.Text,
			Notes:         t.Notes,
			Rating:        t.Rating,
			TranscribedBy: t.CreatedBy,
			ReviewedBy:    t.ReviewedBy,
			UpdatedAt:     t.UpdatedAt,
		}
		if file != nil {
			row.Filename = file.Filename
		}
		rows = append(rows, row)
	}
	return rows, nil
}
