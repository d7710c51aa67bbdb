// Package taskquery 提供按角色划分的任务视图和看板统计，只读，不修改任何状态。
package taskquery

import (
	"context"
	"sort"

	"github.com/gogf/gf/v2/errors/gerror"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model"
	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/store"
)

const defaultActivityLimit = 10

type Engine struct {
	store   store.Store
	dueDays int
}

// New dueDays 为任务截止日相对片段创建时间的天数，<=0 时使用 consts.DefaultDueDays。
func New(s store.Store, dueDays int) *Engine {
	if dueDays <= 0 {
		dueDays = consts.DefaultDueDays
	}
	return &Engine{store: s, dueDays: dueDays}
}

// TasksFor 返回用户在 filter 下的任务列表，按片段创建顺序排列。
func (e *Engine) TasksFor(ctx context.Context, userId int64, filter string) ([]*model.TranscriptionTask, error) {
	user, err := e.user(ctx, userId)
	if err != nil {
		return nil, err
	}
	match, err := ScopeFilter(user, filter)
	if err != nil {
		return nil, err
	}
	segments, err := e.store.ListSegments(ctx, narrow(user, filter))
	if err != nil {
		return nil, err
	}
	var (
		tasks     = make([]*model.TranscriptionTask, 0, len(segments))
		filenames = make(map[int64]string)
	)
	for _, seg := range segments {
		if !match(seg) {
			continue
		}
		name, ok := filenames[seg.AudioFileId]
		if !ok {
			if file, err := e.store.GetAudioFile(ctx, seg.AudioFileId); err != nil {
				return nil, err
			} else if file != nil {
				name = file.Filename
			}
			filenames[seg.AudioFileId] = name
		}
		t, err := e.store.GetTranscriptionBySegment(ctx, seg.Id)
		if err != nil {
			return nil, err
		}
		task := &model.TranscriptionTask{Segment: seg, Transcription: t, Filename: name}
		if seg.CreatedAt != nil {
			task.DueDate = seg.CreatedAt.AddDate(0, 0, e.dueDays)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// TaskSummary 统计用户的看板数据。
func (e *Engine) TaskSummary(ctx context.Context, userId int64) (*model.TaskSummary, error) {
	user, err := e.user(ctx, userId)
	if err != nil {
		return nil, err
	}
	q := model.SegmentQuery{}
	if !isAdmin(user) {
		q.Involving = user.Id
	}
	segments, err := e.store.ListSegments(ctx, q)
	if err != nil {
		return nil, err
	}
	summary := &model.TaskSummary{}
	for _, seg := range segments {
		if seg.AssignedTo == user.Id && seg.Status != consts.SegmentStatusReviewed {
			summary.Assigned++
		}
		if pendingReview(user, seg) {
			summary.PendingReview++
		}
		if seg.Status == consts.SegmentStatusReviewed && CanSee(user, seg) {
			summary.Completed++
		}
	}
	return summary, nil
}

// RecentActivity 合并片段与转写的更新事件，按更新时间倒序，没有时间的排在最后。
func (e *Engine) RecentActivity(ctx context.Context, userId int64, limit int) ([]*model.ActivityEvent, error) {
	user, err := e.user(ctx, userId)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	var involving int64
	if !isAdmin(user) {
		involving = user.Id
	}
	segments, err := e.store.ListSegments(ctx, model.SegmentQuery{Involving: involving})
	if err != nil {
		return nil, err
	}
	transcriptions, err := e.store.ListTranscriptions(ctx, model.TranscriptionQuery{Involving: involving})
	if err != nil {
		return nil, err
	}

	events := make([]*model.ActivityEvent, 0, len(segments)+len(transcriptions))
	for _, seg := range segments {
		events = append(events, &model.ActivityEvent{
			Kind:      "segment",
			Id:        seg.Id,
			SegmentId: seg.Id,
			Type:      SegmentActivityType(seg.Status),
			Status:    seg.Status,
			UpdatedAt: seg.UpdatedAt,
		})
	}
	for _, t := range transcriptions {
		events = append(events, &model.ActivityEvent{
			Kind:      "transcription",
			Id:        t.Id,
			SegmentId: t.SegmentId,
			Type:      consts.ActivityTranscription,
			Status:    t.Status,
			UpdatedAt: t.UpdatedAt,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].UpdatedAt, events[j].UpdatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(b)
		}
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// SegmentActivityType 片段事件的类型标签。
func SegmentActivityType(status string) string {
	switch status {
	case consts.SegmentStatusAvailable:
		return consts.ActivityProcessing
	case consts.SegmentStatusTranscribed, consts.SegmentStatusReviewed, consts.SegmentStatusRejected:
		return consts.ActivityVerification
	default:
		return consts.ActivityTranscription
	}
}

// AvailableSegments 返回全部 available 片段，最早创建的在前，即分配队列的顺序。
func (e *Engine) AvailableSegments(ctx context.Context) ([]*entity.AudioSegment, error) {
	return e.store.ListSegments(ctx, model.SegmentQuery{Statuses: []string{consts.SegmentStatusAvailable}})
}

func (e *Engine) user(ctx context.Context, id int64) (*entity.User, error) {
	u, err := e.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, gerror.NewCodef(consts.CodeNotFound, "User %d not found", id)
	}
	return u, nil
}
