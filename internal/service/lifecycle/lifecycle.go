// Package lifecycle 负责片段状态机：分配、提交转写、审核都必须经过这里的校验。
package lifecycle

import (
	"context"
	"strings"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/util/gconv"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model"
	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/store"
)

type Service struct {
	store       store.Store
	batchRating int
}

// New 创建生命周期服务。batchRating 为批量通过时使用的评分，超出 1-5 时回退到 consts.DefaultBatchRating。
func New(s store.Store, batchRating int) *Service {
	if batchRating < consts.MinRating || batchRating > consts.MaxRating {
		batchRating = consts.DefaultBatchRating
	}
	return &Service{store: s, batchRating: batchRating}
}

// Assign 将一个 available 片段分配给 userId。
func (s *Service) Assign(ctx context.Context, actorId, segmentId, userId int64) (*entity.AudioSegment, error) {
	actor, assignee, err := s.assignmentParties(ctx, actorId, userId)
	if err != nil {
		return nil, err
	}
	return s.assign(ctx, actor, segmentId, assignee.Id)
}

// BulkAssign 逐个分配片段，每个片段单独校验。
// 不存在或已不是 available 的片段记入 Failed，其余照常分配。
func (s *Service) BulkAssign(ctx context.Context, actorId int64, segmentIds []int64, userId int64) (*model.BatchResult, error) {
	actor, assignee, err := s.assignmentParties(ctx, actorId, userId)
	if err != nil {
		return nil, err
	}
	res := &model.BatchResult{Succeeded: []int64{}, Failed: []model.BatchFailure{}}
	for _, id := range segmentIds {
		if _, err := s.assign(ctx, actor, id, assignee.Id); err != nil {
			res.Fail(id, err)
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	g.Log().Infof(ctx, "bulk assign to user %d: %d succeeded, %d failed", userId, len(res.Succeeded), len(res.Failed))
	return res, nil
}

func (s *Service) assignmentParties(ctx context.Context, actorId, userId int64) (actor, assignee *entity.User, err error) {
	if actor, err = s.requireUser(ctx, actorId); err != nil {
		return nil, nil, err
	}
	if !consts.IsReviewerRole(actor.Role) {
		return nil, nil, gerror.NewCodef(consts.CodePreconditionFailed, "Assignment requires reviewer or admin role, user %d is %s", actor.Id, actor.Role)
	}
	if assignee, err = s.requireUser(ctx, userId); err != nil {
		return nil, nil, err
	}
	return actor, assignee, nil
}

func (s *Service) assign(ctx context.Context, actor *entity.User, segmentId, userId int64) (*entity.AudioSegment, error) {
	seg, err := s.requireSegment(ctx, segmentId)
	if err != nil {
		return nil, err
	}
	if !Allowed(ActionAssign, seg.Status) {
		return nil, gerror.NewCodef(consts.CodePreconditionFailed, "Segment is not available (status: %s)", seg.Status)
	}
	if err = s.move(ctx, seg, ActionAssign, actor.Id, model.SegmentUpdate{AssignedTo: gconv.PtrInt64(userId)}, nil); err != nil {
		return nil, err
	}
	return s.store.GetSegment(ctx, segmentId)
}

// AssignReviewer 为 transcribed 片段指定审核人，不改变片段状态。
func (s *Service) AssignReviewer(ctx context.Context, actorId int64, segmentIds []int64, reviewerId int64) (*model.BatchResult, error) {
	_, reviewer, err := s.assignmentParties(ctx, actorId, reviewerId)
	if err != nil {
		return nil, err
	}
	if !consts.IsReviewerRole(reviewer.Role) {
		return nil, gerror.NewCodef(consts.CodePreconditionFailed, "User %d cannot review, role is %s", reviewer.Id, reviewer.Role)
	}
	res := &model.BatchResult{Succeeded: []int64{}, Failed: []model.BatchFailure{}}
	for _, id := range segmentIds {
		seg, err := s.requireSegment(ctx, id)
		if err != nil {
			res.Fail(id, err)
			continue
		}
		ok, err := s.store.UpdateSegmentIf(ctx, id, []string{consts.SegmentStatusTranscribed}, model.SegmentUpdate{
			ReviewedBy: gconv.PtrInt64(reviewer.Id),
		})
		if err != nil {
			res.Fail(id, err)
			continue
		}
		if !ok {
			res.Fail(id, gerror.NewCodef(consts.CodePreconditionFailed, "Segment is not awaiting review (status: %s)", seg.Status))
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	return res, nil
}

// Submit 创建或覆盖片段的转写内容，并将片段置为 transcribed。
func (s *Service) Submit(ctx context.Context, in model.SubmitInput) (*entity.Transcription, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, gerror.NewCode(consts.CodeInvalidParameter, "Transcription text is required")
	}
	submitter, err := s.requireUser(ctx, in.SubmitterId)
	if err != nil {
		return nil, err
	}
	seg, err := s.requireSegment(ctx, in.SegmentId)
	if err != nil {
		return nil, err
	}
	if !Allowed(ActionSubmit, seg.Status) {
		return nil, gerror.NewCodef(consts.CodePreconditionFailed, "Segment cannot be transcribed (status: %s)", seg.Status)
	}
	var (
		t     *entity.Transcription
		draft = &entity.Transcription{
			SegmentId: seg.Id,
			Text:      text,
			Notes:     strings.TrimSpace(in.Notes),
			Status:    consts.TranscriptionStatusPendingReview,
			CreatedBy: submitter.Id,
		}
	)
	// 片段状态与转写内容同一事务写入
	err = s.move(ctx, seg, ActionSubmit, submitter.Id, model.SegmentUpdate{
		TranscribedBy: gconv.PtrInt64(submitter.Id),
	}, func(from []string, u model.SegmentUpdate) (ok bool, err error) {
		t, ok, err = s.store.SubmitTranscription(ctx, draft, from, u)
		return ok, err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Review 审核通过或驳回一个 transcribed 片段的转写。
func (s *Service) Review(ctx context.Context, in model.ReviewInput) (*entity.Transcription, error) {
	reviewer, err := s.reviewer(ctx, in.ReviewerId)
	if err != nil {
		return nil, err
	}
	return s.review(ctx, reviewer, in)
}

// BatchReview 对每个片段独立执行相同的审核决定，批量通过使用配置的默认评分。
func (s *Service) BatchReview(ctx context.Context, reviewerId int64, segmentIds []int64, decision, notes string) (*model.BatchResult, error) {
	reviewer, err := s.reviewer(ctx, reviewerId)
	if err != nil {
		return nil, err
	}
	res := &model.BatchResult{Succeeded: []int64{}, Failed: []model.BatchFailure{}}
	for _, id := range segmentIds {
		in := model.ReviewInput{
			SegmentId:  id,
			Decision:   decision,
			Notes:      notes,
			ReviewerId: reviewer.Id,
		}
		if decision == consts.DecisionApprove {
			in.Rating = s.batchRating
		}
		if _, err := s.review(ctx, reviewer, in); err != nil {
			res.Fail(id, err)
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	g.Log().Infof(ctx, "batch %s by user %d: %d succeeded, %d failed", decision, reviewer.Id, len(res.Succeeded), len(res.Failed))
	return res, nil
}

func (s *Service) reviewer(ctx context.Context, reviewerId int64) (*entity.User, error) {
	reviewer, err := s.requireUser(ctx, reviewerId)
	if err != nil {
		return nil, err
	}
	if !consts.IsReviewerRole(reviewer.Role) {
		return nil, gerror.NewCodef(consts.CodePreconditionFailed, "Review requires reviewer or admin role, user %d is %s", reviewer.Id, reviewer.Role)
	}
	return reviewer, nil
}

func (s *Service) review(ctx context.Context, reviewer *entity.User, in model.ReviewInput) (*entity.Transcription, error) {
	var (
		action Action
		update = model.TranscriptionUpdate{ReviewedBy: gconv.PtrInt64(reviewer.Id)}
		notes  = strings.TrimSpace(in.Notes)
	)
	switch in.Decision {
	case consts.DecisionApprove:
		action = ActionApprove
		update.Status = consts.TranscriptionStatusApproved
		update.Rating = gconv.PtrInt(in.Rating)
		if notes != "" {
			update.ReviewNotes = gconv.PtrString(notes)
		}
	case consts.DecisionReject:
		action = ActionReject
		update.Status = consts.TranscriptionStatusRejected
		update.ReviewNotes = gconv.PtrString(notes)
	default:
		return nil, gerror.NewCodef(consts.CodeInvalidParameter, "Unknown review decision %q", in.Decision)
	}

	seg, err := s.requireSegment(ctx, in.SegmentId)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTranscriptionBySegment(ctx, seg.Id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, gerror.NewCode(consts.CodeNotFound, "Transcription not found for this segment")
	}
	if action == ActionApprove && (in.Rating < consts.MinRating || in.Rating > consts.MaxRating) {
		return nil, gerror.NewCodef(consts.CodePreconditionFailed, "A rating between %d and %d is required to approve", consts.MinRating, consts.MaxRating)
	}
	if action == ActionReject && notes == "" {
		return nil, gerror.NewCode(consts.CodePreconditionFailed, "Review notes are required to reject")
	}
	if !Allowed(action, seg.Status) {
		return nil, gerror.NewCodef(consts.CodePreconditionFailed, "Segment is not awaiting review (status: %s)", seg.Status)
	}

	// t 是本次审核看到的内容，期间被重新提交则整体失败
	err = s.move(ctx, seg, action, reviewer.Id, model.SegmentUpdate{
		ReviewedBy: gconv.PtrInt64(reviewer.Id),
	}, func(from []string, u model.SegmentUpdate) (bool, error) {
		return s.store.ReviewTranscription(ctx, t, from, u, update)
	})
	if err != nil {
		return nil, err
	}
	return s.store.GetTranscriptionBySegment(ctx, seg.Id)
}

// swapFunc 以 from 为合法源状态执行片段更新，可连同其他写入在同一事务内完成。
type swapFunc func(from []string, u model.SegmentUpdate) (bool, error)

// move 以合法源状态做 compare-and-swap 更新片段，成功后才写入状态流转记录。
// swap 为 nil 时只更新片段。
func (s *Service) move(ctx context.Context, seg *entity.AudioSegment, action Action, actorId int64, u model.SegmentUpdate, swap swapFunc) error {
	u.Status = Target(action)
	if swap == nil {
		swap = func(from []string, u model.SegmentUpdate) (bool, error) {
			return s.store.UpdateSegmentIf(ctx, seg.Id, from, u)
		}
	}
	ok, err := swap(Sources(action), u)
	if err != nil {
		if gerror.Code(err) == consts.CodePreconditionFailed {
			return err
		}
		return gerror.Wrapf(err, "%s segment %d", action, seg.Id)
	}
	if !ok {
		current, _ := s.store.GetSegment(ctx, seg.Id)
		status := seg.Status
		if current != nil {
			status = current.Status
		}
		if action == ActionAssign {
			return gerror.NewCodef(consts.CodePreconditionFailed, "Segment is not available (status: %s)", status)
		}
		return gerror.NewCodef(consts.CodePreconditionFailed, "Segment status changed to %s before %s", status, action)
	}
	if err = s.store.AppendTransition(ctx, &entity.SegmentTransition{
		SegmentId:  seg.Id,
		FromStatus: seg.Status,
		ToStatus:   u.Status,
		Action:     string(action),
		ActorId:    actorId,
	}); err != nil {
		g.Log().Warningf(ctx, "record transition of segment %d failed: %v", seg.Id, err)
	}
	return nil
}

// Detail 返回片段及其转写。
func (s *Service) Detail(ctx context.Context, segmentId int64) (*model.SegmentDetail, error) {
	seg, err := s.requireSegment(ctx, segmentId)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTranscriptionBySegment(ctx, segmentId)
	if err != nil {
		return nil, err
	}
	return &model.SegmentDetail{Segment: seg, Transcription: t}, nil
}

// History 返回片段的状态流转记录，按时间正序。
func (s *Service) History(ctx context.Context, segmentId int64) ([]*entity.SegmentTransition, error) {
	if _, err := s.requireSegment(ctx, segmentId); err != nil {
		return nil, err
	}
	return s.store.ListTransitions(ctx, segmentId)
}

func (s *Service) requireUser(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, gerror.NewCodef(consts.CodeNotFound, "User %d not found", id)
	}
	return u, nil
}

func (s *Service) requireSegment(ctx context.Context, id int64) (*entity.AudioSegment, error) {
	seg, err := s.store.GetSegment(ctx, id)
	if err != nil {
		return nil, err
	}
	if seg == nil {
		return nil, gerror.NewCodef(consts.CodeNotFound, "Segment %d not found", id)
	}
	return seg, nil
}
