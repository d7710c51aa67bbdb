package lifecycle_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/test/gtest"
	"github.com/gogf/gf/v2/util/gconv"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model"
	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/service/lifecycle"
	"transcription-hub/internal/store"
)

type fixture struct {
	store       *store.Memory
	svc         *lifecycle.Service
	admin       int64
	reviewer    int64
	transcriber int64
	segments    []int64
}

func newFixture(t *gtest.T, segments int) *fixture {
	ctx := context.Background()
	f := &fixture{store: store.NewMemory()}
	f.svc = lifecycle.New(f.store, 0)
	for _, u := range []struct {
		name string
		role string
		id   *int64
	}{
		{"root", consts.RoleAdmin, &f.admin},
		{"rita", consts.RoleReviewer, &f.reviewer},
		{"tom", consts.RoleTranscriber, &f.transcriber},
	} {
		id, err := f.store.CreateUser(ctx, &entity.User{Username: u.name, Role: u.role})
		t.AssertNil(err)
		*u.id = id
	}
	fileID, err := f.store.CreateAudioFile(ctx, &entity.AudioFile{Filename: "meeting.wav", Status: consts.FileStatusProcessed})
	t.AssertNil(err)
	for i := 0; i < segments; i++ {
		id, err := f.store.CreateSegment(ctx, &entity.AudioSegment{
			AudioFileId: fileID,
			SegmentPath: "segment_" + gconv.String(i) + ".wav",
			StartTime:   float64(i * 2000),
			EndTime:     float64(i*2000 + 1500),
			Duration:    1500,
			Status:      consts.SegmentStatusAvailable,
		})
		t.AssertNil(err)
		f.segments = append(f.segments, id)
	}
	return f
}

func (f *fixture) submit(t *gtest.T, segmentId int64, text string) {
	_, err := f.svc.Submit(context.Background(), model.SubmitInput{
		SegmentId:   segmentId,
		Text:        text,
		SubmitterId: f.transcriber,
	})
	t.AssertNil(err)
}

func (f *fixture) status(t *gtest.T, segmentId int64) string {
	seg, err := f.store.GetSegment(context.Background(), segmentId)
	t.AssertNil(err)
	return seg.Status
}

func Test_Assign(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 1)
		seg, err := f.svc.Assign(ctx, f.reviewer, f.segments[0], f.transcriber)
		t.AssertNil(err)
		t.Assert(seg.Status, consts.SegmentStatusAssigned)
		t.Assert(seg.AssignedTo, f.transcriber)

		_, err = f.svc.Assign(ctx, f.reviewer, f.segments[0], f.admin)
		t.AssertNE(err, nil)
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)
		t.Assert(strings.Contains(err.Error(), "not available"), true)

		seg, _ = f.store.GetSegment(ctx, f.segments[0])
		t.Assert(seg.AssignedTo, f.transcriber)
	})
}

func Test_Assign_Guards(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 1)

		_, err := f.svc.Assign(ctx, f.transcriber, f.segments[0], f.transcriber)
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)

		_, err = f.svc.Assign(ctx, f.reviewer, 404, f.transcriber)
		t.Assert(gerror.Code(err), consts.CodeNotFound)

		_, err = f.svc.Assign(ctx, f.reviewer, f.segments[0], 404)
		t.Assert(gerror.Code(err), consts.CodeNotFound)

		t.Assert(f.status(t, f.segments[0]), consts.SegmentStatusAvailable)
	})
}

func Test_BulkAssign_PartialSuccess(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 3)
		_, err := f.svc.Assign(ctx, f.admin, f.segments[1], f.admin)
		t.AssertNil(err)

		res, err := f.svc.BulkAssign(ctx, f.reviewer, f.segments, f.transcriber)
		t.AssertNil(err)
		t.Assert(res.Succeeded, []int64{f.segments[0], f.segments[2]})
		t.Assert(len(res.Failed), 1)
		t.Assert(res.Failed[0].Id, f.segments[1])
		t.Assert(strings.Contains(res.Failed[0].Reason, "not available"), true)

		seg, _ := f.store.GetSegment(ctx, f.segments[1])
		t.Assert(seg.AssignedTo, f.admin)
	})
}

func Test_ConcurrentAssign_SingleWinner(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 1)
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins []int64
		)
		for _, user := range []int64{f.admin, f.reviewer, f.transcriber} {
			wg.Add(1)
			go func(user int64) {
				defer wg.Done()
				if _, err := f.svc.Assign(ctx, f.admin, f.segments[0], user); err == nil {
					mu.Lock()
					wins = append(wins, user)
					mu.Unlock()
				}
			}(user)
		}
		wg.Wait()
		t.Assert(len(wins), 1)
		seg, _ := f.store.GetSegment(ctx, f.segments[0])
		t.Assert(seg.AssignedTo, wins[0])
	})
}

func Test_Submit(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 1)
		_, err := f.svc.Assign(ctx, f.reviewer, f.segments[0], f.transcriber)
		t.AssertNil(err)

		tr, err := f.svc.Submit(ctx, model.SubmitInput{
			SegmentId:   f.segments[0],
			Text:        "  good morning everyone ",
			Notes:       "speaker two is faint",
			SubmitterId: f.transcriber,
		})
		t.AssertNil(err)
		t.Assert(tr.Text, "good morning everyone")
		t.Assert(tr.Status, consts.TranscriptionStatusPendingReview)

		seg, _ := f.store.GetSegment(ctx, f.segments[0])
		t.Assert(seg.Status, consts.SegmentStatusTranscribed)
		t.Assert(seg.TranscribedBy, f.transcriber)
		t.Assert(seg.AssignedTo, f.transcriber)
	})
}

func Test_Submit_IsIdempotent(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 1)
		f.submit(t, f.segments[0], "first draft")
		f.submit(t, f.segments[0], "second draft")

		list, err := f.store.ListTranscriptions(ctx, model.TranscriptionQuery{})
		t.AssertNil(err)
		t.Assert(len(list), 1)
		t.Assert(list[0].Text, "second draft")
		t.Assert(f.status(t, f.segments[0]), consts.SegmentStatusTranscribed)
	})
}

func Test_Submit_Guards(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 1)

		_, err := f.svc.Submit(ctx, model.SubmitInput{SegmentId: f.segments[0], Text: "   ", SubmitterId: f.transcriber})
		t.Assert(gerror.Code(err), consts.CodeInvalidParameter)

		_, err = f.svc.Submit(ctx, model.SubmitInput{SegmentId: 404, Text: "hi", SubmitterId: f.transcriber})
		t.Assert(gerror.Code(err), consts.CodeNotFound)

		f.submit(t, f.segments[0], "hello")
		_, err = f.svc.Review(ctx, model.ReviewInput{
			SegmentId: f.segments[0], Decision: consts.DecisionApprove, Rating: 5, ReviewerId: f.reviewer,
		})
		t.AssertNil(err)

		_, err = f.svc.Submit(ctx, model.SubmitInput{SegmentId: f.segments[0], Text: "late edit", SubmitterId: f.transcriber})
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)
		tr, _ := f.store.GetTranscriptionBySegment(ctx, f.segments[0])
		t.Assert(tr.Text, "hello")
	})
}

func Test_Review_Approve(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 1)
		f.submit(t, f.segments[0], "hello")

		tr, err := f.svc.Review(ctx, model.ReviewInput{
			SegmentId:  f.segments[0],
			Decision:   consts.DecisionApprove,
			Rating:     4,
			ReviewerId: f.reviewer,
		})
		t.AssertNil(err)
		t.Assert(tr.Status, consts.TranscriptionStatusApproved)
		t.Assert(tr.Rating, 4)
		t.Assert(tr.ReviewedBy, f.reviewer)

		seg, _ := f.store.GetSegment(ctx, f.segments[0])
		t.Assert(seg.Status, consts.SegmentStatusReviewed)
		t.Assert(seg.ReviewedBy, f.reviewer)
	})
}

func Test_Review_RejectThenResubmit(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 1)
		f.submit(t, f.segments[0], "helo")

		_, err := f.svc.Review(ctx, model.ReviewInput{
			SegmentId: f.segments[0], Decision: consts.DecisionReject, ReviewerId: f.reviewer,
		})
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)
		t.Assert(f.status(t, f.segments[0]), consts.SegmentStatusTranscribed)

		tr, err := f.svc.Review(ctx, model.ReviewInput{
			SegmentId: f.segments[0], Decision: consts.DecisionReject, Notes: "spelling", ReviewerId: f.reviewer,
		})
		t.AssertNil(err)
		t.Assert(tr.Status, consts.TranscriptionStatusRejected)
		t.Assert(tr.ReviewNotes, "spelling")
		t.Assert(f.status(t, f.segments[0]), consts.SegmentStatusRejected)

		f.submit(t, f.segments[0], "hello")
		tr, _ = f.store.GetTranscriptionBySegment(ctx, f.segments[0])
		t.Assert(tr.Status, consts.TranscriptionStatusPendingReview)
		t.Assert(f.status(t, f.segments[0]), consts.SegmentStatusTranscribed)
	})
}

func Test_Review_Guards(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 2)
		f.submit(t, f.segments[0], "hello")

		_, err := f.svc.Review(ctx, model.ReviewInput{
			SegmentId: f.segments[0], Decision: consts.DecisionApprove, Rating: 5, ReviewerId: f.transcriber,
		})
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)

		_, err = f.svc.Review(ctx, model.ReviewInput{
			SegmentId: f.segments[0], Decision: consts.DecisionApprove, Rating: 0, ReviewerId: f.reviewer,
		})
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)

		_, err = f.svc.Review(ctx, model.ReviewInput{
			SegmentId: f.segments[0], Decision: "maybe", Rating: 3, ReviewerId: f.reviewer,
		})
		t.Assert(gerror.Code(err), consts.CodeInvalidParameter)

		_, err = f.svc.Review(ctx, model.ReviewInput{
			SegmentId: f.segments[1], Decision: consts.DecisionApprove, Rating: 3, ReviewerId: f.reviewer,
		})
		t.Assert(gerror.Code(err), consts.CodeNotFound)
		t.Assert(err.Error(), "Transcription not found for this segment")

		t.Assert(f.status(t, f.segments[0]), consts.SegmentStatusTranscribed)
		t.Assert(f.status(t, f.segments[1]), consts.SegmentStatusAvailable)
	})
}

func Test_BatchReview_PartialSuccess(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 3)
		f.submit(t, f.segments[0], "one")
		f.submit(t, f.segments[2], "three")

		res, err := f.svc.BatchReview(ctx, f.reviewer, f.segments, consts.DecisionApprove, "")
		t.AssertNil(err)
		t.Assert(res.Succeeded, []int64{f.segments[0], f.segments[2]})
		t.Assert(len(res.Failed), 1)
		t.Assert(res.Failed[0].Id, f.segments[1])
		t.Assert(res.Failed[0].Reason, "Transcription not found for this segment")

		for _, id := range []int64{f.segments[0], f.segments[2]} {
			t.Assert(f.status(t, id), consts.SegmentStatusReviewed)
			tr, _ := f.store.GetTranscriptionBySegment(ctx, id)
			t.Assert(tr.Rating, consts.DefaultBatchRating)
		}
		t.Assert(f.status(t, f.segments[1]), consts.SegmentStatusAvailable)
	})
}

func Test_BatchReview_Reject(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 2)
		f.submit(t, f.segments[0], "one")
		f.submit(t, f.segments[1], "two")

		res, err := f.svc.BatchReview(ctx, f.admin, f.segments, consts.DecisionReject, "redo with timestamps")
		t.AssertNil(err)
		t.Assert(len(res.Succeeded), 2)
		t.Assert(len(res.Failed), 0)

		_, err = f.svc.BatchReview(ctx, f.transcriber, f.segments, consts.DecisionReject, "x")
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)
	})
}

func Test_AssignReviewer(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 2)
		f.submit(t, f.segments[0], "one")

		res, err := f.svc.AssignReviewer(ctx, f.admin, f.segments, f.reviewer)
		t.AssertNil(err)
		t.Assert(res.Succeeded, []int64{f.segments[0]})
		t.Assert(len(res.Failed), 1)

		seg, _ := f.store.GetSegment(ctx, f.segments[0])
		t.Assert(seg.Status, consts.SegmentStatusTranscribed)
		t.Assert(seg.ReviewedBy, f.reviewer)

		_, err = f.svc.AssignReviewer(ctx, f.admin, f.segments, f.transcriber)
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)
	})
}

func Test_HistoryOnlyHoldsLegalEdges(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f := newFixture(t, 3)
		_, _ = f.svc.BulkAssign(ctx, f.reviewer, f.segments, f.transcriber)
		_, _ = f.svc.BulkAssign(ctx, f.reviewer, f.segments, f.admin)
		f.submit(t, f.segments[0], "a")
		f.submit(t, f.segments[0], "a, edited")
		f.submit(t, f.segments[1], "b")
		_, _ = f.svc.BatchReview(ctx, f.reviewer, f.segments[:1], consts.DecisionApprove, "")
		_, _ = f.svc.BatchReview(ctx, f.reviewer, f.segments, consts.DecisionReject, "again")
		f.submit(t, f.segments[1], "b2")

		all, err := f.store.ListTransitions(ctx, 0)
		t.AssertNil(err)
		t.AssertGT(len(all), 0)
		for _, tr := range all {
			t.Assert(lifecycle.IsEdge(tr.FromStatus, tr.ToStatus), true)
		}

		history, err := f.svc.History(ctx, f.segments[1])
		t.AssertNil(err)
		steps := make([]string, 0, len(history))
		for _, tr := range history {
			steps = append(steps, tr.Action)
		}
		t.Assert(steps, []string{"assign", "submit", "reject", "submit"})

		_, err = f.svc.History(ctx, 404)
		t.Assert(gerror.Code(err), consts.CodeNotFound)
	})
}

func Test_Transitions(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		t.Assert(lifecycle.Allowed(lifecycle.ActionAssign, consts.SegmentStatusAvailable), true)
		t.Assert(lifecycle.Allowed(lifecycle.ActionAssign, consts.SegmentStatusAssigned), false)
		t.Assert(lifecycle.Allowed(lifecycle.ActionSubmit, consts.SegmentStatusReviewed), false)
		t.Assert(lifecycle.Allowed(lifecycle.ActionApprove, consts.SegmentStatusRejected), false)
		t.Assert(lifecycle.Allowed("merge", consts.SegmentStatusAvailable), false)
		t.Assert(lifecycle.IsEdge(consts.SegmentStatusReviewed, consts.SegmentStatusAvailable), false)
		t.Assert(lifecycle.IsEdge(consts.SegmentStatusRejected, consts.SegmentStatusTranscribed), true)
		for _, status := range lifecycle.SegmentStatuses {
			t.Assert(lifecycle.IsEdge(status, consts.SegmentStatusAvailable), false)
		}
	})
}

// hookedStore 在组合写入之前插入一次并发操作或故障。
type hookedStore struct {
	*store.Memory
	submitErr    error
	beforeSubmit func()
	beforeReview func()
}

func (h *hookedStore) SubmitTranscription(ctx context.Context, t *entity.Transcription, from []string, u model.SegmentUpdate) (*entity.Transcription, bool, error) {
	if fn := h.beforeSubmit; fn != nil {
		h.beforeSubmit = nil
		fn()
	}
	if h.submitErr != nil {
		return nil, false, h.submitErr
	}
	return h.Memory.SubmitTranscription(ctx, t, from, u)
}

func (h *hookedStore) ReviewTranscription(ctx context.Context, seen *entity.Transcription, from []string, u model.SegmentUpdate, tu model.TranscriptionUpdate) (bool, error) {
	if fn := h.beforeReview; fn != nil {
		h.beforeReview = nil
		fn()
	}
	return h.Memory.ReviewTranscription(ctx, seen, from, u, tu)
}

func hooked(t *gtest.T) (*fixture, *hookedStore) {
	f := newFixture(t, 1)
	h := &hookedStore{Memory: f.store}
	f.svc = lifecycle.New(h, 0)
	return f, h
}

func Test_Submit_FailedWriteLeavesSegmentUntouched(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f, h := hooked(t)
		h.submitErr = gerror.NewCode(consts.CodeDbOperationError, "disk full")

		_, err := f.svc.Submit(ctx, model.SubmitInput{SegmentId: f.segments[0], Text: "hello", SubmitterId: f.transcriber})
		t.AssertNE(err, nil)
		t.Assert(gerror.Code(err), consts.CodeDbOperationError)

		t.Assert(f.status(t, f.segments[0]), consts.SegmentStatusAvailable)
		tr, err := f.store.GetTranscriptionBySegment(ctx, f.segments[0])
		t.AssertNil(err)
		t.AssertNil(tr)
		history, err := f.store.ListTransitions(ctx, f.segments[0])
		t.AssertNil(err)
		t.Assert(len(history), 0)
	})
}

func Test_Submit_LosesToConcurrentApproval(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f, h := hooked(t)
		f.submit(t, f.segments[0], "v1")

		// 重新提交校验通过后、写入之前，审核员先完成了通过
		h.beforeSubmit = func() {
			_, err := f.svc.Review(ctx, model.ReviewInput{
				SegmentId:  f.segments[0],
				Decision:   consts.DecisionApprove,
				Rating:     4,
				ReviewerId: f.reviewer,
			})
			t.AssertNil(err)
		}
		_, err := f.svc.Submit(ctx, model.SubmitInput{SegmentId: f.segments[0], Text: "v2 unreviewed", SubmitterId: f.transcriber})
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)

		t.Assert(f.status(t, f.segments[0]), consts.SegmentStatusReviewed)
		tr, err := f.store.GetTranscriptionBySegment(ctx, f.segments[0])
		t.AssertNil(err)
		t.Assert(tr.Status, consts.TranscriptionStatusApproved)
		t.Assert(tr.Text, "v1")
		t.Assert(tr.Rating, 4)
		history, _ := f.store.ListTransitions(ctx, f.segments[0])
		t.Assert(len(history), 2)
	})
}

func Test_Review_FailsWhenTextChangedMeanwhile(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		f, h := hooked(t)
		f.submit(t, f.segments[0], "v1")

		h.beforeReview = func() {
			f.submit(t, f.segments[0], "v2")
		}
		_, err := f.svc.Review(ctx, model.ReviewInput{
			SegmentId:  f.segments[0],
			Decision:   consts.DecisionApprove,
			Rating:     5,
			ReviewerId: f.reviewer,
		})
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)
		t.Assert(err.Error(), store.TranscriptionChangedMessage)

		t.Assert(f.status(t, f.segments[0]), consts.SegmentStatusTranscribed)
		tr, err := f.store.GetTranscriptionBySegment(ctx, f.segments[0])
		t.AssertNil(err)
		t.Assert(tr.Status, consts.TranscriptionStatusPendingReview)
		t.Assert(tr.Text, "v2")
		t.Assert(tr.Rating, 0)
		t.Assert(tr.ReviewedBy, 0)
		history, _ := f.store.ListTransitions(ctx, f.segments[0])
		t.Assert(len(history), 2)
	})
}
