package store_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	_ "github.com/gogf/gf/contrib/drivers/sqlite/v2"
	"github.com/gogf/gf/v2/database/gdb"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/test/gtest"
	"github.com/gogf/gf/v2/util/gconv"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model"
	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/store"
)

func newSQLiteStore(t *testing.T) store.Store {
	_, s := openSQLite(t)
	return s
}

func openSQLite(t *testing.T) (gdb.DB, store.Store) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hub.sqlite3")
	db, err := gdb.New(gdb.ConfigNode{Link: "sqlite::@file(" + path + ")"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConnCount(1)
	t.Cleanup(func() { _ = db.Close(context.Background()) })
	if err := store.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db, store.NewDB(db)
}

func eachStore(t *testing.T, fn func(t *gtest.T, s store.Store)) {
	t.Run("memory", func(tt *testing.T) {
		gtest.C(tt, func(t *gtest.T) { fn(t, store.NewMemory()) })
	})
	t.Run("sqlite", func(tt *testing.T) {
		s := newSQLiteStore(tt)
		gtest.C(tt, func(t *gtest.T) { fn(t, s) })
	})
}

func seedFile(t *gtest.T, s store.Store, segments int) (*entity.AudioFile, []int64) {
	ctx := context.Background()
	fileID, err := s.CreateAudioFile(ctx, &entity.AudioFile{
		Filename:     "call.wav",
		OriginalPath: "/uploads/call.wav",
		Status:       consts.FileStatusProcessing,
	})
	t.AssertNil(err)
	ids := make([]int64, 0, segments)
	for i := 0; i < segments; i++ {
		id, err := s.CreateSegment(ctx, &entity.AudioSegment{
			AudioFileId: fileID,
			SegmentPath: gconv.String(i) + ".wav",
			StartTime:   float64(i * 1000),
			EndTime:     float64(i*1000 + 500),
			Duration:    500,
			Status:      consts.SegmentStatusAvailable,
		})
		t.AssertNil(err)
		ids = append(ids, id)
	}
	file, err := s.GetAudioFile(ctx, fileID)
	t.AssertNil(err)
	return file, ids
}

func Test_Store_UnknownIdentityIsNil(t *testing.T) {
	eachStore(t, func(t *gtest.T, s store.Store) {
		ctx := context.Background()
		user, err := s.GetUser(ctx, 99)
		t.AssertNil(err)
		t.AssertNil(user)
		seg, err := s.GetSegment(ctx, 99)
		t.AssertNil(err)
		t.AssertNil(seg)
		tr, err := s.GetTranscriptionBySegment(ctx, 99)
		t.AssertNil(err)
		t.AssertNil(tr)
		ok, err := s.UpdateSegmentIf(ctx, 99, nil, model.SegmentUpdate{Status: consts.SegmentStatusAssigned})
		t.AssertNil(err)
		t.Assert(ok, false)
	})
}

func Test_Store_AudioFileUpdate(t *testing.T) {
	eachStore(t, func(t *gtest.T, s store.Store) {
		ctx := context.Background()
		file, _ := seedFile(t, s, 0)
		t.AssertNE(file, nil)
		t.Assert(file.Status, consts.FileStatusProcessing)

		t.AssertNil(s.UpdateAudioFile(ctx, file.Id, model.AudioFileUpdate{
			SegmentCount: gconv.PtrInt(3),
			Duration:     gconv.PtrFloat64(4.5),
		}))
		got, err := s.GetAudioFile(ctx, file.Id)
		t.AssertNil(err)
		t.Assert(got.SegmentCount, 3)
		t.Assert(got.Duration, 4.5)
		t.Assert(got.Status, consts.FileStatusProcessing)

		t.AssertNil(s.UpdateAudioFile(ctx, file.Id, model.AudioFileUpdate{
			Status:       consts.FileStatusError,
			ErrorMessage: gconv.PtrString("corrupt audio"),
		}))
		got, _ = s.GetAudioFile(ctx, file.Id)
		t.Assert(got.Status, consts.FileStatusError)
		t.Assert(got.ErrorMessage, "corrupt audio")

		t.AssertNE(s.UpdateAudioFile(ctx, 404, model.AudioFileUpdate{Status: consts.FileStatusError}), nil)
	})
}

func Test_Store_SegmentsKeepCreationOrder(t *testing.T) {
	eachStore(t, func(t *gtest.T, s store.Store) {
		ctx := context.Background()
		file, ids := seedFile(t, s, 4)
		list, err := s.ListSegments(ctx, model.SegmentQuery{AudioFileId: file.Id})
		t.AssertNil(err)
		t.Assert(len(list), 4)
		for i, seg := range list {
			t.Assert(seg.Id, ids[i])
			t.Assert(seg.Status, consts.SegmentStatusAvailable)
			t.Assert(seg.AssignedTo, 0)
		}
	})
}

func Test_Store_UpdateSegmentIf(t *testing.T) {
	eachStore(t, func(t *gtest.T, s store.Store) {
		ctx := context.Background()
		_, ids := seedFile(t, s, 1)
		available := []string{consts.SegmentStatusAvailable}

		ok, err := s.UpdateSegmentIf(ctx, ids[0], available, model.SegmentUpdate{
			Status:     consts.SegmentStatusAssigned,
			AssignedTo: gconv.PtrInt64(7),
		})
		t.AssertNil(err)
		t.Assert(ok, true)

		ok, err = s.UpdateSegmentIf(ctx, ids[0], available, model.SegmentUpdate{
			Status:     consts.SegmentStatusAssigned,
			AssignedTo: gconv.PtrInt64(8),
		})
		t.AssertNil(err)
		t.Assert(ok, false)

		seg, _ := s.GetSegment(ctx, ids[0])
		t.Assert(seg.AssignedTo, 7)
		t.Assert(seg.Status, consts.SegmentStatusAssigned)

		mine, err := s.ListSegments(ctx, model.SegmentQuery{Involving: 7})
		t.AssertNil(err)
		t.Assert(len(mine), 1)
		none, err := s.ListSegments(ctx, model.SegmentQuery{Involving: 8})
		t.AssertNil(err)
		t.Assert(len(none), 0)
	})
}

func Test_Store_ConcurrentAssignHasOneWinner(t *testing.T) {
	eachStore(t, func(t *gtest.T, s store.Store) {
		ctx := context.Background()
		_, ids := seedFile(t, s, 1)
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 1; i <= 8; i++ {
			wg.Add(1)
			go func(user int64) {
				defer wg.Done()
				ok, err := s.UpdateSegmentIf(ctx, ids[0], []string{consts.SegmentStatusAvailable}, model.SegmentUpdate{
					Status:     consts.SegmentStatusAssigned,
					AssignedTo: gconv.PtrInt64(user),
				})
				if err == nil && ok {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}(int64(i))
		}
		wg.Wait()
		t.Assert(wins, 1)
	})
}

func Test_Store_SaveTranscriptionIsOnePerSegment(t *testing.T) {
	eachStore(t, func(t *gtest.T, s store.Store) {
		ctx := context.Background()
		_, ids := seedFile(t, s, 1)
		first, err := s.SaveTranscription(ctx, &entity.Transcription{
			SegmentId: ids[0],
			Text:      "hello",
			Status:    consts.TranscriptionStatusPendingReview,
			CreatedBy: 3,
		})
		t.AssertNil(err)
		second, err := s.SaveTranscription(ctx, &entity.Transcription{
			SegmentId: ids[0],
			Text:      "hello world",
			Notes:     "fixed typo",
			Status:    consts.TranscriptionStatusPendingReview,
			CreatedBy: 3,
		})
		t.AssertNil(err)
		t.Assert(second.Id, first.Id)
		t.Assert(second.Text, "hello world")
		t.Assert(second.Notes, "fixed typo")

		list, err := s.ListTranscriptions(ctx, model.TranscriptionQuery{})
		t.AssertNil(err)
		t.Assert(len(list), 1)

		t.AssertNil(s.UpdateTranscription(ctx, first.Id, model.TranscriptionUpdate{
			Status:     consts.TranscriptionStatusApproved,
			Rating:     gconv.PtrInt(4),
			ReviewedBy: gconv.PtrInt64(9),
		}))
		approved, err := s.ListTranscriptions(ctx, model.TranscriptionQuery{Status: consts.TranscriptionStatusApproved})
		t.AssertNil(err)
		t.Assert(len(approved), 1)
		t.Assert(approved[0].Rating, 4)
		t.Assert(approved[0].ReviewedBy, 9)

		reviewerView, err := s.ListTranscriptions(ctx, model.TranscriptionQuery{Involving: 9})
		t.AssertNil(err)
		t.Assert(len(reviewerView), 1)
	})
}

func Test_Store_UsersAndTransitions(t *testing.T) {
	eachStore(t, func(t *gtest.T, s store.Store) {
		ctx := context.Background()
		id, err := s.CreateUser(ctx, &entity.User{Username: "ana", Role: consts.RoleReviewer, FullName: "Ana"})
		t.AssertNil(err)
		_, err = s.CreateUser(ctx, &entity.User{Username: "ana", Role: consts.RoleAdmin})
		t.AssertNE(err, nil)

		user, err := s.GetUser(ctx, id)
		t.AssertNil(err)
		t.Assert(user.Role, consts.RoleReviewer)
		users, err := s.ListUsers(ctx)
		t.AssertNil(err)
		t.Assert(len(users), 1)

		t.AssertNil(s.AppendTransition(ctx, &entity.SegmentTransition{
			SegmentId: 1, FromStatus: consts.SegmentStatusAvailable, ToStatus: consts.SegmentStatusAssigned,
			Action: "assign", ActorId: id,
		}))
		history, err := s.ListTransitions(ctx, 1)
		t.AssertNil(err)
		t.Assert(len(history), 1)
		t.Assert(history[0].ToStatus, consts.SegmentStatusAssigned)
	})
}

func Test_Store_UpdateAudioFileIf(t *testing.T) {
	eachStore(t, func(t *gtest.T, s store.Store) {
		ctx := context.Background()
		file, _ := seedFile(t, s, 0)
		processing := []string{consts.FileStatusProcessing}

		ok, err := s.UpdateAudioFileIf(ctx, file.Id, processing, model.AudioFileUpdate{Status: consts.FileStatusCancelled})
		t.AssertNil(err)
		t.Assert(ok, true)

		ok, err = s.UpdateAudioFileIf(ctx, file.Id, processing, model.AudioFileUpdate{
			Status:       consts.FileStatusError,
			ErrorMessage: gconv.PtrString("corrupt audio"),
		})
		t.AssertNil(err)
		t.Assert(ok, false)
		got, _ := s.GetAudioFile(ctx, file.Id)
		t.Assert(got.Status, consts.FileStatusCancelled)
		t.Assert(got.ErrorMessage, "")

		ok, err = s.UpdateAudioFileIf(ctx, 404, processing, model.AudioFileUpdate{Status: consts.FileStatusError})
		t.AssertNil(err)
		t.Assert(ok, false)
	})
}

func Test_Store_SubmitTranscriptionMovesSegmentAndText(t *testing.T) {
	eachStore(t, func(t *gtest.T, s store.Store) {
		ctx := context.Background()
		_, ids := seedFile(t, s, 1)
		from := []string{consts.SegmentStatusAvailable, consts.SegmentStatusTranscribed}
		u := model.SegmentUpdate{Status: consts.SegmentStatusTranscribed, TranscribedBy: gconv.PtrInt64(7)}

		tr, ok, err := s.SubmitTranscription(ctx, &entity.Transcription{
			SegmentId: ids[0], Text: "v1", Status: consts.TranscriptionStatusPendingReview, CreatedBy: 7,
		}, from, u)
		t.AssertNil(err)
		t.Assert(ok, true)
		t.Assert(tr.Text, "v1")
		seg, _ := s.GetSegment(ctx, ids[0])
		t.Assert(seg.Status, consts.SegmentStatusTranscribed)
		t.Assert(seg.TranscribedBy, 7)

		// 源状态不符时两边都不写
		_, err = s.UpdateSegmentIf(ctx, ids[0], nil, model.SegmentUpdate{Status: consts.SegmentStatusReviewed})
		t.AssertNil(err)
		tr, ok, err = s.SubmitTranscription(ctx, &entity.Transcription{
			SegmentId: ids[0], Text: "v2", Status: consts.TranscriptionStatusPendingReview, CreatedBy: 8,
		}, from, u)
		t.AssertNil(err)
		t.Assert(ok, false)
		t.AssertNil(tr)
		got, _ := s.GetTranscriptionBySegment(ctx, ids[0])
		t.Assert(got.Text, "v1")
		t.Assert(got.CreatedBy, 7)
	})
}

func Test_Store_ReviewTranscriptionChecksText(t *testing.T) {
	eachStore(t, func(t *gtest.T, s store.Store) {
		ctx := context.Background()
		_, ids := seedFile(t, s, 1)
		transcribed := []string{consts.SegmentStatusTranscribed}
		seen, ok, err := s.SubmitTranscription(ctx, &entity.Transcription{
			SegmentId: ids[0], Text: "v1", Status: consts.TranscriptionStatusPendingReview, CreatedBy: 7,
		}, nil, model.SegmentUpdate{Status: consts.SegmentStatusTranscribed})
		t.AssertNil(err)
		t.Assert(ok, true)
		approve := model.TranscriptionUpdate{Status: consts.TranscriptionStatusApproved, Rating: gconv.PtrInt(5), ReviewedBy: gconv.PtrInt64(9)}
		reviewed := model.SegmentUpdate{Status: consts.SegmentStatusReviewed, ReviewedBy: gconv.PtrInt64(9)}

		// 审核开始后被重新提交
		_, err = s.SaveTranscription(ctx, &entity.Transcription{
			SegmentId: ids[0], Text: "v2", Status: consts.TranscriptionStatusPendingReview, CreatedBy: 7,
		})
		t.AssertNil(err)
		ok, err = s.ReviewTranscription(ctx, seen, transcribed, reviewed, approve)
		t.Assert(gerror.Code(err), consts.CodePreconditionFailed)
		t.Assert(ok, false)
		seg, _ := s.GetSegment(ctx, ids[0])
		t.Assert(seg.Status, consts.SegmentStatusTranscribed)
		t.Assert(seg.ReviewedBy, 0)
		got, _ := s.GetTranscriptionBySegment(ctx, ids[0])
		t.Assert(got.Status, consts.TranscriptionStatusPendingReview)
		t.Assert(got.Rating, 0)

		ok, err = s.ReviewTranscription(ctx, got, transcribed, reviewed, approve)
		t.AssertNil(err)
		t.Assert(ok, true)
		seg, _ = s.GetSegment(ctx, ids[0])
		t.Assert(seg.Status, consts.SegmentStatusReviewed)
		got, _ = s.GetTranscriptionBySegment(ctx, ids[0])
		t.Assert(got.Status, consts.TranscriptionStatusApproved)
		t.Assert(got.Text, "v2")
		t.Assert(got.Rating, 5)

		// 已审核的片段不能再次审核
		ok, err = s.ReviewTranscription(ctx, got, transcribed, reviewed, approve)
		t.AssertNil(err)
		t.Assert(ok, false)
	})
}

func Test_Store_SubmitTranscriptionRollsBack(t *testing.T) {
	db, s := openSQLite(t)
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		_, ids := seedFile(t, s, 1)
		_, err := db.Exec(ctx, "DROP TABLE transcription")
		t.AssertNil(err)

		_, ok, err := s.SubmitTranscription(ctx, &entity.Transcription{
			SegmentId: ids[0], Text: "hello", Status: consts.TranscriptionStatusPendingReview, CreatedBy: 7,
		}, []string{consts.SegmentStatusAvailable}, model.SegmentUpdate{Status: consts.SegmentStatusTranscribed})
		t.AssertNE(err, nil)
		t.Assert(ok, false)
		seg, err := s.GetSegment(ctx, ids[0])
		t.AssertNil(err)
		t.Assert(seg.Status, consts.SegmentStatusAvailable)
		t.Assert(seg.TranscribedBy, 0)
	})
}
