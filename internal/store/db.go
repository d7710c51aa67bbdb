package store

import (
	"context"
	"fmt"

	"github.com/gogf/gf/v2/database/gdb"
	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/dao"
	"transcription-hub/internal/model"
	"transcription-hub/internal/model/do"
	"transcription-hub/internal/model/entity"
)

// DB 基于 gdb 的 Store 实现，表名与列名取自 dao，created_at/updated_at 由 ORM 填充。
type DB struct {
	db gdb.DB
}

func NewDB(db gdb.DB) *DB {
	return &DB{db: db}
}

func (s *DB) model(ctx context.Context, table string) *gdb.Model {
	return s.db.Model(table).Safe().Ctx(ctx)
}

func (s *DB) CreateUser(ctx context.Context, user *entity.User) (int64, error) {
	id, err := s.model(ctx, dao.User.Table()).Data(do.User{
		Username: user.Username,
		Role:     user.Role,
		FullName: user.FullName,
	}).InsertAndGetId()
	if err != nil {
		return 0, gerror.WrapCode(gcode.CodeDbOperationError, err, "insert user")
	}
	return id, nil
}

func (s *DB) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	var user *entity.User
	if err := s.one(ctx, dao.User.Table(), dao.User.Columns().Id, id, &user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DB) ListUsers(ctx context.Context) ([]*entity.User, error) {
	var list []*entity.User
	err := s.all(s.model(ctx, dao.User.Table()).OrderAsc(dao.User.Columns().Id), &list)
	return list, err
}

func (s *DB) CreateAudioFile(ctx context.Context, file *entity.AudioFile) (int64, error) {
	data := do.AudioFile{
		Filename:     file.Filename,
		OriginalPath: file.OriginalPath,
		Status:       file.Status,
		SegmentCount: file.SegmentCount,
		Duration:     file.Duration,
		Size:         file.Size,
		UploadedBy:   file.UploadedBy,
	}
	if file.ProcessedDir != "" {
		data.ProcessedDir = file.ProcessedDir
	}
	id, err := s.model(ctx, dao.AudioFile.Table()).Data(data).InsertAndGetId()
	if err != nil {
		return 0, gerror.WrapCode(gcode.CodeDbOperationError, err, "insert audio file")
	}
	return id, nil
}

func (s *DB) GetAudioFile(ctx context.Context, id int64) (*entity.AudioFile, error) {
	var file *entity.AudioFile
	if err := s.one(ctx, dao.AudioFile.Table(), dao.AudioFile.Columns().Id, id, &file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *DB) ListAudioFiles(ctx context.Context, q model.AudioFileQuery) ([]*entity.AudioFile, error) {
	cols := dao.AudioFile.Columns()
	m := s.model(ctx, dao.AudioFile.Table())
	if q.Status != "" {
		m = m.Where(cols.Status, q.Status)
	}
	if q.UploadedBy != 0 {
		m = m.Where(cols.UploadedBy, q.UploadedBy)
	}
	var list []*entity.AudioFile
	err := s.all(m.OrderAsc(cols.Id), &list)
	return list, err
}

func (s *DB) UpdateAudioFile(ctx context.Context, id int64, u model.AudioFileUpdate) error {
	res, err := s.model(ctx, dao.AudioFile.Table()).
		Data(audioFileData(u)).
		Where(dao.AudioFile.Columns().Id, id).
		Update()
	if err != nil {
		return gerror.WrapCode(gcode.CodeDbOperationError, err, "update audio file")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return gerror.Newf("audio file %d does not exist", id)
	}
	return nil
}

func (s *DB) UpdateAudioFileIf(ctx context.Context, id int64, from []string, u model.AudioFileUpdate) (bool, error) {
	cols := dao.AudioFile.Columns()
	m := s.model(ctx, dao.AudioFile.Table()).Data(audioFileData(u)).Where(cols.Id, id)
	if len(from) > 0 {
		m = m.WhereIn(cols.Status, from)
	}
	res, err := m.Update()
	if err != nil {
		return false, gerror.WrapCode(gcode.CodeDbOperationError, err, "update audio file")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, gerror.WrapCode(gcode.CodeDbOperationError, err, "check audio file update")
	}
	return n > 0, nil
}

func audioFileData(u model.AudioFileUpdate) do.AudioFile {
	data := do.AudioFile{}
	if u.Status != "" {
		data.Status = u.Status
	}
	if u.ProcessedDir != nil {
		data.ProcessedDir = *u.ProcessedDir
	}
	if u.SegmentCount != nil {
		data.SegmentCount = *u.SegmentCount
	}
	if u.Duration != nil {
		data.Duration = *u.Duration
	}
	if u.ErrorMessage != nil {
		data.ErrorMessage = *u.ErrorMessage
	}
	return data
}

func (s *DB) CreateSegment(ctx context.Context, seg *entity.AudioSegment) (int64, error) {
	id, err := s.model(ctx, dao.AudioSegment.Table()).Data(do.AudioSegment{
		AudioFileId: seg.AudioFileId,
		SegmentPath: seg.SegmentPath,
		StartTime:   seg.StartTime,
		EndTime:     seg.EndTime,
		Duration:    seg.Duration,
		Status:      seg.Status,
	}).InsertAndGetId()
	if err != nil {
		return 0, gerror.WrapCode(gcode.CodeDbOperationError, err, "insert segment")
	}
	return id, nil
}

func (s *DB) GetSegment(ctx context.Context, id int64) (*entity.AudioSegment, error) {
	var seg *entity.AudioSegment
	if err := s.one(ctx, dao.AudioSegment.Table(), dao.AudioSegment.Columns().Id, id, &seg); err != nil {
		return nil, err
	}
	return seg, nil
}

func (s *DB) ListSegments(ctx context.Context, q model.SegmentQuery) ([]*entity.AudioSegment, error) {
	cols := dao.AudioSegment.Columns()
	m := s.model(ctx, dao.AudioSegment.Table())
	if q.AudioFileId != 0 {
		m = m.Where(cols.AudioFileId, q.AudioFileId)
	}
	if len(q.Statuses) > 0 {
		m = m.WhereIn(cols.Status, q.Statuses)
	}
	if q.AssignedTo != 0 {
		m = m.Where(cols.AssignedTo, q.AssignedTo)
	}
	if q.TranscribedBy != 0 {
		m = m.Where(cols.TranscribedBy, q.TranscribedBy)
	}
	if q.ReviewedBy != 0 {
		m = m.Where(cols.ReviewedBy, q.ReviewedBy)
	}
	if q.Involving != 0 {
		m = m.Where(
			fmt.Sprintf("(%s = ? OR %s = ? OR %s = ?)", cols.AssignedTo, cols.TranscribedBy, cols.ReviewedBy),
			q.Involving, q.Involving, q.Involving,
		)
	}
	var list []*entity.AudioSegment
	err := s.all(m.OrderAsc(cols.CreatedAt).OrderAsc(cols.Id), &list)
	return list, err
}

func (s *DB) UpdateSegmentIf(ctx context.Context, id int64, from []string, u model.SegmentUpdate) (bool, error) {
	return updateSegmentIf(s.model(ctx, dao.AudioSegment.Table()), id, from, u)
}

// updateSegmentIf 在 m（普通连接或事务）上执行片段状态的 compare-and-swap。
func updateSegmentIf(m *gdb.Model, id int64, from []string, u model.SegmentUpdate) (bool, error) {
	cols := dao.AudioSegment.Columns()
	data := do.AudioSegment{}
	if u.Status != "" {
		data.Status = u.Status
	}
	if u.AssignedTo != nil {
		data.AssignedTo = *u.AssignedTo
	}
	if u.TranscribedBy != nil {
		data.TranscribedBy = *u.TranscribedBy
	}
	if u.ReviewedBy != nil {
		data.ReviewedBy = *u.ReviewedBy
	}
	m = m.Data(data).Where(cols.Id, id)
	if len(from) > 0 {
		m = m.WhereIn(cols.Status, from)
	}
	res, err := m.Update()
	if err != nil {
		return false, gerror.WrapCode(gcode.CodeDbOperationError, err, "update segment")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, gerror.WrapCode(gcode.CodeDbOperationError, err, "check segment update")
	}
	return n > 0, nil
}

func (s *DB) SaveTranscription(ctx context.Context, t *entity.Transcription) (*entity.Transcription, error) {
	err := s.db.Transaction(ctx, func(ctx context.Context, tx gdb.TX) error {
		return saveTranscription(ctx, tx, t)
	})
	if err != nil {
		return nil, gerror.WrapCode(gcode.CodeDbOperationError, err, "save transcription")
	}
	return s.GetTranscriptionBySegment(ctx, t.SegmentId)
}

func (s *DB) SubmitTranscription(ctx context.Context, t *entity.Transcription, from []string, u model.SegmentUpdate) (*entity.Transcription, bool, error) {
	var moved bool
	err := s.db.Transaction(ctx, func(ctx context.Context, tx gdb.TX) (err error) {
		moved, err = updateSegmentIf(tx.Model(dao.AudioSegment.Table()).Ctx(ctx), t.SegmentId, from, u)
		if err != nil || !moved {
			return err
		}
		return saveTranscription(ctx, tx, t)
	})
	if err != nil {
		return nil, false, gerror.WrapCode(gcode.CodeDbOperationError, err, "submit transcription")
	}
	if !moved {
		return nil, false, nil
	}
	saved, err := s.GetTranscriptionBySegment(ctx, t.SegmentId)
	return saved, true, err
}

func (s *DB) ReviewTranscription(ctx context.Context, seen *entity.Transcription, from []string, u model.SegmentUpdate, tu model.TranscriptionUpdate) (bool, error) {
	cols := dao.Transcription.Columns()
	var moved bool
	err := s.db.Transaction(ctx, func(ctx context.Context, tx gdb.TX) (err error) {
		moved, err = updateSegmentIf(tx.Model(dao.AudioSegment.Table()).Ctx(ctx), seen.SegmentId, from, u)
		if err != nil || !moved {
			return err
		}
		// 片段行已在本事务内更新，并发提交要么先于此处提交、要么等待本事务结束
		res, err := tx.Model(dao.Transcription.Table()).Ctx(ctx).
			Data(transcriptionData(tu)).
			Where(cols.Id, seen.Id).
			Where(cols.Text, seen.Text).
			Update()
		if err != nil {
			return gerror.WrapCode(gcode.CodeDbOperationError, err, "update transcription")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return gerror.NewCode(consts.CodePreconditionFailed, TranscriptionChangedMessage)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return moved, nil
}

// saveTranscription 在事务内按片段新建或覆盖转写。
func saveTranscription(ctx context.Context, tx gdb.TX, t *entity.Transcription) error {
	cols := dao.Transcription.Columns()
	existing, err := tx.Model(dao.Transcription.Table()).Ctx(ctx).Where(cols.SegmentId, t.SegmentId).One()
	if err != nil {
		return err
	}
	if existing.IsEmpty() {
		_, err = tx.Model(dao.Transcription.Table()).Ctx(ctx).Data(do.Transcription{
			SegmentId: t.SegmentId,
			Text:      t.Text,
			Notes:     t.Notes,
			Status:    t.Status,
			CreatedBy: t.CreatedBy,
		}).Insert()
		return err
	}
	_, err = tx.Model(dao.Transcription.Table()).Ctx(ctx).Data(do.Transcription{
		Text:      t.Text,
		Notes:     t.Notes,
		Status:    t.Status,
		CreatedBy: t.CreatedBy,
	}).Where(cols.SegmentId, t.SegmentId).Update()
	return err
}

func (s *DB) GetTranscriptionBySegment(ctx context.Context, segmentId int64) (*entity.Transcription, error) {
	var t *entity.Transcription
	if err := s.one(ctx, dao.Transcription.Table(), dao.Transcription.Columns().SegmentId, segmentId, &t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *DB) ListTranscriptions(ctx context.Context, q model.TranscriptionQuery) ([]*entity.Transcription, error) {
	cols := dao.Transcription.Columns()
	m := s.model(ctx, dao.Transcription.Table())
	if q.Status != "" {
		m = m.Where(cols.Status, q.Status)
	}
	if q.Involving != 0 {
		m = m.Where(fmt.Sprintf("(%s = ? OR %s = ?)", cols.CreatedBy, cols.ReviewedBy), q.Involving, q.Involving)
	}
	if q.UpdatedFrom != nil {
		m = m.WhereGTE(cols.UpdatedAt, q.UpdatedFrom)
	}
	if q.UpdatedTo != nil {
		m = m.WhereLTE(cols.UpdatedAt, q.UpdatedTo)
	}
	var list []*entity.Transcription
	err := s.all(m.OrderAsc(cols.Id), &list)
	return list, err
}

func (s *DB) UpdateTranscription(ctx context.Context, id int64, u model.TranscriptionUpdate) error {
	res, err := s.model(ctx, dao.Transcription.Table()).
		Data(transcriptionData(u)).
		Where(dao.Transcription.Columns().Id, id).
		Update()
	if err != nil {
		return gerror.WrapCode(gcode.CodeDbOperationError, err, "update transcription")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return gerror.Newf("transcription %d does not exist", id)
	}
	return nil
}

func transcriptionData(u model.TranscriptionUpdate) do.Transcription {
	data := do.Transcription{}
	if u.Text != nil {
		data.Text = *u.Text
	}
	if u.Notes != nil {
		data.Notes = *u.Notes
	}
	if u.Status != "" {
		data.Status = u.Status
	}
	if u.Rating != nil {
		data.Rating = *u.Rating
	}
	if u.ReviewNotes != nil {
		data.ReviewNotes = *u.ReviewNotes
	}
	if u.ReviewedBy != nil {
		data.ReviewedBy = *u.ReviewedBy
	}
	return data
}

func (s *DB) AppendTransition(ctx context.Context, tr *entity.SegmentTransition) error {
	_, err := s.model(ctx, dao.SegmentTransition.Table()).Data(do.SegmentTransition{
		SegmentId:  tr.SegmentId,
		FromStatus: tr.FromStatus,
		ToStatus:   tr.ToStatus,
		Action:     tr.Action,
		ActorId:    tr.ActorId,
	}).Insert()
	if err != nil {
		return gerror.WrapCode(gcode.CodeDbOperationError, err, "insert transition")
	}
	return nil
}

func (s *DB) ListTransitions(ctx context.Context, segmentId int64) ([]*entity.SegmentTransition, error) {
	cols := dao.SegmentTransition.Columns()
	m := s.model(ctx, dao.SegmentTransition.Table())
	if segmentId != 0 {
		m = m.Where(cols.SegmentId, segmentId)
	}
	var list []*entity.SegmentTransition
	err := s.all(m.OrderAsc(cols.Id), &list)
	return list, err
}

// one 读取单行到 pointer，没有匹配时保持 nil。
func (s *DB) one(ctx context.Context, table, column string, value any, pointer any) error {
	record, err := s.model(ctx, table).Where(column, value).One()
	if err != nil {
		return gerror.WrapCode(gcode.CodeDbOperationError, err, "query "+table)
	}
	if record.IsEmpty() {
		return nil
	}
	if err = record.Struct(pointer); err != nil {
		return gerror.Wrap(err, "decode "+table)
	}
	return nil
}

func (s *DB) all(m *gdb.Model, pointer any) error {
	result, err := m.All()
	if err != nil {
		return gerror.WrapCode(gcode.CodeDbOperationError, err, "query")
	}
	if result.IsEmpty() {
		return nil
	}
	if err = result.Structs(pointer); err != nil {
		return gerror.Wrap(err, "decode rows")
	}
	return nil
}
