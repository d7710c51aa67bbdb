package store

import (
	"context"
	"sort"
	"sync"

	"github.com/gogf/gf/v2/container/garray"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/os/gtime"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model"
	"transcription-hub/internal/model/entity"
)

// Memory 基于互斥锁的内存实现，读写时都复制记录，调用方不会与存储共享指针。
type Memory struct {
	mu             sync.Mutex
	seq            map[string]int64
	users          map[int64]*entity.User
	files          map[int64]*entity.AudioFile
	segments       map[int64]*entity.AudioSegment
	transcriptions map[int64]*entity.Transcription
	bySegment      map[int64]int64
	transitions    []*entity.SegmentTransition
}

func NewMemory() *Memory {
	return &Memory{
		seq:            make(map[string]int64),
		users:          make(map[int64]*entity.User),
		files:          make(map[int64]*entity.AudioFile),
		segments:       make(map[int64]*entity.AudioSegment),
		transcriptions: make(map[int64]*entity.Transcription),
		bySegment:      make(map[int64]int64),
	}
}

func (m *Memory) next(table string) int64 {
	m.seq[table]++
	return m.seq[table]
}

func (m *Memory) CreateUser(ctx context.Context, user *entity.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return 0, gerror.Newf("username %s already exists", user.Username)
		}
	}
	u := *user
	u.Id = m.next("user")
	u.CreatedAt = gtime.Now()
	m.users[u.Id] = &u
	return u.Id, nil
}

func (m *Memory) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (m *Memory) ListUsers(ctx context.Context) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*entity.User, 0, len(m.users))
	for _, u := range m.users {
		c := *u
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Id < list[j].Id })
	return list, nil
}

func (m *Memory) CreateAudioFile(ctx context.Context, file *entity.AudioFile) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := *file
	f.Id = m.next("audio_file")
	f.CreatedAt = gtime.Now()
	f.UpdatedAt = f.CreatedAt
	m.files[f.Id] = &f
	return f.Id, nil
}

func (m *Memory) GetAudioFile(ctx context.Context, id int64) (*entity.AudioFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok {
		return nil, nil
	}
	c := *f
	return &c, nil
}

func (m *Memory) ListAudioFiles(ctx context.Context, q model.AudioFileQuery) ([]*entity.AudioFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*entity.AudioFile, 0)
	for _, f := range m.files {
		if q.Status != "" && f.Status != q.Status {
			continue
		}
		if q.UploadedBy != 0 && f.UploadedBy != q.UploadedBy {
			continue
		}
		c := *f
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Id < list[j].Id })
	return list, nil
}

func (m *Memory) UpdateAudioFile(ctx context.Context, id int64, u model.AudioFileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok {
		return gerror.Newf("audio file %d does not exist", id)
	}
	applyAudioFile(f, u)
	return nil
}

func (m *Memory) UpdateAudioFileIf(ctx context.Context, id int64, from []string, u model.AudioFileUpdate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok {
		return false, nil
	}
	if len(from) > 0 && !garray.NewStrArrayFrom(from).Contains(f.Status) {
		return false, nil
	}
	applyAudioFile(f, u)
	return true, nil
}

func applyAudioFile(f *entity.AudioFile, u model.AudioFileUpdate) {
	if u.Status != "" {
		f.Status = u.Status
	}
	if u.ProcessedDir != nil {
		f.ProcessedDir = *u.ProcessedDir
	}
	if u.SegmentCount != nil {
		f.SegmentCount = *u.SegmentCount
	}
	if u.Duration != nil {
		f.Duration = *u.Duration
	}
	if u.ErrorMessage != nil {
		f.ErrorMessage = *u.ErrorMessage
	}
	f.UpdatedAt = gtime.Now()
}

func (m *Memory) CreateSegment(ctx context.Context, seg *entity.AudioSegment) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[seg.AudioFileId]; !ok {
		return 0, gerror.Newf("audio file %d does not exist", seg.AudioFileId)
	}
	s := *seg
	s.Id = m.next("audio_segment")
	s.CreatedAt = gtime.Now()
	s.UpdatedAt = s.CreatedAt
	m.segments[s.Id] = &s
	return s.Id, nil
}

func (m *Memory) GetSegment(ctx context.Context, id int64) (*entity.AudioSegment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.segments[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (m *Memory) ListSegments(ctx context.Context, q model.SegmentQuery) ([]*entity.AudioSegment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	statuses := garray.NewStrArrayFrom(q.Statuses)
	list := make([]*entity.AudioSegment, 0)
	for _, s := range m.segments {
		switch {
		case q.AudioFileId != 0 && s.AudioFileId != q.AudioFileId:
			continue
		case statuses.Len() > 0 && !statuses.Contains(s.Status):
			continue
		case q.AssignedTo != 0 && s.AssignedTo != q.AssignedTo:
			continue
		case q.TranscribedBy != 0 && s.TranscribedBy != q.TranscribedBy:
			continue
		case q.ReviewedBy != 0 && s.ReviewedBy != q.ReviewedBy:
			continue
		case q.Involving != 0 && s.AssignedTo != q.Involving && s.TranscribedBy != q.Involving && s.ReviewedBy != q.Involving:
			continue
		}
		c := *s
		list = append(list, &c)
	}
	// id 按创建顺序分配
	sort.Slice(list, func(i, j int) bool { return list[i].Id < list[j].Id })
	return list, nil
}

func (m *Memory) UpdateSegmentIf(ctx context.Context, id int64, from []string, u model.SegmentUpdate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.segmentIn(id, from)
	if s == nil {
		return false, nil
	}
	applySegment(s, u)
	return true, nil
}

// segmentIn 返回状态属于 from 的片段，调用方需持有锁。
func (m *Memory) segmentIn(id int64, from []string) *entity.AudioSegment {
	s, ok := m.segments[id]
	if !ok {
		return nil
	}
	if len(from) > 0 && !garray.NewStrArrayFrom(from).Contains(s.Status) {
		return nil
	}
	return s
}

func applySegment(s *entity.AudioSegment, u model.SegmentUpdate) {
	if u.Status != "" {
		s.Status = u.Status
	}
	if u.AssignedTo != nil {
		s.AssignedTo = *u.AssignedTo
	}
	if u.TranscribedBy != nil {
		s.TranscribedBy = *u.TranscribedBy
	}
	if u.ReviewedBy != nil {
		s.ReviewedBy = *u.ReviewedBy
	}
	s.UpdatedAt = gtime.Now()
}

func (m *Memory) SaveTranscription(ctx context.Context, t *entity.Transcription) (*entity.Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.segments[t.SegmentId]; !ok {
		return nil, gerror.Newf("segment %d does not exist", t.SegmentId)
	}
	return m.saveTranscription(t), nil
}

func (m *Memory) SubmitTranscription(ctx context.Context, t *entity.Transcription, from []string, u model.SegmentUpdate) (*entity.Transcription, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.segmentIn(t.SegmentId, from)
	if s == nil {
		return nil, false, nil
	}
	applySegment(s, u)
	return m.saveTranscription(t), true, nil
}

func (m *Memory) ReviewTranscription(ctx context.Context, seen *entity.Transcription, from []string, u model.SegmentUpdate, tu model.TranscriptionUpdate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.segmentIn(seen.SegmentId, from)
	if s == nil {
		return false, nil
	}
	t, ok := m.transcriptions[seen.Id]
	if !ok {
		return false, gerror.Newf("transcription %d does not exist", seen.Id)
	}
	if t.Text != seen.Text {
		return false, gerror.NewCode(consts.CodePreconditionFailed, TranscriptionChangedMessage)
	}
	applySegment(s, u)
	applyTranscription(t, tu)
	return true, nil
}

// saveTranscription 按片段新建或覆盖转写，调用方需持有锁。
func (m *Memory) saveTranscription(t *entity.Transcription) *entity.Transcription {
	now := gtime.Now()
	if id, ok := m.bySegment[t.SegmentId]; ok {
		cur := m.transcriptions[id]
		cur.Text = t.Text
		cur.Notes = t.Notes
		cur.Status = t.Status
		cur.CreatedBy = t.CreatedBy
		cur.UpdatedAt = now
		c := *cur
		return &c
	}
	n := *t
	n.Id = m.next("transcription")
	n.CreatedAt = now
	n.UpdatedAt = now
	m.transcriptions[n.Id] = &n
	m.bySegment[n.SegmentId] = n.Id
	c := n
	return &c
}

func (m *Memory) GetTranscriptionBySegment(ctx context.Context, segmentId int64) (*entity.Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.bySegment[segmentId]
	if !ok {
		return nil, nil
	}
	c := *m.transcriptions[id]
	return &c, nil
}

func (m *Memory) ListTranscriptions(ctx context.Context, q model.TranscriptionQuery) ([]*entity.Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*entity.Transcription, 0)
	for _, t := range m.transcriptions {
		switch {
		case q.Status != "" && t.Status != q.Status:
			continue
		case q.Involving != 0 && t.CreatedBy != q.Involving && t.ReviewedBy != q.Involving:
			continue
		case q.UpdatedFrom != nil && t.UpdatedAt.Before(q.UpdatedFrom):
			continue
		case q.UpdatedTo != nil && t.UpdatedAt.After(q.UpdatedTo):
			continue
		}
		c := *t
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Id < list[j].Id })
	return list, nil
}

func (m *Memory) UpdateTranscription(ctx context.Context, id int64, u model.TranscriptionUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transcriptions[id]
	if !ok {
		return gerror.Newf("transcription %d does not exist", id)
	}
	applyTranscription(t, u)
	return nil
}

func applyTranscription(t *entity.Transcription, u model.TranscriptionUpdate) {
	if u.Text != nil {
		t.Text = *u.Text
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
	if u.Status != "" {
		t.Status = u.Status
	}
	if u.Rating != nil {
		t.Rating = *u.Rating
	}
	if u.ReviewNotes != nil {
		t.ReviewNotes = *u.ReviewNotes
	}
	if u.ReviewedBy != nil {
		t.ReviewedBy = *u.ReviewedBy
	}
	t.UpdatedAt = gtime.Now()
}

func (m *Memory) AppendTransition(ctx context.Context, tr *entity.SegmentTransition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *tr
	c.Id = m.next("segment_transition")
	c.CreatedAt = gtime.Now()
	m.transitions = append(m.transitions, &c)
	return nil
}

func (m *Memory) ListTransitions(ctx context.Context, segmentId int64) ([]*entity.SegmentTransition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*entity.SegmentTransition, 0)
	for _, tr := range m.transitions {
		if segmentId != 0 && tr.SegmentId != segmentId {
			continue
		}
		c := *tr
		list = append(list, &c)
	}
	return list, nil
}
