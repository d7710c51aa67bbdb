package taskquery

import (
	"github.com/gogf/gf/v2/errors/gerror"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model"
	"transcription-hub/internal/model/entity"
)

// Predicate 判断片段是否属于某个视图。
type Predicate func(seg *entity.AudioSegment) bool

func isAdmin(user *entity.User) bool {
	return user.Role == consts.RoleAdmin
}

func involved(user *entity.User, seg *entity.AudioSegment) bool {
	return seg.AssignedTo == user.Id || seg.TranscribedBy == user.Id || seg.ReviewedBy == user.Id
}

// CanSee 管理员可以看到所有片段，其他用户只能看到自己作为分配人、转写人或审核人的片段。
func CanSee(user *entity.User, seg *entity.AudioSegment) bool {
	return isAdmin(user) || involved(user, seg)
}

// ScopeFilter 返回 filter 对应的片段谓词，filter 为空表示用户可见的全部片段。
func ScopeFilter(user *entity.User, filter string) (Predicate, error) {
	switch filter {
	case "":
		return func(seg *entity.AudioSegment) bool {
			return CanSee(user, seg)
		}, nil
	case consts.TaskFilterAssigned:
		return func(seg *entity.AudioSegment) bool {
			return seg.AssignedTo == user.Id
		}, nil
	case consts.TaskFilterReview:
		return func(seg *entity.AudioSegment) bool {
			if seg.Status != consts.SegmentStatusTranscribed {
				return false
			}
			return isAdmin(user) || seg.ReviewedBy == user.Id
		}, nil
	case consts.TaskFilterCompleted:
		return func(seg *entity.AudioSegment) bool {
			return seg.Status == consts.SegmentStatusReviewed && CanSee(user, seg)
		}, nil
	default:
		return nil, gerror.NewCodef(consts.CodeInvalidParameter, "Unknown task filter %q", filter)
	}
}

// narrow 把谓词能下推的部分转成存储查询，结果仍需经过谓词过滤。
func narrow(user *entity.User, filter string) model.SegmentQuery {
	var q model.SegmentQuery
	switch filter {
	case consts.TaskFilterAssigned:
		q.AssignedTo = user.Id
	case consts.TaskFilterReview:
		q.Statuses = []string{consts.SegmentStatusTranscribed}
	case consts.TaskFilterCompleted:
		q.Statuses = []string{consts.SegmentStatusReviewed}
	}
	if !isAdmin(user) && q.AssignedTo == 0 {
		q.Involving = user.Id
	}
	return q
}

// pendingReview 待审核计数的口径：管理员统计全部，审核人统计分配给自己审核的，
// 其他角色统计自己提交的。
func pendingReview(user *entity.User, seg *entity.AudioSegment) bool {
	if seg.Status != consts.SegmentStatusTranscribed {
		return false
	}
	switch user.Role {
	case consts.RoleAdmin:
		return true
	case consts.RoleReviewer:
		return seg.ReviewedBy == user.Id
	default:
		return seg.TranscribedBy == user.Id
	}
}
