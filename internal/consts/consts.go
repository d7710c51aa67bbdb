package consts

import (
	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/frame/g"
)

// 音频文件状态
const (
	FileStatusProcessing = "processing"
	FileStatusProcessed  = "processed"
	FileStatusError      = "error"
	FileStatusCancelled  = "cancelled"
)

// 片段状态
const (
	SegmentStatusAvailable   = "available"
	SegmentStatusAssigned    = "assigned"
	SegmentStatusTranscribed = "transcribed"
	SegmentStatusReviewed    = "reviewed"
	SegmentStatusRejected    = "rejected"
)

// 转写状态
const (
	TranscriptionStatusPendingReview = "pending_review"
	TranscriptionStatusApproved      = "approved"
	TranscriptionStatusRejected      = "rejected"
)

// 用户角色，admin 同时拥有审核权限
const (
	RoleTranscriber = "transcriber"
	RoleReviewer    = "reviewer"
	RoleCollector   = "collector"
	RoleAdmin       = "admin"
)

// 审核决定
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// 任务列表筛选
const (
	TaskFilterAssigned  = "assigned"
	TaskFilterReview    = "review"
	TaskFilterCompleted = "completed"
)

// 动态类型
const (
	ActivityTranscription = "transcription"
	ActivityProcessing    = "processing"
	ActivityVerification  = "verification"
)

const (
	MaxUploadSize      = 1024 * 1024 * 1024 // 1GB
	DefaultDueDays     = 3
	DefaultBatchRating = 5
	MinRating          = 1
	MaxRating          = 5

	CtxUser = "hub.user"
)

var (
	CodeNotFound            = gcode.CodeNotFound
	CodeInvalidParameter    = gcode.CodeInvalidParameter
	CodePreconditionFailed  = gcode.New(412, "Precondition Failed", nil)
	CodeExternalToolFailure = gcode.New(502, "External Tool Failure", nil)
	CodeNotAuthorized       = gcode.CodeNotAuthorized
	CodeMissingParameter    = gcode.CodeMissingParameter
	CodeDbOperationError    = gcode.CodeDbOperationError

	// AudioExt 按文件头识别出的、可切分的扩展名
	AudioExt = g.MapStrStr{
		".wav":  "audio",
		".mp3":  "audio",
		".flac": "audio",
		".ogg":  "audio",
		".oga":  "audio",
		".aac":  "audio",
		".m4a":  "audio",
		".webm": "audio",
		".mp4":  "video",
		".mov":  "video",
		".mkv":  "video",
	}
)

func IsReviewerRole(role string) bool {
	return role == RoleReviewer || role == RoleAdmin
}
