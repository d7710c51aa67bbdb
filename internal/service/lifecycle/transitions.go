package lifecycle

import (
	"github.com/gogf/gf/v2/container/garray"

	"transcription-hub/internal/consts"
)

// Action 片段生命周期操作
type Action string

const (
	ActionAssign  Action = "assign"
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

type edge struct {
	from []string
	to   string
}

// transitions 列出全部合法的片段状态流转，未列出的一律拒绝。
var transitions = map[Action]edge{
	ActionAssign: {
		from: []string{consts.SegmentStatusAvailable},
		to:   consts.SegmentStatusAssigned,
	},
	// 待审核时重新提交视为修改，即 transcribed -> transcribed
	ActionSubmit: {
		from: []string{
			consts.SegmentStatusAvailable,
			consts.SegmentStatusAssigned,
			consts.SegmentStatusTranscribed,
			consts.SegmentStatusRejected,
		},
		to: consts.SegmentStatusTranscribed,
	},
	ActionApprove: {
		from: []string{consts.SegmentStatusTranscribed},
		to:   consts.SegmentStatusReviewed,
	},
	ActionReject: {
		from: []string{consts.SegmentStatusTranscribed},
		to:   consts.SegmentStatusRejected,
	},
}

// SegmentStatuses 片段可能的全部状态
var SegmentStatuses = []string{
	consts.SegmentStatusAvailable,
	consts.SegmentStatusAssigned,
	consts.SegmentStatusTranscribed,
	consts.SegmentStatusReviewed,
	consts.SegmentStatusRejected,
}

// Sources 返回 action 允许的源状态
func Sources(action Action) []string {
	return transitions[action].from
}

// Target 返回 action 的目标状态
func Target(action Action) string {
	return transitions[action].to
}

// Allowed 判断处于 from 状态的片段能否执行 action
func Allowed(action Action, from string) bool {
	e, ok := transitions[action]
	if !ok {
		return false
	}
	return garray.NewStrArrayFrom(e.from).Contains(from)
}

// IsEdge 判断 from -> to 是否为任一操作的合法流转
func IsEdge(from, to string) bool {
	for _, e := range transitions {
		if e.to == to && garray.NewStrArrayFrom(e.from).Contains(from) {
			return true
		}
	}
	return false
}
