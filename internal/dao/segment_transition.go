// =================================================================================
// This file is auto-generated by the GoFrame CLI tool. You may modify it as needed.
// =================================================================================

package dao

import (
	"transcription-hub/internal/dao/internal"
)

// segmentTransitionDao is the data access object for the table segment_transition.
// You can define custom methods on it to extend its functionality as needed.
type segmentTransitionDao struct {
	*internal.SegmentTransitionDao
}

var (
	// SegmentTransition is a globally accessible object for table segment_transition operations.
	SegmentTransition = segmentTransitionDao{internal.NewSegmentTransitionDao()}
)
