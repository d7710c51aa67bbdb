// =================================================================================
// This file is auto-generated by the GoFrame CLI tool. You may modify it as needed.
// =================================================================================

package dao

import (
	"transcription-hub/internal/dao/internal"
)

// audioSegmentDao is the data access object for the table audio_segment.
// You can define custom methods on it to extend its functionality as needed.
type audioSegmentDao struct {
	*internal.AudioSegmentDao
}

var (
	// AudioSegment is a globally accessible object for table audio_segment operations.
	AudioSegment = audioSegmentDao{internal.NewAudioSegmentDao()}
)
