// =================================================================================
// This file is auto-generated by the GoFrame CLI tool. You may modify it as needed.
// =================================================================================

package dao

import (
	"transcription-hub/internal/dao/internal"
)

// audioFileDao is the data access object for the table audio_file.
// You can define custom methods on it to extend its functionality as needed.
type audioFileDao struct {
	*internal.AudioFileDao
}

var (
	// AudioFile is a globally accessible object for table audio_file operations.
	AudioFile = audioFileDao{internal.NewAudioFileDao()}
)
