// =================================================================================
// This is auto-generated by GoFrame CLI tool only once. Fill this file as you wish.
// =================================================================================

package audio

import (
	"transcription-hub/api/audio"
	audioSvc "transcription-hub/internal/service/audio"
)

type ControllerV1 struct {
	svc *audioSvc.Service
}

func NewV1(svc *audioSvc.Service) audio.IAudioV1 {
	return &ControllerV1{svc: svc}
}
