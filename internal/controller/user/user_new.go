// =================================================================================
// This is auto-generated by GoFrame CLI tool only once. Fill this file as you wish.
// =================================================================================

package user

import (
	"transcription-hub/api/user"
	"transcription-hub/internal/store"
)

type ControllerV1 struct {
	store store.Store
}

func NewV1(s store.Store) user.IUserV1 {
	return &ControllerV1{store: s}
}
