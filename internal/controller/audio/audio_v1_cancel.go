package audio

import (
	"context"

	"transcription-hub/api/audio/v1"
)

func (c *ControllerV1) Cancel(ctx context.Context, req *v1.CancelReq) (res *v1.CancelRes, err error) {
	if _, err = c.ownedFile(ctx, req.Id); err != nil {
		return nil, err
	}
	file, err := c.svc.Cancel(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &v1.CancelRes{AudioFile: file}, nil
}
