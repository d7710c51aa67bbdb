package audio

import (
	"context"

	"transcription-hub/api/audio/v1"
)

func (c *ControllerV1) Segments(ctx context.Context, req *v1.SegmentsReq) (res *v1.SegmentsRes, err error) {
	if _, err = c.ownedFile(ctx, req.Id); err != nil {
		return nil, err
	}
	segments, err := c.svc.Segments(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &v1.SegmentsRes{Segments: segments}, nil
}
