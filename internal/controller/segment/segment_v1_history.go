package segment

import (
	"context"

	"transcription-hub/api/segment/v1"
)

func (c *ControllerV1) History(ctx context.Context, req *v1.HistoryReq) (res *v1.HistoryRes, err error) {
	if _, err = c.visibleDetail(ctx, req.Id); err != nil {
		return nil, err
	}
	transitions, err := c.lifecycle.History(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &v1.HistoryRes{Transitions: transitions}, nil
}
