package storage

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/volcengine/ve-tos-golang-sdk/v2/tos"
	"github.com/volcengine/ve-tos-golang-sdk/v2/tos/enum"
)

// TOS 火山引擎对象存储，配置读取 volc.ak、volc.sk 与 volc.tos.*。
type TOS struct {
	client  *tos.ClientV2
	bucket  string
	expires int64
}

func NewTOS(ctx context.Context) (*TOS, error) {
	g.Log().Info(ctx, "Volcengine TOS GO SDK Version:", tos.Version)

	credential := tos.NewStaticCredentials(g.Cfg().MustGet(ctx, "volc.ak").String(), g.Cfg().MustGet(ctx, "volc.sk").String())
	client, err := tos.NewClientV2(
		g.Cfg().MustGet(ctx, "volc.tos.endpoint").String(),
		tos.WithCredentials(credential),
		tos.WithRegion(g.Cfg().MustGet(ctx, "volc.tos.region").String()),
	)
	if err != nil {
		return nil, gerror.Wrap(err, "初始化 TOS 客户端失败")
	}
	g.Log().Info(ctx, "Volcengine TOS Client initialized")
	return &TOS{
		client:  client,
		bucket:  g.Cfg().MustGet(ctx, "volc.tos.bucket").String(),
		expires: g.Cfg().MustGet(ctx, "volc.tos.urlExpires", 3600).Int64(),
	}, nil
}

func (t *TOS) Write(ctx context.Context, key string, r io.Reader) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	output, err := t.client.PutObjectV2(ctx, &tos.PutObjectV2Input{
		PutObjectBasicInput: tos.PutObjectBasicInput{
			Bucket: t.bucket,
			Key:    k,
		},
		Content: r,
	})
	if err != nil {
		var serverErr *tos.TosServerError
		if errors.As(err, &serverErr) {
			g.Log().Warningf(ctx, "TOS 上传失败 key=%s request_id=%s status=%d code=%s: %s",
				k, serverErr.RequestID, serverErr.StatusCode, serverErr.Code, serverErr.Message)
		}
		return gerror.Wrap(err, "TOS 上传失败")
	}
	g.Log().Debugf(ctx, "TOS 上传成功 key=%s request_id=%s", k, output.RequestID)
	return nil
}

func (t *TOS) Read(ctx context.Context, key string) (io.ReadCloser, error) {
	k, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	output, err := t.client.GetObjectV2(ctx, &tos.GetObjectV2Input{Bucket: t.bucket, Key: k})
	if err != nil {
		return nil, gerror.Wrap(err, "TOS 下载失败")
	}
	return output.Content, nil
}

func (t *TOS) Exists(ctx context.Context, key string) (bool, error) {
	k, err := cleanKey(key)
	if err != nil {
		return false, err
	}
	if _, err = t.client.HeadObjectV2(ctx, &tos.HeadObjectV2Input{Bucket: t.bucket, Key: k}); err != nil {
		var serverErr *tos.TosServerError
		if errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, gerror.Wrap(err, "查询 TOS 对象失败")
	}
	return true, nil
}

// URL 生成 key 的预签名下载地址。
func (t *TOS) URL(ctx context.Context, key string) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	url, err := t.client.PreSignedURL(&tos.PreSignedURLInput{
		HTTPMethod: enum.HttpMethodGet,
		Bucket:     t.bucket,
		Key:        k,
		Expires:    t.expires,
	})
	if err != nil {
		return "", gerror.Wrap(err, "获取文件访问地址失败")
	}
	return url.SignedUrl, nil
}
