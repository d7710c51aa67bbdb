// Package storage 提供按 key 寻址的文件存储：本地目录和火山引擎 TOS。
package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/os/gfile"

	"transcription-hub/internal/consts"
)

// FileStorage 以 key 读写字节流，key 使用 / 分隔。
type FileStorage interface {
	Write(ctx context.Context, key string, r io.Reader) error
	Read(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Presigner 能够为 key 生成临时下载地址的存储。
type Presigner interface {
	URL(ctx context.Context, key string) (string, error)
}

// cleanKey 规范化 key，拒绝逃出存储根目录的写法。
func cleanKey(key string) (string, error) {
	k := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(key, "\\", "/")), "/")
	if k == "" || k == "." || strings.Contains(key, "..") {
		return "", gerror.NewCodef(consts.CodeInvalidParameter, "invalid storage key %q", key)
	}
	return k, nil
}

// Local 以目录为根的本地存储。
type Local struct {
	root string
}

func NewLocal(root string) *Local {
	return &Local{root: root}
}

// Path 返回 key 对应的本地绝对路径。
func (l *Local) Path(key string) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.root, filepath.FromSlash(k)), nil
}

func (l *Local) Write(ctx context.Context, key string, r io.Reader) error {
	p, err := l.Path(key)
	if err != nil {
		return err
	}
	// 先写临时文件再改名，Exists 为真时内容一定完整
	tmp := p + ".part"
	f, err := gfile.Create(tmp)
	if err != nil {
		return gerror.Wrapf(err, "create %s", tmp)
	}
	_, err = io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = gfile.Remove(tmp)
		return gerror.Wrapf(err, "write %s", p)
	}
	return gfile.Rename(tmp, p)
}

func (l *Local) Read(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := l.Path(key)
	if err != nil {
		return nil, err
	}
	if !gfile.IsFile(p) {
		return nil, gerror.NewCodef(consts.CodeNotFound, "%s not found", key)
	}
	f, err := gfile.Open(p)
	if err != nil {
		return nil, gerror.Wrapf(err, "open %s", p)
	}
	return f, nil
}

func (l *Local) Exists(ctx context.Context, key string) (bool, error) {
	p, err := l.Path(key)
	if err != nil {
		return false, err
	}
	return gfile.IsFile(p), nil
}
