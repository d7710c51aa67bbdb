package audio

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gogf/gf/v2/net/ghttp"
)

// UploadSource 抽象上传文件来源，便于复用上传逻辑。
type UploadSource interface {
	FileName() string
	FileSize() int64
	Open() (multipart.File, error)
}

// 从 HTTP 请求中获取上传文件
type HttpUploadSource struct {
	file *ghttp.UploadFile
}

func NewHttpUploadSource(file *ghttp.UploadFile) *HttpUploadSource {
	return &HttpUploadSource{file: file}
}

func (h *HttpUploadSource) FileName() string {
	return h.file.Filename
}

func (h *HttpUploadSource) FileSize() int64 {
	return h.file.Size
}

func (h *HttpUploadSource) Open() (multipart.File, error) {
	return h.file.Open()
}

// 从本地文件中获取上传文件，用于批量导入已有录音
type localUploadFile struct {
	path string
	size int64
}

func NewLocalUploadFile(path string) (UploadSource, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &localUploadFile{path: path, size: fileInfo.Size()}, nil
}

func (r *localUploadFile) FileName() string {
	return filepath.Base(r.path)
}

func (r *localUploadFile) FileSize() int64 {
	return r.size
}

func (r *localUploadFile) Open() (multipart.File, error) {
	return os.Open(r.path)
}
