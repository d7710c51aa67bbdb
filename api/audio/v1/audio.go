package v1

import (
	"github.com/gogf/gf/v2/frame/g"

	"transcription-hub/internal/model/entity"
)

// 音频上传API（支持单文件和多文件）
type UploadReq struct {
	g.Meta `path:"/upload" method:"post" mime:"multipart/form-data" summary:"上传音频" dc:"使用 multipart/form-data 方式上传（可批量）。字段名是 files。上传后自动进入切分队列。"`
}
type UploadRes struct {
	Files   []*entity.AudioFile `json:"files" dc:"成功上传的音频"`
	Errors  []FileError         `json:"errors,omitempty" dc:"上传失败的文件错误信息"`
	Total   int                 `json:"total" dc:"总文件数"`
	Success int                 `json:"success" dc:"成功上传数"`
	Failed  int                 `json:"failed" dc:"上传失败数"`
}
type FileError struct {
	FileName string `json:"fileName" dc:"文件名"`
	Error    string `json:"error" dc:"错误信息"`
}

type ListReq struct {
	g.Meta `path:"/list" method:"get" summary:"音频列表"`
	Status string `json:"status" v:"in:processing,processed,error,cancelled" dc:"按状态过滤"`
	Mine   bool   `json:"mine" dc:"只看自己上传的"`
}
type ListRes struct {
	Files []*entity.AudioFile `json:"files"`
}

type GetReq struct {
	g.Meta `path:"/{id}" method:"get" summary:"音频详情"`
	Id int64 `json:"id" in:"path" v:"required|min:1"`
}
type GetRes struct {
	*entity.AudioFile
}

type SegmentsReq struct {
	g.Meta `path:"/{id}/segments" method:"get" summary:"音频的片段列表" dc:"按 VAD 输出顺序"`
	Id int64 `json:"id" in:"path" v:"required|min:1"`
}
type SegmentsRes struct {
	Segments []*entity.AudioSegment `json:"segments"`
}

type CancelReq struct {
	g.Meta `path:"/{id}/cancel" method:"post" summary:"取消切分" dc:"已生成的片段保留"`
	Id int64 `json:"id" in:"path" v:"required|min:1"`
}
type CancelRes struct {
	*entity.AudioFile
}
