package vad

import (
	"bytes"
	"strconv"

	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/gogf/gf/v2/errors/gerror"

	"transcription-hub/internal/consts"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Segment 一个 VAD 片段描述，时间单位为毫秒。
type Segment struct {
	Index     int
	Path      string
	StartTime float64
	EndTime   float64
	Duration  float64
}

// Result VAD 成功时的结果，Segments 保持工具输出的顺序。
type Result struct {
	Segments []Segment
}

// TotalDuration 返回全部片段时长之和（毫秒）。
func (r *Result) TotalDuration() float64 {
	var total float64
	for _, s := range r.Segments {
		total += s.Duration
	}
	return total
}

// Parse 解析 VAD 工具的标准输出。只取最后一个非空行，之前的行视为工具日志。
// 任何字段缺失或类型不对都整体失败，不会返回部分片段。
func Parse(out []byte) (*Result, error) {
	j, err := decodeLastLine(out)
	if err != nil {
		return nil, err
	}
	switch status := j.Get("status").String(); status {
	case statusSuccess:
	case statusError:
		return nil, gerror.NewCode(consts.CodeExternalToolFailure, declaredMessage(j))
	default:
		return nil, gerror.NewCodef(consts.CodeExternalToolFailure, "VAD result has unknown status %q", status)
	}

	if !j.Contains("segments") || !j.Get("segments").IsSlice() {
		return nil, gerror.NewCode(consts.CodeExternalToolFailure, "VAD result has no segments array")
	}
	items := j.GetJsons("segments")
	res := &Result{Segments: make([]Segment, 0, len(items))}
	for i, item := range items {
		seg, err := parseSegment(item)
		if err != nil {
			return nil, gerror.WrapCodef(consts.CodeExternalToolFailure, err, "VAD segment #%d", i)
		}
		res.Segments = append(res.Segments, seg)
	}
	return res, nil
}

// DeclaredError 返回输出中工具主动声明的错误信息，没有则返回空串。
func DeclaredError(out []byte) string {
	j, err := decodeLastLine(out)
	if err != nil || j.Get("status").String() != statusError {
		return ""
	}
	return declaredMessage(j)
}

func declaredMessage(j *gjson.Json) string {
	if msg := j.Get("error").String(); msg != "" {
		return msg
	}
	return "VAD tool reported an error"
}

func decodeLastLine(out []byte) (*gjson.Json, error) {
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	last := bytes.TrimSpace(lines[len(lines)-1])
	if len(last) == 0 {
		return nil, gerror.NewCode(consts.CodeExternalToolFailure, "VAD tool produced no output")
	}
	j, err := gjson.DecodeToJson(last)
	if err != nil {
		return nil, gerror.WrapCode(consts.CodeExternalToolFailure, err, "VAD output is not valid JSON")
	}
	return j, nil
}

func parseSegment(item *gjson.Json) (Segment, error) {
	var seg Segment
	for _, key := range []string{"index", "path", "start_time", "end_time", "duration"} {
		if !item.Contains(key) || item.Get(key).IsNil() {
			return seg, gerror.Newf(`missing field "%s"`, key)
		}
	}
	index, err := strconv.Atoi(item.Get("index").String())
	if err != nil || index < 0 {
		return seg, gerror.Newf(`invalid index "%s"`, item.Get("index").String())
	}
	seg.Index = index
	if seg.Path = item.Get("path").String(); seg.Path == "" {
		return seg, gerror.New("empty path")
	}
	for key, dst := range map[string]*float64{
		"start_time": &seg.StartTime,
		"end_time":   &seg.EndTime,
		"duration":   &seg.Duration,
	} {
		v, err := strconv.ParseFloat(item.Get(key).String(), 64)
		if err != nil || v < 0 {
			return seg, gerror.Newf(`invalid %s "%s"`, key, item.Get(key).String())
		}
		*dst = v
	}
	if seg.EndTime < seg.StartTime {
		return seg, gerror.Newf("end_time %v before start_time %v", seg.EndTime, seg.StartTime)
	}
	return seg, nil
}
