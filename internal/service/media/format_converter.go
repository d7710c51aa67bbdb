package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gfile"
	"github.com/gogf/gf/v2/util/gconv"
)

// 转换选项
type ConvertOptions struct {
	TargetFormat string   // 例如 "wav"，要求纯小写，前面不要点
	SampleRate   int      // 0 表示保持原采样率
	Channels     int      // 0 表示保持原声道数
	Codec        string   // 例如 "pcm_s16le"
	ExtraArgs    []string // 原样追加的 ffmpeg 参数
	DeleteInput  bool     // 转换后删除源文件
}

// VADOptions VAD 模型要求的输入：16 kHz 单声道 16 位 PCM wav。
var VADOptions = ConvertOptions{
	TargetFormat: "wav",
	SampleRate:   16000,
	Channels:     1,
	Codec:        "pcm_s16le",
}

// FFmpeg 转换器
type FFmpegConverter struct {
	binPath string
	opts    ConvertOptions
}

func NewConverter(binPath string, opts ConvertOptions) *FFmpegConverter {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	return &FFmpegConverter{
		binPath: binPath,
		opts:    opts,
	}
}

// Target 返回输入文件转换后的输出路径，与输入同目录。
// 加上 .norm 后缀，避免输入本身就是目标格式时覆盖原文件。
func (c *FFmpegConverter) Target(inputPath string) string {
	return fmt.Sprintf("%s.norm.%s", strings.TrimSuffix(inputPath, filepath.Ext(inputPath)), c.opts.TargetFormat)
}

// Args 构建 ffmpeg 参数。
func (c *FFmpegConverter) Args(inputPath, target string) []string {
	args := []string{"-y", "-i", inputPath, "-vn"}
	if c.opts.SampleRate > 0 {
		args = append(args, "-ar", gconv.String(c.opts.SampleRate))
	}
	if c.opts.Channels > 0 {
		args = append(args, "-ac", gconv.String(c.opts.Channels))
	}
	if c.opts.Codec != "" {
		args = append(args, "-c:a", c.opts.Codec)
	}
	if len(c.opts.ExtraArgs) > 0 {
		args = append(args, c.opts.ExtraArgs...)
	}
	return append(args, target)
}

// 使用 ffmpeg 将输入文件转换为目标格式，输入格式由 ffmpeg 自行探测。
//
// 参数:
//   - inputPath: string - 输入文件的路径
//
// 返回:
//   - outputPath: string - 输出文件的路径
//   - err: error - 转换过程中发生的任何错误
func (c *FFmpegConverter) Convert(ctx context.Context, inputPath string) (outputPath string, err error) {
	if !gfile.IsFile(inputPath) {
		return "", gerror.Newf("输入文件不可访问: %s", inputPath)
	}

	target := c.Target(inputPath)
	cmd := exec.CommandContext(ctx, c.binPath, c.Args(inputPath, target)...)
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", gerror.Wrapf(err, "ffmpeg convert to %s failed: %s", c.opts.TargetFormat, strings.TrimSpace(stderr.String()))
	}

	if c.opts.DeleteInput {
		if err := gfile.Remove(inputPath); err != nil {
			// 至少日志告个警
			g.Log().Errorf(ctx, "remove input file failed: %v", err)
		}
	}
	return target, nil
}
