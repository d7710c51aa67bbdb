// Package vad 调用外部语音活动检测（VAD）脚本并校验其输出。
package vad

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gfile"

	"transcription-hub/internal/consts"
)

// Runner 对一个音频文件执行 VAD，片段音频写入 outDir。
type Runner interface {
	Process(ctx context.Context, src, outDir string) (*Result, error)
}

// ExecRunner 以 `<Python> <Script> <src> <outDir>` 的方式调用脚本，
// 脚本在标准输出最后一行打印 JSON 结果。
type ExecRunner struct {
	Python string
	Script string
	// Timeout 为 0 时不限制脚本运行时间
	Timeout time.Duration
}

// NewExecRunner 从配置 vad.* 构建 ExecRunner。
func NewExecRunner(ctx context.Context) *ExecRunner {
	return &ExecRunner{
		Python:  g.Cfg().MustGet(ctx, "vad.python", "python3").String(),
		Script:  g.Cfg().MustGet(ctx, "vad.script", "scripts/vad_processor.py").String(),
		Timeout: time.Duration(g.Cfg().MustGet(ctx, "vad.timeout", 0).Int()) * time.Second,
	}
}

func (r *ExecRunner) Process(ctx context.Context, src, outDir string) (*Result, error) {
	if !gfile.Exists(src) {
		return nil, gerror.NewCodef(consts.CodeExternalToolFailure, "source audio %s does not exist", src)
	}
	if err := gfile.Mkdir(outDir); err != nil {
		return nil, gerror.WrapCodef(consts.CodeExternalToolFailure, err, "create output directory %s", outDir)
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Python, r.Script, src, outDir)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	g.Log().Debugf(ctx, "vad %s finished in %s", src, time.Since(start))
	if runErr != nil {
		if msg := DeclaredError(stdout.Bytes()); msg != "" {
			return nil, gerror.NewCode(consts.CodeExternalToolFailure, msg)
		}
		return nil, gerror.WrapCodef(consts.CodeExternalToolFailure, runErr, "VAD tool failed: %s", tail(stderr.String(), 512))
	}
	return Parse(stdout.Bytes())
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
