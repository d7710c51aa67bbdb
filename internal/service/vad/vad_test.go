package vad_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/os/gfile"
	"github.com/gogf/gf/v2/test/gtest"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/service/vad"
)

func Test_Parse_Success(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		out := "Using cache found in /root/.cache/torch/hub\n" +
			`{"status":"success","segments":[` +
			`{"index":0,"path":"/out/segment_0.wav","start_time":0,"end_time":1500.5,"duration":1500.5},` +
			`{"index":1,"path":"/out/segment_1.wav","start_time":2000,"end_time":2500,"duration":500}]}` + "\n"
		res, err := vad.Parse([]byte(out))
		t.AssertNil(err)
		t.Assert(len(res.Segments), 2)
		t.Assert(res.Segments[0].Path, "/out/segment_0.wav")
		t.Assert(res.Segments[0].EndTime, 1500.5)
		t.Assert(res.Segments[1].Index, 1)
		t.Assert(res.TotalDuration(), 2000.5)
	})
}

func Test_Parse_EmptySegments(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		res, err := vad.Parse([]byte(`{"status":"success","segments":[]}`))
		t.AssertNil(err)
		t.Assert(len(res.Segments), 0)
	})
}

func Test_Parse_Errors(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		cases := []struct{ out, want string }{
			{`{"status":"error","error":"corrupt audio"}`, "corrupt audio"},
			{``, "no output"},
			{`not json`, "not valid JSON"},
			{`{"status":"done"}`, "unknown status"},
			{`{"status":"success"}`, "no segments array"},
			{`{"status":"success","segments":{"index":0}}`, "no segments array"},
			{`{"status":"success","segments":[{"index":0,"path":"a.wav","start_time":0,"end_time":5}]}`, `missing field "duration"`},
			{`{"status":"success","segments":[{"index":0,"path":"","start_time":0,"end_time":5,"duration":5}]}`, "empty path"},
			{`{"status":"success","segments":[{"index":0,"path":"a.wav","start_time":"x","end_time":5,"duration":5}]}`, "invalid start_time"},
			{`{"status":"success","segments":[{"index":0,"path":"a.wav","start_time":9,"end_time":5,"duration":5}]}`, "before start_time"},
		}
		for _, c := range cases {
			res, err := vad.Parse([]byte(c.out))
			t.AssertNil(res)
			t.AssertNE(err, nil)
			t.Assert(gerror.Code(err), consts.CodeExternalToolFailure)
			t.Assert(strings.Contains(err.Error(), c.want), true)
		}
	})
}

func Test_Parse_RejectsWholeResult(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		out := `{"status":"success","segments":[` +
			`{"index":0,"path":"a.wav","start_time":0,"end_time":5,"duration":5},` +
			`{"index":1,"path":"b.wav","start_time":6,"end_time":8,"duration":null}]}`
		res, err := vad.Parse([]byte(out))
		t.AssertNil(res)
		t.Assert(strings.Contains(err.Error(), "VAD segment #1"), true)
	})
}

func writeScript(t *gtest.T, dir, body string) string {
	path := filepath.Join(dir, "vad.sh")
	t.AssertNil(gfile.PutContents(path, body))
	return path
}

func Test_ExecRunner(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		src := filepath.Join(dir, "in.wav")
		t.AssertNil(gfile.PutContents(src, "RIFF"))
		out := filepath.Join(dir, "out")

		script := writeScript(t, dir, `echo loading model
echo '{"status":"success","segments":[{"index":0,"path":"'$2'/segment_0.wav","start_time":0,"end_time":800,"duration":800}]}'
`)
		runner := &vad.ExecRunner{Python: "sh", Script: script}
		res, err := runner.Process(context.Background(), src, out)
		t.AssertNil(err)
		t.Assert(len(res.Segments), 1)
		t.Assert(res.Segments[0].Path, out+"/segment_0.wav")
		t.Assert(gfile.IsDir(out), true)
	})
}

func Test_ExecRunner_Failures(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		src := filepath.Join(dir, "in.wav")
		t.AssertNil(gfile.PutContents(src, "RIFF"))

		declared := writeScript(t, dir, `echo '{"status":"error","error":"corrupt audio"}'
exit 1
`)
		_, err := (&vad.ExecRunner{Python: "sh", Script: declared}).Process(context.Background(), src, filepath.Join(dir, "a"))
		t.Assert(err.Error(), "corrupt audio")

		crashed := writeScript(t, dir, `echo "Traceback: boom" >&2
exit 3
`)
		_, err = (&vad.ExecRunner{Python: "sh", Script: crashed}).Process(context.Background(), src, filepath.Join(dir, "b"))
		t.Assert(gerror.Code(err), consts.CodeExternalToolFailure)
		t.Assert(strings.Contains(err.Error(), "Traceback: boom"), true)

		_, err = (&vad.ExecRunner{Python: "sh", Script: crashed}).Process(context.Background(), filepath.Join(dir, "missing.wav"), filepath.Join(dir, "c"))
		t.Assert(gerror.Code(err), consts.CodeExternalToolFailure)
	})
}
