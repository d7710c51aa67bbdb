package middlewares

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
)

// 小于该长度的响应不压缩，压缩收益抵不过开销
const brotliMinLength = 1024

// Brotli 返回 brotli 压缩中间件，level 取值 0-11。
// 导出接口一次返回大量转写文本，列表接口也可能较大，统一在这里压缩。
func Brotli(level int) ghttp.HandlerFunc {
	if level < brotli.BestSpeed || level > brotli.BestCompression {
		level = brotli.DefaultCompression
	}
	return func(r *ghttp.Request) {
		// 1. 检查客户端是否支持 Brotli
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "br") {
			r.Middleware.Next()
			return
		}

		// 2. 先执行业务逻辑
		r.Middleware.Next()

		// 3. 只有当响应状态码为 200、内容足够长且未被编码时才压缩
		if r.Response.Status != http.StatusOK ||
			r.Response.BufferLength() < brotliMinLength ||
			r.Response.Header().Get("Content-Encoding") != "" {
			return
		}

		// 4. 对响应内容进行 Brotli 压缩
		compressed, err := compressBrotli(r.Response.Buffer(), level)
		if err != nil {
			g.Log().Errorf(r.Context(), "Brotli 压缩失败: %v", err)
			return
		}

		// 5. 设置响应头，并用压缩后的内容替换原始响应
		r.Response.Header().Set("Content-Encoding", "br")
		// Vary 头告诉代理服务器，响应内容根据 Accept-Encoding 的不同而不同
		r.Response.Header().Add("Vary", "Accept-Encoding")
		r.Response.Header().Del("Content-Length")
		r.Response.ClearBuffer()
		r.Response.Write(compressed)
	}
}

func compressBrotli(body []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	writer := brotli.NewWriterLevel(&buf, level)
	if _, err := writer.Write(body); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
