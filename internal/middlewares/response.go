package middlewares

import (
	"net/http"

	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/net/ghttp"

	"transcription-hub/internal/consts"
)

// HTTPStatus 错误码对应的 HTTP 状态码。
func HTTPStatus(code gcode.Code) int {
	switch code.Code() {
	case gcode.CodeOK.Code():
		return http.StatusOK
	case consts.CodeNotFound.Code():
		return http.StatusNotFound
	case consts.CodePreconditionFailed.Code():
		return http.StatusPreconditionFailed
	case consts.CodeInvalidParameter.Code(), gcode.CodeValidationFailed.Code(), gcode.CodeMissingParameter.Code():
		return http.StatusBadRequest
	case consts.CodeNotAuthorized.Code():
		return http.StatusForbidden
	case consts.CodeExternalToolFailure.Code():
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HandlerResponse 与 ghttp.MiddlewareHandlerResponse 相同的 {code,message,data} 结构，
// 另外按错误码设置 HTTP 状态码。
func HandlerResponse(r *ghttp.Request) {
	r.Middleware.Next()

	// 处理器已自行写出内容
	if r.Response.BufferLength() > 0 {
		return
	}

	var (
		msg  string
		err  = r.GetError()
		res  = r.GetHandlerResponse()
		code = gerror.Code(err)
	)
	if err != nil {
		if code == gcode.CodeNil {
			code = gcode.CodeInternalError
		}
		msg = err.Error()
		r.Response.WriteHeader(HTTPStatus(code))
	} else {
		if r.Response.Status > 0 && r.Response.Status != http.StatusOK {
			msg = http.StatusText(r.Response.Status)
			switch r.Response.Status {
			case http.StatusNotFound:
				code = gcode.CodeNotFound
			case http.StatusForbidden:
				code = gcode.CodeNotAuthorized
			default:
				code = gcode.CodeUnknown
			}
			r.SetError(gerror.NewCode(code, msg))
		} else {
			code = gcode.CodeOK
		}
	}
	r.Response.WriteJson(ghttp.DefaultHandlerResponse{
		Code:    code.Code(),
		Message: msg,
		Data:    res,
	})
}

// WriteError 供不经过 HandlerResponse 的处理器（WebSocket、文件下载）输出错误。
func WriteError(r *ghttp.Request, err error) {
	code := gerror.Code(err)
	if code == gcode.CodeNil {
		code = gcode.CodeInternalError
	}
	r.Response.WriteHeader(HTTPStatus(code))
	r.Response.WriteJsonExit(ghttp.DefaultHandlerResponse{
		Code:    code.Code(),
		Message: err.Error(),
	})
}
