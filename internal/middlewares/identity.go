package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/gogf/gf/v2/util/gconv"

	"transcription-hub/internal/consts"
	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/store"
)

// UserHeader 由前置认证代理写入的用户 ID。
const UserHeader = "X-User-ID"

// Identity 把 X-User-ID 解析为已登记的用户并放入请求上下文。
// 认证本身由前置代理完成，这里只做身份映射。
func Identity(s store.Store) ghttp.HandlerFunc {
	return func(r *ghttp.Request) {
		raw := strings.TrimSpace(r.Header.Get(UserHeader))
		id := gconv.Int64(raw)
		if id <= 0 {
			abort(r, http.StatusUnauthorized, gcode.CodeNotAuthorized, "缺少或无效的 "+UserHeader)
			return
		}
		user, err := s.GetUser(r.Context(), id)
		if err != nil {
			g.Log().Errorf(r.Context(), "load user %d failed: %v", id, err)
			abort(r, http.StatusInternalServerError, gcode.CodeInternalError, "查询用户失败")
			return
		}
		if user == nil {
			abort(r, http.StatusUnauthorized, gcode.CodeNotAuthorized, "用户未登记")
			return
		}
		r.SetCtxVar(consts.CtxUser, user)
		r.Middleware.Next()
	}
}

func abort(r *ghttp.Request, status int, code gcode.Code, msg string) {
	r.Response.WriteHeader(status)
	r.Response.WriteJsonExit(ghttp.DefaultHandlerResponse{
		Code:    code.Code(),
		Message: msg,
	})
}

// CurrentUser 返回 Identity 中间件解析出的用户。
func CurrentUser(ctx context.Context) *entity.User {
	if user, ok := ctx.Value(consts.CtxUser).(*entity.User); ok {
		return user
	}
	return nil
}

// RequireUser 同 CurrentUser，没有用户时返回错误。
func RequireUser(ctx context.Context) (*entity.User, error) {
	if user := CurrentUser(ctx); user != nil {
		return user, nil
	}
	return nil, gerror.NewCode(consts.CodeNotAuthorized, "未识别的用户")
}

// RequireRole 要求当前用户属于 roles 之一。
func RequireRole(ctx context.Context, roles ...string) (*entity.User, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, gerror.NewCodef(consts.CodeNotAuthorized, "角色 %s 无权执行该操作", user.Role)
}
