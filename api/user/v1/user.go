package v1

import (
	"github.com/gogf/gf/v2/frame/g"

	"transcription-hub/internal/model/entity"
)

type CreateReq struct {
	g.Meta   `path:"/" method:"post" summary:"登记用户" dc:"仅管理员"`
	Username string `json:"username" v:"required|length:1,64"`
	Role     string `json:"role" v:"required|in:transcriber,reviewer,collector,admin"`
	FullName string `json:"fullName"`
}
type CreateRes struct {
	*entity.User
}

type ListReq struct {
	g.Meta `path:"/list" method:"get" summary:"用户列表" dc:"仅管理员"`
}
type ListRes struct {
	Users []*entity.User `json:"users"`
}

type MeReq struct {
	g.Meta `path:"/me" method:"get" summary:"当前用户"`
}
type MeRes struct {
	*entity.User
}
