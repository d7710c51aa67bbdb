package cmd

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"

	"transcription-hub/internal/model/entity"
	"transcription-hub/internal/service/segmentation"
	"transcription-hub/internal/service/storage"
	"transcription-hub/internal/store"
)

// openStore 打开 database.default 配置的数据库并建表。
func openStore(ctx context.Context) (store.Store, error) {
	db := g.DB()
	// SQLite 只允许单写，避免 database is locked
	if db.GetConfig().Type == "sqlite" {
		db.SetMaxOpenConnCount(1)
	}
	if err := store.Migrate(ctx, db); err != nil {
		return nil, gerror.Wrap(err, "初始化数据库失败")
	}
	return store.NewDB(db), nil
}

type seedUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
}

// seedUsers 按 users 配置补齐缺失的用户，已存在的用户名跳过。
func seedUsers(ctx context.Context, st store.Store) error {
	var seeds []seedUser
	if err := g.Cfg().MustGet(ctx, "users").Scan(&seeds); err != nil {
		return gerror.Wrap(err, "解析 users 配置失败")
	}
	if len(seeds) == 0 {
		return nil
	}
	existing, err := st.ListUsers(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, u := range existing {
		known[u.Username] = true
	}
	for _, seed := range seeds {
		if seed.Username == "" || known[seed.Username] {
			continue
		}
		id, err := st.CreateUser(ctx, &entity.User{Username: seed.Username, Role: seed.Role, FullName: seed.FullName})
		if err != nil {
			return gerror.Wrapf(err, "创建用户 %s 失败", seed.Username)
		}
		known[seed.Username] = true
		g.Log().Infof(ctx, "已创建用户 %s (id=%d, role=%s)", seed.Username, id, seed.Role)
	}
	return nil
}

// setupMirror 启用 storage.mirror 时把片段镜像到 TOS，配置不全时降级为仅本地存储。
func setupMirror(ctx context.Context, coord *segmentation.Coordinator) *storage.Mirror {
	if !g.Cfg().MustGet(ctx, "storage.mirror.enabled", false).Bool() {
		return nil
	}
	remote, err := storage.NewTOS(ctx)
	if err != nil {
		g.Log().Warningf(ctx, "TOS 初始化失败，片段镜像已禁用: %v", err)
		return nil
	}
	mirror := storage.NewMirror(
		remote,
		g.Cfg().MustGet(ctx, "storage.mirror.workers", 2).Int(),
		g.Cfg().MustGet(ctx, "storage.mirror.queueSize", 256).Int(),
	)
	coord.Observe(mirror)
	return mirror
}
