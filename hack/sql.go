package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/glebarez/go-sqlite"

	"transcription-hub/internal/store"
)

// 初始化本地 SQLite 数据库，服务启动时也会执行同样的建表语句
func main() {
	path := flag.String("db", "db.sqlite3", "sqlite database file")
	flag.Parse()

	// 连接数据库
	db, err := sql.Open("sqlite", *path)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	for _, stmt := range store.SchemaStatements {
		if _, err = db.Exec(stmt); err != nil {
			log.Fatalf("apply schema: %v", err)
		}
	}
	log.Printf("schema applied to %s", *path)
}
