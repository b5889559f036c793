package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open はSQLiteデータベースファイルを開く。
// sqliteは同時書き込みでSQLITE_BUSYになりやすいため、接続数を1に制限する。
// sql.Openは接続を試行しないため、実際の接続確認にはdb.Ping()を使用すること。
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	return db, nil
}

// dsn はファイルパスからgo-sqlite3の接続文字列を組み立てる。
func dsn(path string) string {
	return "file:" + path + "?_busy_timeout=5000&_journal_mode=WAL"
}
