package model

import "time"

// User はセッションの現在ユーザーを表す。
// 現在ユーザーは常に1人で、複数ユーザーのストアは持たない。
type User struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Team     string    `json:"team" yaml:"team"`
	Avatar   *string   `json:"avatar" yaml:"avatar"`
	JoinedAt time.Time `json:"joinedAt" yaml:"joinedAt"`
}
