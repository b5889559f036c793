// Package model はドメインモデルを定義する。
package model

import "time"

// Post はフィードに表示される投稿を表す。
// ストアにはこの構造体のJSON表現がそのまま保存されるため、
// フィールド名はシードスナップショットのスキーマと一致させる。
type Post struct {
	ID            string     `json:"id" yaml:"id"`
	AuthorID      string     `json:"authorId" yaml:"authorId"`
	AuthorName    string     `json:"authorName" yaml:"authorName"`
	Team          string     `json:"team" yaml:"team"`
	Title         string     `json:"title,omitempty" yaml:"title,omitempty"`
	Body          string     `json:"body" yaml:"body"`
	Tags          []string   `json:"tags" yaml:"tags"`
	Mood          string     `json:"mood" yaml:"mood"`
	CreatedAt     time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt" yaml:"updatedAt"`
	LikeCount     int        `json:"likeCount" yaml:"likeCount"`
	BookmarkCount int        `json:"bookmarkCount" yaml:"bookmarkCount"`
	FlagCount     int        `json:"flagCount" yaml:"flagCount"`
	// Deleted は論理削除フラグ。読み取り側では参照しない。
	Deleted bool `json:"deleted" yaml:"deleted"`
}

// FeedPost は投稿にいいね状態とコメントを結合した表示用レコード。
// フィードの射影を実行するたびに新しく組み立てられる。
type FeedPost struct {
	Post
	IsLiked    bool     `json:"isLiked"`
	Comments   []string `json:"comments"`
	AuthorTeam string   `json:"authorTeam"`
	TimeAgo    string   `json:"timeAgo"`
	// BodyHTML は本文を表示用にエスケープしたHTML。保存はされない。
	BodyHTML string `json:"bodyHtml"`
}
