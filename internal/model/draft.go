package model

import "time"

// Draft は未投稿の投稿フォームの内容を表す。
// (userID, postID) の組でキー付けされ、postIDが空の場合は新規投稿用の下書きとなる。
type Draft struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	Mood      string    `json:"mood"`
	UpdatedAt time.Time `json:"updatedAt"`
}
