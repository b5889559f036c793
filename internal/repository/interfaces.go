// Package repository はデータ永続化のインターフェースと、
// キー・バリューストア上のローカルデータベース実装を提供する。
package repository

import (
	"context"

	"github.com/hitoshi/teamfeed/internal/model"
)

// Initializer はストアの初期化インターフェース。
type Initializer interface {
	// Init はシードデータを一度だけ書き込む。2回目以降の呼び出しは何もしない。
	Init(ctx context.Context)
	// Reset はストアを全消去する。次回のInitで再びシードされる。
	Reset(ctx context.Context)
}

// PostRepository は投稿データの永続化インターフェース。
type PostRepository interface {
	// GetPosts は全投稿を保存順で返す。未保存の場合は空スライスを返す。
	GetPosts(ctx context.Context) []model.Post

	// AddPost は投稿を末尾に追加する。
	AddPost(ctx context.Context, post model.Post)

	// UpdatePost はIDが一致する投稿を置き換える。
	// 見つからない場合は何もせずfalseを返す。
	UpdatePost(ctx context.Context, post model.Post) bool
}

// LikeRepository は現在ユーザーの「いいね」の永続化インターフェース。
// いいねはユーザー単位ではなくプロセス全体で1つのリストとして保持される。
type LikeRepository interface {
	// GetLikes はいいね済みの投稿IDを追加順で返す。
	GetLikes(ctx context.Context) []string

	// ToggleLike はいいね状態を反転し、likeCountを増減した投稿を返す。
	// 投稿が存在しない場合はエラーログを出力し、状態を変更せずnilを返す。
	ToggleLike(ctx context.Context, postID string) *model.Post
}

// CommentRepository はコメントの永続化インターフェース。
type CommentRepository interface {
	// GetComments は投稿のコメントを追加順で返す。
	GetComments(ctx context.Context, postID string) []string

	// AddComment はコメントを末尾に追加する。重複排除は行わない。
	AddComment(ctx context.Context, postID, text string)
}

// DraftRepository は下書きの永続化インターフェース。
// postIDが空文字の場合は新規投稿用の下書きを対象とする。
type DraftRepository interface {
	// GetDraft は下書きを返す。存在しない場合はnilを返す。
	GetDraft(ctx context.Context, userID, postID string) *model.Draft

	// SaveDraft は下書きを上書き保存する。
	SaveDraft(ctx context.Context, userID string, draft model.Draft, postID string)

	// ClearDraft は下書きのキーを削除する。
	ClearDraft(ctx context.Context, userID, postID string)
}

// UserRepository は現在ユーザーの取得インターフェース。
type UserRepository interface {
	// GetCurrentUser は現在ユーザーを返す。未保存の場合はnilを返す。
	GetCurrentUser(ctx context.Context) *model.User
}

// FeedRepository はローカルデータベースが提供する全操作をまとめたインターフェース。
type FeedRepository interface {
	Initializer
	PostRepository
	LikeRepository
	CommentRepository
	DraftRepository
	UserRepository
}
