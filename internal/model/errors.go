// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, feed, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodePostNotFound   = "POST_NOT_FOUND"
	ErrCodeDraftNotFound  = "DRAFT_NOT_FOUND"
	ErrCodeUserNotFound   = "USER_NOT_FOUND"
	ErrCodeEmptyBody      = "EMPTY_BODY"
	ErrCodeEmptyComment   = "EMPTY_COMMENT"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// NewPostNotFoundError は投稿未検出エラーを生成する。
func NewPostNotFoundError(postID string) *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された投稿が見つかりません: %s", postID),
		Category: "feed",
		Action:   "フィードを再読み込みして投稿IDを確認してください。",
	}
}

// NewDraftNotFoundError は下書き未検出エラーを生成する。
func NewDraftNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeDraftNotFound,
		Message:  "下書きが見つかりません。",
		Category: "feed",
		Action:   "下書きを保存してから再度お試しください。",
	}
}

// NewUserNotFoundError は現在ユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "現在のユーザーが見つかりません。",
		Category: "system",
		Action:   "ストアを初期化してから再度お試しください。",
	}
}

// NewEmptyBodyError は本文が空の投稿を作成しようとした場合のエラーを生成する。
func NewEmptyBodyError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyBody,
		Message:  "投稿の本文が空です。",
		Category: "validation",
		Action:   "本文を入力してください。",
	}
}

// NewEmptyCommentError は空のコメントを投稿しようとした場合のエラーを生成する。
func NewEmptyCommentError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyComment,
		Message:  "コメントが空です。",
		Category: "validation",
		Action:   "コメントを入力してください。",
	}
}

// NewInvalidRequestError はリクエストボディが不正な場合のエラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("リクエストが不正です: %s", reason),
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}

// NewInternalError は内部エラーを生成する。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
