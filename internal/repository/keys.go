package repository

// ストアのキー。値はすべてJSON文字列として保存される。
const (
	KeyInitialized = "db_initialized"
	KeyPosts       = "posts"
	KeyCurrentUser = "currentUser"
	KeyLikes       = "likes"

	initializedValue = "true"
)

// CommentsKey は投稿ごとのコメントリストのキーを返す。
func CommentsKey(postID string) string {
	return "comments_" + postID
}

// DraftKey は下書きのキーを返す。postIDが空の場合は新規投稿用のキーになる。
func DraftKey(userID, postID string) string {
	if postID == "" {
		return "draft:" + userID + ":new"
	}
	return "draft:" + userID + ":post:" + postID
}
