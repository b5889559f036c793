package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"github.com/hitoshi/teamfeed/internal/kvstore"
	"github.com/hitoshi/teamfeed/internal/model"
	"github.com/hitoshi/teamfeed/internal/seed"
)

// LocalDB はkvstore.Store上にJSON文字列として全データを保存するFeedRepository実装。
// メモリ上のキャッシュは持たず、すべての読み取りでストアから再パースする。
//
// 読み取り・変更・書き込みを伴う操作はmuで直列化する。
// 複数キーにまたがる書き込み（Init, ToggleLike）は1つのバッチでアトミックに適用する。
type LocalDB struct {
	store    *kvstore.Store
	snapshot *seed.Snapshot
	logger   *slog.Logger

	mu sync.Mutex
}

// NewLocalDB はLocalDBを生成する。snapshotはInitで書き込むシードデータ。
func NewLocalDB(store *kvstore.Store, snapshot *seed.Snapshot, logger *slog.Logger) *LocalDB {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalDB{
		store:    store,
		snapshot: snapshot,
		logger:   logger,
	}
}

var _ FeedRepository = (*LocalDB)(nil)

// Init はシードデータを一度だけ書き込む。
// 初期化済みフラグが"true"でない場合のみ、posts・currentUser・フラグを1バッチで保存する。
// 同一プロセス内の同時呼び出しはmuで直列化される。別プロセスとの競合は防げない。
func (r *LocalDB) Init(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.store.Get(ctx, KeyInitialized); ok && v == initializedValue {
		return
	}

	r.logger.Info("initializing local database from seed data")

	posts := []model.Post{}
	var user *model.User
	if r.snapshot != nil {
		posts = r.snapshot.Posts
		user = r.snapshot.CurrentUser
	}

	batch := kvstore.NewBatch()
	postsJSON, ok := r.encode(KeyPosts, posts)
	if !ok {
		return
	}
	batch.Set(KeyPosts, postsJSON)
	if user != nil {
		userJSON, ok := r.encode(KeyCurrentUser, user)
		if !ok {
			return
		}
		batch.Set(KeyCurrentUser, userJSON)
	}
	batch.Set(KeyInitialized, initializedValue)

	if r.store.Apply(ctx, batch) {
		r.logger.Info("local database initialized", slog.Int("posts", len(posts)))
	}
}

// Reset はストアを全消去する。
func (r *LocalDB) Reset(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.Clear(ctx)
	r.logger.Info("local database cleared")
}

// GetPosts は全投稿を返す。
func (r *LocalDB) GetPosts(ctx context.Context) []model.Post {
	posts := []model.Post{}
	r.decode(ctx, KeyPosts, &posts)
	if posts == nil {
		return []model.Post{}
	}
	return posts
}

// AddPost は投稿を末尾に追加する。
func (r *LocalDB) AddPost(ctx context.Context, post model.Post) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := append(r.GetPosts(ctx), post)
	r.write(ctx, KeyPosts, posts)
}

// UpdatePost はIDで線形探索し、見つかった投稿を置き換える。
func (r *LocalDB) UpdatePost(ctx context.Context, post model.Post) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := r.GetPosts(ctx)
	idx := indexOfPost(posts, post.ID)
	if idx < 0 {
		return false
	}
	posts[idx] = post
	r.write(ctx, KeyPosts, posts)
	return true
}

// GetCurrentUser は現在ユーザーを返す。
func (r *LocalDB) GetCurrentUser(ctx context.Context) *model.User {
	var user model.User
	if !r.decode(ctx, KeyCurrentUser, &user) {
		return nil
	}
	return &user
}

// GetLikes はいいね済みの投稿IDを返す。
func (r *LocalDB) GetLikes(ctx context.Context) []string {
	likes := []string{}
	r.decode(ctx, KeyLikes, &likes)
	if likes == nil {
		return []string{}
	}
	return likes
}

// ToggleLike はいいね状態を反転する。
// likesとpostsの2キーは1つのバッチで書き込むため、片方だけが更新されることはない。
func (r *LocalDB) ToggleLike(ctx context.Context, postID string) *model.Post {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := r.GetPosts(ctx)
	idx := indexOfPost(posts, postID)
	if idx < 0 {
		r.logger.Error("post not found", slog.String("post_id", postID))
		return nil
	}

	likes := r.GetLikes(ctx)
	if i := slices.Index(likes, postID); i >= 0 {
		likes = slices.Delete(likes, i, i+1)
		posts[idx].LikeCount--
	} else {
		likes = append(likes, postID)
		posts[idx].LikeCount++
	}

	likesJSON, ok := r.encode(KeyLikes, likes)
	if !ok {
		return nil
	}
	postsJSON, ok := r.encode(KeyPosts, posts)
	if !ok {
		return nil
	}
	batch := kvstore.NewBatch().
		Set(KeyLikes, likesJSON).
		Set(KeyPosts, postsJSON)
	if !r.store.Apply(ctx, batch) {
		return nil
	}

	updated := posts[idx]
	return &updated
}

// GetComments は投稿のコメントを返す。
func (r *LocalDB) GetComments(ctx context.Context, postID string) []string {
	comments := []string{}
	r.decode(ctx, CommentsKey(postID), &comments)
	if comments == nil {
		return []string{}
	}
	return comments
}

// AddComment はコメントを末尾に追加する。
func (r *LocalDB) AddComment(ctx context.Context, postID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comments := append(r.GetComments(ctx, postID), text)
	r.write(ctx, CommentsKey(postID), comments)
}

// GetDraft は下書きを返す。
func (r *LocalDB) GetDraft(ctx context.Context, userID, postID string) *model.Draft {
	var draft model.Draft
	if !r.decode(ctx, DraftKey(userID, postID), &draft) {
		return nil
	}
	return &draft
}

// SaveDraft は下書きを上書き保存する。
func (r *LocalDB) SaveDraft(ctx context.Context, userID string, draft model.Draft, postID string) {
	r.write(ctx, DraftKey(userID, postID), draft)
}

// ClearDraft は下書きを削除する。
func (r *LocalDB) ClearDraft(ctx context.Context, userID, postID string) {
	r.store.Remove(ctx, DraftKey(userID, postID))
}

// decode はキーの値をdstへJSONデコードする。
// 値がない場合やJSONが壊れている場合はfalseを返す（壊れている場合は警告ログを出す）。
func (r *LocalDB) decode(ctx context.Context, key string, dst any) bool {
	raw, ok := r.store.Get(ctx, key)
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		r.logger.Warn("corrupt value in store",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// encode はvをJSON文字列にする。
func (r *LocalDB) encode(key string, v any) (string, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		r.logger.Error("failed to encode value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return "", false
	}
	return string(b), true
}

// write はvをJSONにしてキーへ保存する。
func (r *LocalDB) write(ctx context.Context, key string, v any) {
	s, ok := r.encode(key, v)
	if !ok {
		return
	}
	r.store.Set(ctx, key, s)
}

func indexOfPost(posts []model.Post, id string) int {
	return slices.IndexFunc(posts, func(p model.Post) bool { return p.ID == id })
}
