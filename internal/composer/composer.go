// Package composer は投稿フォームの下書き保存と投稿作成のワークフローを提供する。
package composer

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/teamfeed/internal/metrics"
	"github.com/hitoshi/teamfeed/internal/model"
	"github.com/hitoshi/teamfeed/internal/repository"
)

// DefaultMood はフォーム初期化時のムード。
const DefaultMood = "funny"

// Form は投稿フォームの入力値。Tagsはカンマ区切りの文字列で保持する。
type Form struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tags  string `json:"tags"`
	Mood  string `json:"mood"`
}

// NewForm は初期値のフォームを返す。
func NewForm() Form {
	return Form{Mood: DefaultMood}
}

// Reset はフォームを初期値に戻す。
func (f *Form) Reset() {
	*f = NewForm()
}

// Author は投稿者のセッション情報。
type Author struct {
	ID   string
	Name string
	Team string
}

// Listener は投稿作成時に呼び出される。
type Listener func(post model.Post)

// Repository はComposerが利用するリポジトリの集合。
type Repository interface {
	repository.PostRepository
	repository.DraftRepository
	repository.UserRepository
}

// Composer は下書きの読み込み・保存と投稿作成を行う。
// 下書きは常に現在ユーザーの「新規投稿」キーに保存される。
type Composer struct {
	repo     Repository
	fallback Author
	metrics  metrics.MetricsCollector
	logger   *slog.Logger
	now      func() time.Time

	mu        sync.RWMutex
	listeners []Listener
}

// New はComposerの新しいインスタンスを生成する。
// fallbackはストアに現在ユーザーが無いときの投稿者として使う。
func New(repo Repository, fallback Author, collector metrics.MetricsCollector, logger *slog.Logger) *Composer {
	if collector == nil {
		collector = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		repo:     repo,
		fallback: fallback,
		metrics:  collector,
		logger:   logger,
		now:      time.Now,
	}
}

// Author は現在の投稿者を返す。
// ストアの現在ユーザーを優先するので、/api/me や /api/drafts/new と同じユーザーになる。
func (c *Composer) Author(ctx context.Context) Author {
	u := c.repo.GetCurrentUser(ctx)
	if u == nil || u.ID == "" {
		return c.fallback
	}
	return Author{ID: u.ID, Name: u.Name, Team: u.Team}
}

// OnPostCreated は投稿作成の通知先を登録する。
func (c *Composer) OnPostCreated(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// LoadDraft は新規投稿の下書きがあればフォームへ反映し、反映したかどうかを返す。
func (c *Composer) LoadDraft(ctx context.Context, f *Form) bool {
	draft := c.repo.GetDraft(ctx, c.Author(ctx).ID, "")
	if draft == nil {
		return false
	}
	f.Title = draft.Title
	f.Body = draft.Body
	f.Tags = strings.Join(draft.Tags, ", ")
	f.Mood = draft.Mood
	return true
}

// SaveDraft はフォームの内容を下書きとして無条件に保存する（空でも保存する）。
func (c *Composer) SaveDraft(ctx context.Context, f *Form) model.Draft {
	draft := model.Draft{
		Title:     f.Title,
		Body:      f.Body,
		Tags:      SplitTags(f.Tags),
		Mood:      f.Mood,
		UpdatedAt: c.now().UTC(),
	}
	c.repo.SaveDraft(ctx, c.Author(ctx).ID, draft, "")
	c.metrics.RecordDraftSaved()
	return draft
}

// CreatePost はフォームから投稿を作成する。
// 本文が空（空白のみを含む）の場合は何もせずnilを返し、通知も行わない。
// 本文は前後の空白だけを除いて入力どおり保存し、タイトルはそのまま保存する。
// 成功時は投稿を追加し、新規投稿の下書きを削除し、通知後にフォームをリセットする。
func (c *Composer) CreatePost(ctx context.Context, f *Form) *model.Post {
	body := strings.TrimSpace(f.Body)
	if body == "" {
		return nil
	}

	author := c.Author(ctx)
	now := c.now().UTC()
	post := model.Post{
		ID:         c.newID(now),
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Team:       author.Team,
		Title:      f.Title,
		Body:       body,
		Tags:       SplitTags(f.Tags),
		Mood:       f.Mood,
		CreatedAt:  now,
	}

	c.repo.AddPost(ctx, post)
	c.repo.ClearDraft(ctx, author.ID, "")
	c.metrics.RecordPostCreated()
	c.logger.Info("post created",
		slog.String("post_id", post.ID),
		slog.String("author_id", post.AuthorID),
	)

	c.mu.RLock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.RUnlock()
	for _, fn := range listeners {
		fn(post)
	}

	f.Reset()
	return &post
}

// newID は時刻順に並ぶ投稿IDを生成する。
func (c *Composer) newID(now time.Time) string {
	id, err := uuid.NewV7()
	if err != nil {
		c.logger.Warn("failed to generate uuid v7, falling back to timestamp",
			slog.String("error", err.Error()),
		)
		return "p" + strconv.FormatInt(now.UnixNano(), 10)
	}
	return "p" + id.String()
}

// SplitTags はカンマ区切りのタグ文字列を分割し、各要素の前後の空白を除去する。
// 空の要素も残すため、空文字列は [""] になる。
func SplitTags(s string) []string {
	tags := strings.Split(s, ",")
	for i, t := range tags {
		tags[i] = strings.TrimSpace(t)
	}
	return tags
}
