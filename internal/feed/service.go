package feed

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/hitoshi/teamfeed/internal/metrics"
	"github.com/hitoshi/teamfeed/internal/model"
	"github.com/hitoshi/teamfeed/internal/repository"
	"github.com/hitoshi/teamfeed/internal/security"
)

// Repository はフィードサービスが利用するリポジトリの集合。
type Repository interface {
	repository.PostRepository
	repository.LikeRepository
	repository.CommentRepository
}

// Service はフィード表示のサービス層。
// いいね・コメントの変更後は差分更新せず、射影を丸ごと再計算して返す。
type Service struct {
	repo      Repository
	renderer security.TextRenderer
	metrics  metrics.MetricsCollector
	logger   *slog.Logger
	now      func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
// collectorがnilの場合はメトリクスを記録しない。rendererがnilの場合はBodyHTMLを空のままにする。
func NewService(repo Repository, renderer security.TextRenderer, collector metrics.MetricsCollector, logger *slog.Logger) *Service {
	if collector == nil {
		collector = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		renderer: renderer,
		metrics:  collector,
		logger:   logger,
		now:      time.Now,
	}
}

// List は現在の射影を返す。
func (s *Service) List(ctx context.Context, q Query) []model.FeedPost {
	start := time.Now()
	posts := Project(
		s.repo.GetPosts(ctx),
		s.repo.GetLikes(ctx),
		func(postID string) []string { return s.repo.GetComments(ctx, postID) },
		q,
		s.now(),
	)
	if s.renderer != nil {
		for i := range posts {
			posts[i].BodyHTML = s.renderer.RenderHTML(posts[i].Body)
		}
	}
	s.metrics.RecordProjectionLatency(time.Since(start))
	return posts
}

// ToggleLike はいいね状態を反転し、再計算した射影を返す。
// 存在しない投稿IDの場合はPOST_NOT_FOUNDを返す。
func (s *Service) ToggleLike(ctx context.Context, postID string, q Query) ([]model.FeedPost, error) {
	if !s.exists(ctx, postID) {
		return nil, model.NewPostNotFoundError(postID)
	}

	updated := s.repo.ToggleLike(ctx, postID)
	if updated == nil {
		// 投稿は存在するがストアへの書き込みに失敗した
		return nil, model.NewInternalError()
	}

	liked := slices.Contains(s.repo.GetLikes(ctx), postID)
	s.metrics.RecordLikeToggled(liked)
	s.logger.Info("like toggled",
		slog.String("post_id", postID),
		slog.Bool("liked", liked),
		slog.Int("like_count", updated.LikeCount),
	)

	return s.List(ctx, q), nil
}

// AddComment はコメントを追加し、再計算した射影を返す。
// 前後の空白を除去した結果が空のコメントは保存せず、EMPTY_COMMENTを返す。
// それ以外は除去後のテキストを書かれたまま保存する。
func (s *Service) AddComment(ctx context.Context, postID, text string, q Query) ([]model.FeedPost, error) {
	if !s.exists(ctx, postID) {
		return nil, model.NewPostNotFoundError(postID)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.NewEmptyCommentError()
	}

	s.repo.AddComment(ctx, postID, text)
	s.metrics.RecordCommentAdded()

	return s.List(ctx, q), nil
}

// Comments は投稿のコメント一覧を返す。
func (s *Service) Comments(ctx context.Context, postID string) []string {
	return s.repo.GetComments(ctx, postID)
}

func (s *Service) exists(ctx context.Context, postID string) bool {
	return slices.ContainsFunc(s.repo.GetPosts(ctx), func(p model.Post) bool { return p.ID == postID })
}
