// Package feed はフィードの射影（結合・検索・チーム絞り込み・並び替え）と、
// いいね・コメントの変更後に射影を再計算するサービスを提供する。
package feed

import (
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hitoshi/teamfeed/internal/model"
)

// SortNewest は新しい順の並び替え指定。それ以外の値はすべて古い順として扱う。
const SortNewest = "newest"

// SortOldest は古い順の並び替え指定。
const SortOldest = "oldest"

// Query はフィード表示の一時的な状態（検索語・チーム・並び順）を表す。
type Query struct {
	SearchTerm string
	TeamFilter string
	SortBy     string
}

// CommentsFunc は投稿IDからコメント一覧を取得する関数。
type CommentsFunc func(postID string) []string

// Project は投稿にいいね状態とコメントを結合し、検索・絞り込み・並び替えを適用した結果を返す。
//
//   - 検索: タイトルまたは本文に対する大文字小文字を区別しない部分一致（空なら絞り込まない）
//   - チーム: teamの完全一致（空なら絞り込まない）
//   - 並び替え: createdAtでnewestなら降順、それ以外は昇順。同時刻は保存順を保つ
//
// 論理削除フラグは参照しない。
func Project(posts []model.Post, likes []string, comments CommentsFunc, q Query, now time.Time) []model.FeedPost {
	term := strings.ToLower(q.SearchTerm)

	out := make([]model.FeedPost, 0, len(posts))
	for _, p := range posts {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Body), term) {
			continue
		}
		if q.TeamFilter != "" && p.Team != q.TeamFilter {
			continue
		}

		var cs []string
		if comments != nil {
			cs = comments(p.ID)
		}
		if cs == nil {
			cs = []string{}
		}

		out = append(out, model.FeedPost{
			Post:       p,
			IsLiked:    slices.Contains(likes, p.ID),
			Comments:   cs,
			AuthorTeam: p.Team,
			TimeAgo:    humanize.RelTime(p.CreatedAt, now, "ago", "from now"),
		})
	}

	newest := q.SortBy == SortNewest
	slices.SortStableFunc(out, func(a, b model.FeedPost) int {
		if newest {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return out
}
