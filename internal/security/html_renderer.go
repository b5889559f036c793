// Package security はアプリケーションのセキュリティ機能を提供する。
//
// 投稿本文やコメントはユーザーが書いたままのプレーンテキストとして保存する。
// HTMLとして表示するための派生値だけをTextRendererで生成する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextRenderer はプレーンテキストを表示用の安全なHTML断片へ変換するインターフェース。
// 保存値や入力検証には使わない。
type TextRenderer interface {
	// RenderHTML はテキストをエスケープし、改行を<br>に置き換えたHTMLを返す。
	RenderHTML(text string) string
}

// htmlRenderer はTextRendererの実装。
// 出力はbluemondayのUGCPolicyを通し、<br>以外の要素が混入しないことを保証する。
type htmlRenderer struct {
	policy *bluemonday.Policy
}

// NewTextRenderer はTextRendererの新しいインスタンスを生成する。
func NewTextRenderer() TextRenderer {
	return &htmlRenderer{
		policy: bluemonday.UGCPolicy(),
	}
}

var newlineReplacer = strings.NewReplacer("\r\n", "<br>", "\n", "<br>")

// RenderHTML はtextを表示用HTMLに変換する。
// エスケープ済みのため「<」を含む文章もそのまま文字として表示される。
func (r *htmlRenderer) RenderHTML(text string) string {
	if text == "" {
		return ""
	}
	return r.policy.Sanitize(newlineReplacer.Replace(html.EscapeString(text)))
}
