// Package security はアプリケーションのセキュリティ機能を提供する。
//
// SanitizerService はブログ記事のレンダリング済みHTMLとコメント本文を
// XSS攻撃などのセキュリティリスクから保護する。
// bluemondayライブラリを使用した許可リストベースのポリシーで、
// 安全なタグと属性のみを通過させる。
package security

import (
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// SanitizerService はHTMLサニタイズ機能のインターフェースを定義する。
type SanitizerService interface {
	// SanitizeHTML はmarkdownレンダリング後の記事HTMLをサニタイズする。
	// 許可タグ（見出し、段落、リスト、リンク、コード、画像等）のみを通過させ、
	// script, iframe, styleタグおよびon*イベント属性を除去する。
	// imgタグのsrc属性はhttpsスキームのみ許可される。
	// aタグにはtarget="_blank"とrel="noopener noreferrer"が自動付与される。
	// 同一入力に対して常に同一出力を返す（冪等）。
	SanitizeHTML(rawHTML string) string

	// SanitizeText はコメント本文からすべてのHTMLタグを除去し、
	// プレーンテキストのみを返す。前後の空白も除去される。
	SanitizeText(raw string) string
}

// sanitizer はSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type sanitizer struct {
	htmlPolicy *bluemonday.Policy
	textPolicy *bluemonday.Policy
}

// NewSanitizer はSanitizerServiceの新しいインスタンスを生成する。
// 初期化時にbluemondayのカスタムポリシーを構築する。
// 記事HTML用ポリシーの内容:
//   - 許可タグ: h1〜h6, p, br, hr, a, ul, ol, li, blockquote, pre, code,
//     strong, em, table, thead, tbody, tr, th, td, img
//   - 禁止タグ: script, iframe, style および全てのon*イベント属性
//   - imgのsrc属性: httpsスキームのみ許可
//   - aタグ: target="_blank" と rel="noreferrer noopener" を自動付与
//
// コメント本文用ポリシーはbluemondayのStrictPolicyで、全タグを除去する。
func NewSanitizer() *sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em",
		"table", "thead", "tbody", "tr", "th", "td",
	)

	// aタグ:
	// - href属性を許可
	// - 相対URLは記事内リンク用に許可
	// - target="_blank"を外部リンクに強制付与
	// - rel="noreferrer noopener"を強制付与
	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	// imgタグ:
	// - src属性はhttpsスキームのみ許可（http, javascript, data等は拒否）
	// - alt属性を許可（アクセシビリティ確保）
	p.AllowAttrs("src").OnElements("img")
	p.AllowAttrs("alt").OnElements("img")
	p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
		return true
	})

	return &sanitizer{
		htmlPolicy: p,
		textPolicy: bluemonday.StrictPolicy(),
	}
}

// SanitizeHTML は記事HTMLをサニタイズして安全なHTMLを返す。
func (s *sanitizer) SanitizeHTML(rawHTML string) string {
	return s.htmlPolicy.Sanitize(rawHTML)
}

// SanitizeText はコメント本文からすべてのHTMLタグを除去する。
func (s *sanitizer) SanitizeText(raw string) string {
	return strings.TrimSpace(s.textPolicy.Sanitize(raw))
}

// compile-time interface check
var _ SanitizerService = (*sanitizer)(nil)
