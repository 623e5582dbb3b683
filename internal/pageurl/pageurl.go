// Package pageurl はコメントのパーティションキーとなるページURLの正規化を提供する。
package pageurl

import (
	"net/url"

	"github.com/hitoshi/mdblog/internal/model"
)

// Normalize は参照元URLを `scheme://host/path` 形式に正規化する。
// クエリ文字列とフラグメントは除去される。
// トラッキングパラメータ付きのURLと素のURLが同一パーティションに収束することを保証する。
//
//	https://a.com/p?utm=x#top → https://a.com/p
//
// 解析できない入力、スキームまたはホストを欠く入力にはINVALID_URLエラーを返す。
func Normalize(raw string) (string, error) {
	if raw == "" {
		return "", model.NewInvalidURLError("URLが空です")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", model.NewInvalidURLError(raw)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", model.NewInvalidURLError(raw)
	}

	return u.Scheme + "://" + u.Host + u.Path, nil
}
