// Package model はドメインモデルを定義する。
package model

import "time"

// Author はコメント作成時点のユーザープロフィールスナップショット。
// IdPのuserinfoエンドポイントから取得した値をそのまま保持し、
// 作成後にIdP側でプロフィールが変更されても過去のコメントには影響しない。
type Author struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	// Email は書き込み専用。一覧取得時には必ず除去される。
	Email string `json:"email,omitempty"`
}

// Comment はページURLに紐づくコメントを表す。
// URLは正規化済み（クエリ・フラグメント除去済み）の文字列をパーティションキーとする。
type Comment struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
}

// Sanitized はEmailを除去したコピーを返す。
// 一覧APIのレスポンス生成で使用する。
func (c Comment) Sanitized() Comment {
	c.Author.Email = ""
	return c
}
