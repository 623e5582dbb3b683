package model

import "time"

// Post はmarkdownファイルから読み込んだブログ記事を表す。
// 記事はデータベースではなくファイルシステム上のmarkdownとして管理される。
type Post struct {
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Author  string    `json:"author,omitempty"`
	Date    time.Time `json:"date"`
	Excerpt string    `json:"excerpt,omitempty"`
	// Content はサニタイズ済みHTML。一覧取得時は空。
	Content string `json:"content,omitempty"`
}
