// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/mdblog/internal/model"
)

// CommentRepository はコメントデータの永続化インターフェース。
// コメントは正規化済みURLをパーティションキーとして格納される。
type CommentRepository interface {
	// Create はコメントを作成する。
	Create(ctx context.Context, comment *model.Comment) error

	// ListByURL は指定URLパーティションのコメントをcreated_at降順（新しい順）で返す。
	// コメントが存在しない場合は空スライスを返す（エラーにはしない）。
	ListByURL(ctx context.Context, url string) ([]model.Comment, error)

	// FindByID は指定URLパーティション内のコメントをIDで取得する。
	// 見つからない場合はnilを返す。
	// 認可判定（作成者sub照合）のため、削除前の取得に使用する。
	FindByID(ctx context.Context, url, id string) (*model.Comment, error)

	// Delete は指定URLパーティションからコメントを削除する。
	// 削除された場合はtrueを、対象が存在しなかった場合はfalseを返す。
	// 他のパーティションや他のコメントには影響しない。
	Delete(ctx context.Context, url, id string) (bool, error)
}

// EventRepository はカレンダーイベントの永続化インターフェース。
type EventRepository interface {
	// Create はイベントを作成する。
	// start >= end の入力もストア層では受け付ける（順序の不変条件は課さない）。
	Create(ctx context.Context, event *model.Event) error

	// ListAll は全イベントをstart昇順で返す。
	ListAll(ctx context.Context) ([]model.Event, error)
}
