package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/mdblog/internal/model"
)

// PostgresCommentRepo はPostgreSQLを使用したコメントリポジトリ。
// 作成者スナップショットはフラット化したauthor_*カラムとして保持する。
// 作成時と削除時の認可判定は同じauthor_subカラムを参照するため、
// 照合の一貫性がスキーマレベルで保証される。
type PostgresCommentRepo struct {
	db *sql.DB
}

// NewPostgresCommentRepo はPostgresCommentRepoを生成する。
func NewPostgresCommentRepo(db *sql.DB) *PostgresCommentRepo {
	return &PostgresCommentRepo{db: db}
}

// Create はコメントを作成する。
func (r *PostgresCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, url, text, author_sub, author_name, author_picture, author_email, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		comment.ID, comment.URL, comment.Text,
		comment.Author.Sub, comment.Author.Name, comment.Author.Picture,
		nullableString(comment.Author.Email),
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// ListByURL は指定URLパーティションのコメントをcreated_at降順で返す。
func (r *PostgresCommentRepo) ListByURL(ctx context.Context, url string) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, url, text, author_sub, author_name, author_picture, author_email, created_at
		 FROM comments
		 WHERE url = $1
		 ORDER BY created_at DESC`,
		url,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

// FindByID は指定URLパーティション内のコメントをIDで取得する。見つからない場合はnilを返す。
func (r *PostgresCommentRepo) FindByID(ctx context.Context, url, id string) (*model.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, url, text, author_sub, author_name, author_picture, author_email, created_at
		 FROM comments
		 WHERE url = $1 AND id = $2`,
		url, id,
	)

	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete は指定URLパーティションからコメントを削除する。
// 削除された場合はtrueを返す。
func (r *PostgresCommentRepo) Delete(ctx context.Context, url, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE url = $1 AND id = $2`,
		url, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// rowScanner はsql.Rowとsql.Rowsの共通Scanインターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

// scanComment は1行分のコメントレコードを読み取る。
// author_emailのNULLは空文字列に変換する。
func scanComment(row rowScanner) (*model.Comment, error) {
	c := &model.Comment{}
	var email sql.NullString
	err := row.Scan(
		&c.ID, &c.URL, &c.Text,
		&c.Author.Sub, &c.Author.Name, &c.Author.Picture, &email,
		&c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	if email.Valid {
		c.Author.Email = email.String
	}
	return c, nil
}

// nullableString は空文字列をNULLに変換する。
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// compile-time interface check
var _ CommentRepository = (*PostgresCommentRepo)(nil)
