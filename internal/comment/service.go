// Package comment はコメントの作成・一覧・削除のドメインロジックを提供する。
package comment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/mdblog/internal/auth"
	"github.com/hitoshi/mdblog/internal/model"
	"github.com/hitoshi/mdblog/internal/pageurl"
	"github.com/hitoshi/mdblog/internal/repository"
)

// SanitizerService はコメント本文のサニタイズに必要なインターフェース。
// security.SanitizerServiceの部分集合として定義する。
type SanitizerService interface {
	SanitizeText(raw string) string
}

// MetricsRecorder はコメント操作のメトリクス記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordCommentCreated()
	RecordCommentDeleted()
}

// ServiceConfig はコメントサービスの設定。
type ServiceConfig struct {
	// AdminEmail は管理者削除オーバーライドに使用するメールアドレス。
	// このメールアドレスを持つ認証済みユーザーは任意のコメントを削除できる。
	AdminEmail string
}

// Service はコメントに関するビジネスロジックを提供する。
// すべての変更系操作はトークンをIdPで再検証してから実行される。
// 認可情報はキャッシュしない（鮮度優先の設計判断）。
type Service struct {
	repo      repository.CommentRepository
	directory auth.Directory
	sanitizer SanitizerService
	metrics   MetricsRecorder
	config    ServiceConfig
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	repo repository.CommentRepository,
	directory auth.Directory,
	sanitizer SanitizerService,
	metrics MetricsRecorder,
	config ServiceConfig,
) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		sanitizer: sanitizer,
		metrics:   metrics,
		config:    config,
	}
}

// Create は新しいコメントを作成する。
// pageRefは参照元URL（正規化前）、tokenはIdPのベアラートークン。
// 本文はHTMLタグ除去後に空でないことが要求される。
// 成功時は生成済みIDとタイムスタンプを含む保存済みコメントを返す。
func (s *Service) Create(ctx context.Context, pageRef, token, text string) (*model.Comment, error) {
	text = s.sanitizer.SanitizeText(text)
	if text == "" {
		return nil, model.NewMissingParameterError("text")
	}
	if token == "" {
		return nil, model.NewMissingParameterError("authorization")
	}

	url, err := pageurl.Normalize(pageRef)
	if err != nil {
		return nil, err
	}

	// 変更系操作のたびにIdPでトークンを再検証する
	author, err := s.directory.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		URL:       url,
		Text:      text,
		Author:    *author,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		slog.Error("failed to store comment", slog.String("error", err.Error()), slog.String("url", url))
		return nil, model.NewStoreUnavailableError()
	}

	s.recordCreated()
	slog.Info("comment created",
		slog.String("comment_id", comment.ID),
		slog.String("url", url),
		slog.String("author_sub", author.Sub),
	)

	return comment, nil
}

// List は指定ページのコメントを新しい順で返す。
// 各コメントの作成者スナップショットからemailを除去する（emailは書き込み専用）。
// コメントが存在しないページでは空スライスを返す。
func (s *Service) List(ctx context.Context, pageRef string) ([]model.Comment, error) {
	url, err := pageurl.Normalize(pageRef)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByURL(ctx, url)
	if err != nil {
		slog.Error("failed to list comments", slog.String("error", err.Error()), slog.String("url", url))
		return nil, model.NewStoreUnavailableError()
	}

	sanitized := make([]model.Comment, len(comments))
	for i, c := range comments {
		sanitized[i] = c.Sanitized()
	}

	return sanitized, nil
}

// Delete は指定ページのコメントを削除する。
// 許可されるのは以下のいずれかのみ:
//   - コメント作成者本人（認証済みsubと保存済みauthor_subが一致）
//   - 管理者（認証済みemailが設定済みAdminEmailと一致）
//
// それ以外の呼び出し元にはFORBIDDENを返す。
// 対象が存在しない場合はCOMMENT_NOT_FOUNDを返す（サイレントな成功にはしない）。
func (s *Service) Delete(ctx context.Context, pageRef, token, commentID string) error {
	if commentID == "" {
		return model.NewMissingParameterError("comment")
	}
	if token == "" {
		return model.NewMissingParameterError("authorization")
	}

	url, err := pageurl.Normalize(pageRef)
	if err != nil {
		return err
	}

	requester, err := s.directory.Lookup(ctx, token)
	if err != nil {
		return err
	}

	// 認可判定は保存済みスナップショットのsubに対して行う。
	// リクエストボディのコメント内容は信用しない。
	stored, err := s.repo.FindByID(ctx, url, commentID)
	if err != nil {
		slog.Error("failed to find comment", slog.String("error", err.Error()), slog.String("comment_id", commentID))
		return model.NewStoreUnavailableError()
	}
	if stored == nil {
		return model.NewCommentNotFoundError(commentID)
	}

	isAuthor := requester.Sub == stored.Author.Sub
	isAdmin := s.config.AdminEmail != "" && requester.Email == s.config.AdminEmail
	if !isAuthor && !isAdmin {
		slog.Warn("comment delete forbidden",
			slog.String("comment_id", commentID),
			slog.String("requester_sub", requester.Sub),
		)
		return model.NewForbiddenError()
	}

	deleted, err := s.repo.Delete(ctx, url, commentID)
	if err != nil {
		slog.Error("failed to delete comment", slog.String("error", err.Error()), slog.String("comment_id", commentID))
		return model.NewStoreUnavailableError()
	}
	if !deleted {
		// FindByIDと削除の間に消えた場合
		return model.NewCommentNotFoundError(commentID)
	}

	s.recordDeleted()
	slog.Info("comment deleted",
		slog.String("comment_id", commentID),
		slog.String("url", url),
		slog.Bool("by_admin", isAdmin && !isAuthor),
	)

	return nil
}

func (s *Service) recordCreated() {
	if s.metrics != nil {
		s.metrics.RecordCommentCreated()
	}
}

func (s *Service) recordDeleted() {
	if s.metrics != nil {
		s.metrics.RecordCommentDeleted()
	}
}
