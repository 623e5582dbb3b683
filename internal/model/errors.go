// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, comment, event, post, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMissingParameter = "MISSING_PARAMETER"
	ErrCodeInvalidURL       = "INVALID_URL"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeInvalidMethod    = "INVALID_METHOD"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeCommentNotFound  = "COMMENT_NOT_FOUND"
	ErrCodePostNotFound     = "POST_NOT_FOUND"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
)

// NewMissingParameterError は必須パラメータ欠落エラーを生成する。
func NewMissingParameterError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingParameter,
		Message:  fmt.Sprintf("必須パラメータがありません: %s", name),
		Category: "validation",
		Action:   "リクエストに必要なパラメータを指定してください。",
	}
}

// NewInvalidURLError は参照元URLが解析できない場合のエラーを生成する。
func NewInvalidURLError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidURL,
		Message:  fmt.Sprintf("無効なURLです: %s", reason),
		Category: "validation",
		Action:   "正しいURL形式（http:// または https:// で始まるURL）のページから操作してください。",
	}
}

// NewUnauthorizedError はトークンが無効または解決できない場合のエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証トークンを検証できませんでした。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewForbiddenError は認証済みだが削除権限がない場合のエラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "このコメントを削除する権限がありません。",
		Category: "auth",
		Action:   "削除できるのはコメントの投稿者本人と管理者のみです。",
	}
}

// NewCommentNotFoundError はコメントが見つからない場合のエラーを生成する。
func NewCommentNotFoundError(commentID string) *APIError {
	return &APIError{
		Code:     ErrCodeCommentNotFound,
		Message:  fmt.Sprintf("指定されたコメントが見つかりません: %s", commentID),
		Category: "comment",
		Action:   "コメントはすでに削除されている可能性があります。ページを再読み込みしてください。",
	}
}

// NewPostNotFoundError は記事が見つからない場合のエラーを生成する。
func NewPostNotFoundError(slug string) *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された記事が見つかりません: %s", slug),
		Category: "post",
		Action:   "記事のURLを確認してください。",
	}
}

// NewStoreUnavailableError はデータストアに到達できない場合のエラーを生成する。
// 原因の詳細はログにのみ記録し、レスポンスには含めない。
func NewStoreUnavailableError() *APIError {
	return &APIError{
		Code:     ErrCodeStoreUnavailable,
		Message:  "データストアへのアクセスに失敗しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewInvalidMethodError はサポート外のHTTPメソッドに対するエラーを生成する。
func NewInvalidMethodError(method string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMethod,
		Message:  fmt.Sprintf("サポートされていないメソッドです: %s", method),
		Category: "validation",
		Action:   "GET、POST、DELETEのいずれかを使用してください。",
	}
}
