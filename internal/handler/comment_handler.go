package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/mdblog/internal/model"
)

// CommentServiceInterface はコメントハンドラーが必要とするサービスインターフェース。
type CommentServiceInterface interface {
	// Create はコメントを作成する。
	Create(ctx context.Context, pageRef, token, text string) (*model.Comment, error)
	// List は指定ページのコメントを新しい順で返す。
	List(ctx context.Context, pageRef string) ([]model.Comment, error)
	// Delete はコメントを削除する。
	Delete(ctx context.Context, pageRef, token, commentID string) error
}

// CommentHandler はコメントAPIのHTTPハンドラー。
// 対象ページはRefererヘッダーから、認証トークンはAuthorizationヘッダーから取得する。
type CommentHandler struct {
	service CommentServiceInterface
}

// NewCommentHandler はCommentHandlerを生成する。
func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{service: service}
}

// createCommentRequest はコメント作成リクエストのボディ。
type createCommentRequest struct {
	Text string `json:"text"`
}

// deleteCommentRequest はコメント削除リクエストのボディ。
// 削除対象はIDのみで特定する。本文や作成者情報は送られてきても無視する。
type deleteCommentRequest struct {
	Comment struct {
		ID string `json:"id"`
	} `json:"comment"`
}

// commentAuthorResponse はコメント作成者のAPIレスポンス。
// Emailは作成レスポンス（本人の情報）にのみ含まれ、一覧では常に空。
type commentAuthorResponse struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Email   string `json:"email,omitempty"`
}

// commentResponse はコメントのAPIレスポンス。
type commentResponse struct {
	ID        string                `json:"id"`
	CreatedAt time.Time             `json:"created_at"`
	Text      string                `json:"text"`
	Author    commentAuthorResponse `json:"author"`
}

// ListComments は参照元ページのコメント一覧を返す。
// GET /api/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.List(r.Context(), r.Referer())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, toCommentResponse(&c))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// CreateComment はコメントを作成する。
// POST /api/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	comment, err := h.service.Create(r.Context(), r.Referer(), r.Header.Get("Authorization"), req.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(toCommentResponse(comment))
}

// DeleteComment はコメントを削除する。
// DELETE /api/comments
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	var req deleteCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	if err := h.service.Delete(r.Context(), r.Referer(), r.Header.Get("Authorization"), req.Comment.ID); err != nil {
		handleServiceError(w, err)
		return
	}

	// 削除成功は200の空ボディで応答する
	w.WriteHeader(http.StatusOK)
}

// toCommentResponse はmodel.CommentからAPIレスポンスに変換する。
func toCommentResponse(c *model.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Text:      c.Text,
		Author: commentAuthorResponse{
			Sub:     c.Author.Sub,
			Name:    c.Author.Name,
			Picture: c.Author.Picture,
			Email:   c.Author.Email,
		},
	}
}
