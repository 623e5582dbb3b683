// Package event はスケジュールカレンダーのドメインロジックを提供する。
package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/mdblog/internal/model"
	"github.com/hitoshi/mdblog/internal/repository"
)

// MetricsRecorder はイベント操作のメトリクス記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordEventCreated()
}

// CreateInput はイベント作成の入力値。
type CreateInput struct {
	Title       string
	Start       time.Time
	End         time.Time
	Description string
}

// Service はイベントに関するビジネスロジックを提供する。
type Service struct {
	repo    repository.EventRepository
	metrics MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.EventRepository, metrics MetricsRecorder) *Service {
	return &Service{repo: repo, metrics: metrics}
}

// Create は新しいイベントを作成する。
// title・start・endは必須。start >= end の入力もそのまま受け付ける。
// 成功時は生成済みIDとタイムスタンプを含む保存済みイベントを返す。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Event, error) {
	if input.Title == "" {
		return nil, model.NewMissingParameterError("title")
	}
	if input.Start.IsZero() {
		return nil, model.NewMissingParameterError("start")
	}
	if input.End.IsZero() {
		return nil, model.NewMissingParameterError("end")
	}

	event := &model.Event{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Start:       input.Start,
		End:         input.End,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, event); err != nil {
		slog.Error("failed to store event", slog.String("error", err.Error()), slog.String("title", input.Title))
		return nil, model.NewStoreUnavailableError()
	}

	if s.metrics != nil {
		s.metrics.RecordEventCreated()
	}
	slog.Info("event created",
		slog.String("event_id", event.ID),
		slog.String("title", event.Title),
	)

	return event, nil
}

// List は全イベントを開始時刻の昇順で返す。
// イベントが存在しない場合は空スライスを返す。
func (s *Service) List(ctx context.Context) ([]model.Event, error) {
	events, err := s.repo.ListAll(ctx)
	if err != nil {
		slog.Error("failed to list events", slog.String("error", err.Error()))
		return nil, model.NewStoreUnavailableError()
	}
	return events, nil
}
