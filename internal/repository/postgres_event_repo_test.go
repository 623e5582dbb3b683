package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/mdblog/internal/model"
)

// PostgresEventRepoはEventRepositoryインターフェースを満たすことを検証
func TestPostgresEventRepo_ImplementsInterface(t *testing.T) {
	var _ EventRepository = (*PostgresEventRepo)(nil)
}

// NewPostgresEventRepoが正しく初期化されることを検証
func TestNewPostgresEventRepo_Initializes(t *testing.T) {
	repo := NewPostgresEventRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// --- DB統合テスト ---

func setupEventTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := setupCommentTestDB(t)
	if _, err := db.Exec(`TRUNCATE events`); err != nil {
		t.Fatalf("テーブルのクリーンアップに失敗: %v", err)
	}
	return db
}

func testEvent(title string, start, end time.Time) *model.Event {
	return &model.Event{
		ID:        uuid.New().String(),
		Title:     title,
		Start:     start,
		End:       end,
		CreatedAt: time.Now().UTC(),
	}
}

// 挿入順に関わらずstart昇順で返ることを検証する。
func TestPostgresEventRepo_ListAll_OrderedByStartAsc(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewPostgresEventRepo(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	late := testEvent("あとの予定", base.Add(48*time.Hour), base.Add(49*time.Hour))
	early := testEvent("さきの予定", base, base.Add(time.Hour))
	middle := testEvent("あいだの予定", base.Add(24*time.Hour), base.Add(25*time.Hour))

	for _, e := range []*model.Event{late, early, middle} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	events, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}

	wantOrder := []string{"さきの予定", "あいだの予定", "あとの予定"}
	for i, want := range wantOrder {
		if events[i].Title != want {
			t.Errorf("events[%d].Title = %q, want %q", i, events[i].Title, want)
		}
	}
}

// start >= end のイベントもストア層では受け付けることを検証する。
// 順序の不変条件はストア層では課さない。
func TestPostgresEventRepo_Create_AcceptsStartAfterEnd(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewPostgresEventRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := testEvent("逆順の予定", now.Add(time.Hour), now)

	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	events, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
}

// descriptionのNULLが空文字列として読み取られることを検証する。
func TestPostgresEventRepo_NullDescription(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewPostgresEventRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := testEvent("説明なし", now, now.Add(time.Hour))

	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	events, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if events[0].Description != "" {
		t.Errorf("Description = %q, want empty", events[0].Description)
	}
}
