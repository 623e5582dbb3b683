package model

import "time"

// Event はスケジュールカレンダーの予定を表す。
// コメントとは独立したサブシステムで、認可モデルを持たない。
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
