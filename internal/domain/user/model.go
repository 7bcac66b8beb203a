package user

import "time"

// User is a customer mirrored from a Telegram account. It is created on first contact and never deleted.
type User struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TelegramID int64     `json:"telegram_id" gorm:"uniqueIndex;not null"`
	Username   *string   `json:"username,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// DisplayName returns "@username" or a placeholder when the account has none.
func (u *User) DisplayName() string {
	if u == nil || u.Username == nil || *u.Username == "" {
		return "неизвестно"
	}
	return "@" + *u.Username
}
