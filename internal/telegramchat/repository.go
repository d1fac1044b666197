package telegramchat

import (
	"errors"

	"gorm.io/gorm"
)

// Repository encapsulates database access for the chat registry.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Register activates a chat, creating the row when it is new.
func (r *Repository) Register(chatID int64, title string) error {
	var chat Chat
	err := r.DB.Where("chat_id = ?", chatID).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(&Chat{ChatID: chatID, Title: title, IsActive: true}).Error
	}
	if err != nil {
		return err
	}
	chat.Title = title
	chat.IsActive = true
	return r.DB.Save(&chat).Error
}

// Unregister deactivates a chat. gorm.ErrRecordNotFound means the chat was
// never registered.
func (r *Repository) Unregister(chatID int64) error {
	res := r.DB.Model(&Chat{}).Where("chat_id = ?", chatID).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListActive returns the chats deal notifications fan out to.
func (r *Repository) ListActive() ([]Chat, error) {
	var list []Chat
	err := r.DB.Where("is_active = ?", true).Find(&list).Error
	return list, err
}
