package position

import "gorm.io/gorm"

// Position is a leveled role. Level runs from 1 (agent) to 5 (owner) and
// drives both commission-split lookup and section permissions.
type Position struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Level int    `gorm:"not null;uniqueIndex" json:"level"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Position{})
}

// SeedDefaults inserts the standard five positions when the table is empty.
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Position{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := []Position{
		{Name: "Agent", Level: 1},
		{Name: "Senior Agent", Level: 2},
		{Name: "Manager", Level: 3},
		{Name: "Admin", Level: 4},
		{Name: "Owner", Level: 5},
	}
	return db.Create(&defaults).Error
}
