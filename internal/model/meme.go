package model

import "time"

// Meme связывает короткий код с изображением. Записи только добавляются.
type Meme struct {
	Code    string    `gorm:"column:id;primaryKey;size:16"`
	ImageID int64     `gorm:"column:imgid;not null;index"`
	Created time.Time `gorm:"column:created;not null"`
}

func (Meme) TableName() string { return "meme" }
