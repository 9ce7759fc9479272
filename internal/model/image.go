package model

import "time"

// Image — запись об изображении. Для приложения только чтение.
type Image struct {
	ID        int64     `gorm:"column:imgid;primaryKey;autoIncrement"`
	Title     string    `gorm:"column:title;not null;index"`
	Path      string    `gorm:"column:path;not null"`
	PathThumb string    `gorm:"column:path_thumb;not null"`
	DateAdded time.Time `gorm:"column:date_added;autoCreateTime"`
	Rating    int       `gorm:"column:rating;not null;default:0"`
}

func (Image) TableName() string { return "images" }

// Thumb — проекция для сетки миниатюр.
type Thumb struct {
	Title     string `gorm:"column:title"`
	ID        int64  `gorm:"column:imgid"`
	PathThumb string `gorm:"column:path_thumb"`
}
