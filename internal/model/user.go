package model

import "time"

// User — учётная запись. Создаётся вне веб-приложения (memectl), читается при входе
// и при восстановлении сессии.
type User struct {
	ID          int64      `gorm:"column:user_id;primaryKey;autoIncrement"`
	ShortName   string     `gorm:"column:short_name;not null;default:''"`
	Email       string     `gorm:"column:email;not null;uniqueIndex"`
	Password    string     `gorm:"column:password;not null"`
	Salt        string     `gorm:"column:salt;not null;default:''"`
	DateCreated time.Time  `gorm:"column:date_created;autoCreateTime"`
	LastLogin   *time.Time `gorm:"column:last_login"`
	Admin       bool       `gorm:"column:admin;not null;default:false"`
	Active      bool       `gorm:"column:active;not null"`
}

func (User) TableName() string { return "users" }
