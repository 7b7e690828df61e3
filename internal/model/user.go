package model

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username string   `json:"username" gorm:"uniqueIndex"`
	Password string   `json:"password"`
	Servers  []Server `json:"-" gorm:"many2many:server_members;"`
}

func (u *User) SanitizePassword() {
	u.Password = ""
}
