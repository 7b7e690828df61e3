package model

import "gorm.io/gorm"

type Channel struct {
	gorm.Model
	Name     string    `json:"name"`
	ServerID uint      `json:"server_id"`
	Messages []Message `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}
