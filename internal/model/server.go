package model

import "gorm.io/gorm"

// Server is the top level of the hierarchy: a server owns channels and has
// a many-to-many member set. Deleting a server takes its channels with it.
type Server struct {
	gorm.Model
	Name     string    `json:"name"`
	OwnerID  uint      `json:"owner_id"`
	Owner    User      `json:"-" gorm:"foreignKey:OwnerID"`
	Members  []User    `json:"-" gorm:"many2many:server_members;"`
	Channels []Channel `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}
