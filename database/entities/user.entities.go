package entities

import "time"

type User struct {
	ID           uint      `gorm:"column:id;type:bigSerial;primary_key;not null" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(255);unique;index;not null" json:"email"`
	Name         string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(50);default:'USER';not null" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp;not null" json:"createdAt"`
}
