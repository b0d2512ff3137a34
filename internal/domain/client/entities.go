package client

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("client profile not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type Profile struct {
	ID             uint64         `gorm:"primaryKey;column:id" json:"-"`
	ClientID       string         `gorm:"size:32;uniqueIndex:ux_clients_client_id" json:"client_id"`
	FullName       string         `gorm:"size:160;not null" json:"full_name"`
	Email          string         `gorm:"size:160;uniqueIndex:ux_clients_email" json:"email"`
	Phone          string         `gorm:"size:20" json:"phone"`
	DocumentNumber string         `gorm:"size:32" json:"document_number"`
	BirthDate      string         `gorm:"size:10" json:"birth_date"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Profile) TableName() string { return "client_profiles" }
