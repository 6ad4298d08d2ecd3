package model

import "time"

// Court represents a court of law.
type Court struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:255;not null"`
	Code     string `json:"code" gorm:"uniqueIndex;size:20;not null"`
	Slug     string `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Location string `json:"location" gorm:"size:255"`
	Active   bool   `json:"active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CaseType classifies cases (civil, criminal, family, ...).
type CaseType struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Code        string `json:"code" gorm:"uniqueIndex;size:20;not null"`
	Description string `json:"description" gorm:"type:text"`
	Active      bool   `json:"active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
