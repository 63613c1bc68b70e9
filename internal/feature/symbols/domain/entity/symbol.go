// Package entity defines the domain models for the symbols feature.
package entity

import "time"

// Symbol represents a tradable instrument exposed to the dashboard's
// ticker filter. Exchange and Country drive the market-specific event
// catalogs shown alongside it.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Exchange  string    `gorm:"size:100;not null"`
	Country   string    `gorm:"size:8;not null;default:''"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
