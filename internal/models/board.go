package models

import "time"

// Board is a post protected by its own password, independent of the author's account.
type Board struct {
	ID       uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title    string    `json:"title" gorm:"type:varchar(255);not null"`
	Content  string    `json:"content" gorm:"type:text;not null"`
	Password string    `json:"-" gorm:"type:varchar(255);not null"`
	UserID   uint64    `json:"-" gorm:"not null;index"`
	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"-" gorm:"foreignKey:BoardID"`
	Audit
}

// BoardSummary is the list projection of a board.
type BoardSummary struct {
	ID        uint64
	Title     string
	Author    string
	CreatedAt time.Time
}
