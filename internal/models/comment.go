package models

// DefaultCommentContent replaces blank comment content.
const DefaultCommentContent = "Please enter your comment."

// Comment belongs to exactly one board and one author.
type Comment struct {
	ID      uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Content string `json:"content" gorm:"type:text;not null"`
	UserID  uint64 `json:"-" gorm:"not null;index"`
	User    User   `json:"-" gorm:"foreignKey:UserID"`
	BoardID uint64 `json:"-" gorm:"not null;index"`
	Board   Board  `json:"-" gorm:"foreignKey:BoardID"`
	Audit
}
