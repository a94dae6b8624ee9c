package models

// User is a registered account. Nickname is unique among non-deleted users.
type User struct {
	ID       uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Nickname string    `json:"nickname" gorm:"type:varchar(100);not null;uniqueIndex:idx_users_nickname,where:deleted_at IS NULL"`
	Password string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash
	Boards   []Board   `json:"-" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"-" gorm:"foreignKey:UserID"`
	Audit
}
