package domain

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false;not null" json:"is_admin"`
	CreatedAt    time.Time `json:"-"`
}

// Identity is the authenticated caller resolved from the session.
// The zero value is an anonymous caller.
type Identity struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

func (i Identity) Authenticated() bool { return i.UserID != 0 }
