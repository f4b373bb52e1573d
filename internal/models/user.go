package models

import (
	"time"
)

// Activity action types
const (
	ActionAccountCreated  = "ACCOUNT_CREATED"
	ActionUserLogin       = "USER_LOGIN"
	ActionUserUpdated     = "USER_UPDATED"
	ActionUserDeleted     = "USER_DELETED"
	ActionPasswordChanged = "PASSWORD_CHANGED"
	ActionProfileUpdated  = "PROFILE_UPDATED"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	Role      string    `json:"role" gorm:"type:varchar(50);default:'user'"` // admin, user
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Activity is an append-only audit record. Actor and target references are
// nullable so rows survive the hard delete of the users they mention.
type Activity struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       *uint     `json:"user_id" gorm:"index"`
	ActionType   string    `json:"action_type" gorm:"type:varchar(50);not null"`
	Description  string    `json:"description" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	TargetUserID *uint     `json:"target_user_id" gorm:"index"`
}

// ActivityEntry is a feed row with usernames resolved via left joins; a
// deleted actor or target renders as an empty name.
type ActivityEntry struct {
	ID             uint      `json:"id"`
	ActionType     string    `json:"action_type"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	ActorUsername  string    `json:"actor_username"`
	TargetUsername string    `json:"target_username"`
}
