package models

import "time"

// User is the administrative account shell. Password always holds a bcrypt
// hash, never the plaintext secret.
type User struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id" bson:"_id"`
	Username  string    `gorm:"column:username;type:text;uniqueIndex" json:"username" bson:"username"`
	Password  string    `gorm:"column:password;type:text" json:"-" bson:"password"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at" bson:"created_at"`
}

func (User) TableName() string { return "users" }
