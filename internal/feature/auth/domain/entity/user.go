// Package entity はauthフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// User はシステムに登録されたユーザーを表します。
type User struct {
	// ID はユーザーの一意な識別子
	ID uint `json:"id" gorm:"primaryKey"`

	// Name はサインアップ時に登録した表示名
	Name string `json:"name" gorm:"size:255;not null;default:''"`

	// Email は小文字で保存し、全ユーザーで一意
	Email string `json:"email" gorm:"uniqueIndex;size:255;not null"`

	// Password はbcryptハッシュ。シリアライズしない
	Password string `json:"-" gorm:"size:255;not null"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
