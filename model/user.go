package model

import (
	"time"

	"gorm.io/gorm"
)

/*

User is a data model for a registered account. A user doubles as a "channel":
other users subscribe to it and its uploaded videos form the channel page.

Id: primary key, use to identify a user
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

Username: unique handle, lower-cased at registration
Email: account email
FullName: display name
AvatarUrl: profile image url, opaque media store url
CoverImageUrl: channel banner url, opaque media store url

PasswordHash: bcrypt hash, must never be serialized or projected
RefreshToken: rotating session token, must never be serialized or projected

Videos: videos uploaded by this user, "has-many" relation
WatchHistory: videos this user watched, most recent first

*/
type User struct {
	Id            string `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-"`
	Username      string         `gorm:"uniqueIndex" json:"username"`
	Email         string         `gorm:"uniqueIndex" json:"email"`
	FullName      string         `json:"fullName"`
	AvatarUrl     string         `json:"avatarUrl"`
	CoverImageUrl string         `json:"coverImageUrl"`
	PasswordHash  string         `json:"-"`
	RefreshToken  string         `json:"-"`
	Videos        []*Video       `json:"-" gorm:"foreignKey:OwnerID"`
}
