package model

import (
	"time"

	"gorm.io/gorm"
)

/*

Playlist is a data model for a user-curated ordered collection of videos.

Id: primary key
CreatedAt: time when entity is created
UpdatedAt: time when name/description/content last changed
DeletedAt: time when entity is deleted

Name: playlist title
Description: playlist description
OwnerID:
Owner: user who owns the playlist, "belongs-to" relation
Videos: videos in the playlist, "many-to-many" relation

*/
type Playlist struct {
	Id          string `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	OwnerID     string         `gorm:"index" json:"ownerId"`
	Owner       *User          `json:"-"`
	Videos      []*Video       `json:"videos" gorm:"many2many:playlist_videos;"`
}
