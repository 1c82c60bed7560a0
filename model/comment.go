package model

import (
	"time"

	"gorm.io/gorm"
)

/*

Comment is a data model for a comment left on a video.

Id: primary key, use to identify a comment
Cursor: auto-inc global-unique index keeping insert order, the sort key the
	pagination cursor encodes
CreatedAt: time when entity is created, immutable
UpdatedAt: time when content is last edited
DeletedAt: time when entity is deleted

Content: comment text, non-empty and at most 280 characters

VideoID:
Video: the video this comment belongs to, "belongs-to" relation
OwnerID:
Owner: user who wrote the comment, looked up at read time, never embedded

*/
type Comment struct {
	Id        string `gorm:"primaryKey" json:"id"`
	Cursor    int64  `gorm:"autoIncrement;uniqueIndex" json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-"`
	Content   string         `json:"content"`
	VideoID   string         `gorm:"index;constraint:OnDelete:CASCADE;" json:"videoId"`
	Video     *Video         `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	OwnerID   string         `gorm:"index" json:"ownerId"`
	Owner     *User          `json:"-"`
}

func (c Comment) PageCursor() int64 { return c.Cursor }
func (c Comment) PageViews() int64  { return 0 }
