package model

import (
	"time"

	"gorm.io/gorm"
)

/*

Tweet is a data model for a short community post published on a channel page.

Id: primary key, use to identify a tweet
Cursor: auto-inc global-unique index keeping insert order, the sort key the
	pagination cursor encodes
CreatedAt: time when entity is created, immutable
UpdatedAt: time when content is last edited
DeletedAt: time when entity is deleted

Content: tweet text, non-empty and at most 280 characters
OwnerID:
Owner: user who posted the tweet, looked up at read time, never embedded

*/
type Tweet struct {
	Id        string `gorm:"primaryKey" json:"id"`
	Cursor    int64  `gorm:"autoIncrement;uniqueIndex" json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-"`
	Content   string         `json:"content"`
	OwnerID   string         `gorm:"index" json:"ownerId"`
	Owner     *User          `json:"-"`
}

func (t Tweet) PageCursor() int64 { return t.Cursor }
func (t Tweet) PageViews() int64  { return 0 }
