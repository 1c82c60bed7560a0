package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*

Video is a data model for one uploaded video.

Id: primary key, use to identify a video
Cursor: auto-inc global-unique index to keep the relative insert order of
	videos, strictly monotonic with creation time. This is the sort key the
	pagination cursor encodes.
CreatedAt: time when entity is created
UpdatedAt: time when entity is last edited
DeletedAt: time when entity is deleted

Title: video title in plain text
Description: video description in plain text
VideoUrl: media store url of the transcoded video file, treated as opaque
ThumbnailUrl: media store url of the thumbnail, treated as opaque
Duration: playback length as reported by the media store, e.g. "12:41"
Views: denormalized view counter, incremented on every watch
IsPublished: unpublished videos are visible only to their owner

OwnerID:
Owner: user who uploaded the video, "belongs-to" relation

MediaMetadata: raw upload metadata returned by the media store, kept for
	debugging and re-transcoding, never projected to API responses

*/
type Video struct {
	Id            string `gorm:"primaryKey" json:"id"`
	Cursor        int64  `gorm:"autoIncrement;uniqueIndex" json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	VideoUrl      string         `json:"videoUrl"`
	ThumbnailUrl  string         `json:"thumbnailUrl"`
	Duration      string         `json:"duration"`
	Views         int64          `json:"views"`
	IsPublished   bool           `json:"isPublished"`
	OwnerID       string         `gorm:"index;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"ownerId"`
	Owner         User           `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	MediaMetadata datatypes.JSON `json:"-"`
}

func (v Video) PageCursor() int64 { return v.Cursor }
func (v Video) PageViews() int64  { return v.Views }
