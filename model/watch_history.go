package model

import "time"

/*

WatchHistory is a "many-to-many" relation recording that UserID watched
VideoID. Re-watching refreshes WatchedAt instead of inserting a new row, so
the history list stays de-duplicated.

UserID: the watching user
VideoID: the watched video
WatchedAt: time of the most recent watch

*/
type WatchHistory struct {
	UserID    string `gorm:"primaryKey" json:"userId"`
	VideoID   string `gorm:"primaryKey" json:"videoId"`
	WatchedAt time.Time `gorm:"index" json:"watchedAt"`
}
