package model

import "time"

/*

Like is a data model for a like left by a user on exactly one target entity.

Exactly one of VideoID / CommentID / TweetID is set. Like rows are the side
collection the aggregation join engine counts against; the count is always
derived, never stored back on the target.

Id: primary key
CreatedAt: time when the like was left
LikedByID: user who left the like

*/
type Like struct {
	Id        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	LikedByID string    `gorm:"index:idx_like_video,unique;index:idx_like_comment,unique;index:idx_like_tweet,unique" json:"likedById"`
	VideoID   *string   `gorm:"index:idx_like_video,unique" json:"videoId,omitempty"`
	CommentID *string   `gorm:"index:idx_like_comment,unique" json:"commentId,omitempty"`
	TweetID   *string   `gorm:"index:idx_like_tweet,unique" json:"tweetId,omitempty"`
}
