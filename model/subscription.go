package model

import "time"

/*

Subscription is a "many-to-many" relation recording that SubscriberID follows
the channel of ChannelID. Subscriber counts shown on videos and channel pages
are derived from this table by the aggregation join engine.

SubscriberID: the following user
ChannelID: the followed user (channel)
CreatedAt: time when relation is created

*/
type Subscription struct {
	Id           string `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	SubscriberID string    `gorm:"index:idx_sub_pair,unique" json:"subscriberId"`
	Subscriber   *User     `json:"-" gorm:"foreignKey:SubscriberID"`
	ChannelID    string    `gorm:"index:idx_sub_pair,unique;index" json:"channelId"`
	Channel      *User     `json:"-" gorm:"foreignKey:ChannelID"`
}
