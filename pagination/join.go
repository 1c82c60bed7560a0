package pagination

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/streamtube-app/streamtube/model"
	"gorm.io/gorm"
)

/*

The aggregation join engine resolves owner profiles and derived counts for a
whole page at once. Every lookup here is a single batched query over the
page's ids; issuing one query per entity is exactly the N+1 pattern this
file exists to avoid. Lookups attach fields to the page, they never reorder
it and never drop an entity.

*/

// Owner is the projected subset of a user's profile that is joined into
// responses. Sensitive columns never pass through this projection.
type Owner struct {
	Id        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarUrl string `json:"avatarUrl"`
}

// Like target columns the count/status lookups are allowed to group on.
const (
	LikeTargetVideo   = "video_id"
	LikeTargetComment = "comment_id"
	LikeTargetTweet   = "tweet_id"
)

func validLikeTarget(column string) bool {
	return column == LikeTargetVideo || column == LikeTargetComment || column == LikeTargetTweet
}

// Owners resolves the given owner ids to projected profiles with one IN
// query. An id whose user was deleted maps to a placeholder profile so the
// referencing entity is still rendered instead of silently dropped, which
// would shrink the page below its limit and corrupt the HasMore signal.
func Owners(db *gorm.DB, ownerIds []string) (map[string]Owner, error) {
	out := make(map[string]Owner, len(ownerIds))
	if len(ownerIds) == 0 {
		return out, nil
	}

	unique := make([]string, 0, len(ownerIds))
	seen := make(map[string]bool, len(ownerIds))
	for _, id := range ownerIds {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	var owners []Owner
	err := db.Model(&model.User{}).
		Select("id", "username", "full_name", "avatar_url").
		Where("id IN ?", unique).
		Scan(&owners).Error
	if err != nil {
		return nil, errors.Wrap(err, "owner lookup failed")
	}

	for _, o := range owners {
		out[o.Id] = o
	}
	for _, id := range unique {
		if _, ok := out[id]; !ok {
			out[id] = Owner{Id: id, Username: "unknown", FullName: "Unknown User"}
		}
	}
	return out, nil
}

// LikeCounts computes the like count for every id in the page with a single
// grouped aggregation over the likes table. Ids without likes are absent
// from the map; callers treat that as zero.
func LikeCounts(db *gorm.DB, column string, ids []string) (map[string]int64, error) {
	if !validLikeTarget(column) {
		return nil, errors.Errorf("unsupported like target column: %s", column)
	}
	out := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		TargetId string
		Cnt      int64
	}
	err := db.Model(&model.Like{}).
		Select(fmt.Sprintf("%s AS target_id, COUNT(*) AS cnt", column)).
		Where(fmt.Sprintf("%s IN ?", column), ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "like count aggregation failed")
	}

	for _, r := range rows {
		out[r.TargetId] = r.Cnt
	}
	return out, nil
}

// LikedSet reports which of the page's ids the given viewer has liked,
// again with one IN query. An empty viewer id yields an empty set.
func LikedSet(db *gorm.DB, column string, ids []string, viewerId string) (map[string]bool, error) {
	if !validLikeTarget(column) {
		return nil, errors.Errorf("unsupported like target column: %s", column)
	}
	out := make(map[string]bool, len(ids))
	if len(ids) == 0 || viewerId == "" {
		return out, nil
	}

	var liked []string
	err := db.Model(&model.Like{}).
		Where(fmt.Sprintf("%s IN ?", column), ids).
		Where("liked_by_id = ?", viewerId).
		Pluck(column, &liked).Error
	if err != nil {
		return nil, errors.Wrap(err, "liked set lookup failed")
	}

	for _, id := range liked {
		out[id] = true
	}
	return out, nil
}

// SubscriberCounts computes the subscriber count for each channel id with a
// single grouped aggregation over the subscriptions table.
func SubscriberCounts(db *gorm.DB, channelIds []string) (map[string]int64, error) {
	out := make(map[string]int64, len(channelIds))
	if len(channelIds) == 0 {
		return out, nil
	}

	var rows []struct {
		ChannelId string
		Cnt       int64
	}
	err := db.Model(&model.Subscription{}).
		Select("channel_id, COUNT(*) AS cnt").
		Where("channel_id IN ?", channelIds).
		Group("channel_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "subscriber count aggregation failed")
	}

	for _, r := range rows {
		out[r.ChannelId] = r.Cnt
	}
	return out, nil
}
