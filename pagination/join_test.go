package pagination

import (
	"testing"

	"github.com/streamtube-app/streamtube/utils"
	"github.com/stretchr/testify/require"
)

func TestOwnersBatchedLookup(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	alice := utils.TestCreateUser(t, db, "alice")
	bob := utils.TestCreateUser(t, db, "bob")

	owners, err := Owners(db, []string{alice.Id, bob.Id, alice.Id})
	require.NoError(t, err)
	require.Len(t, owners, 2)
	require.Equal(t, "alice", owners[alice.Id].Username)
	require.Equal(t, "bob", owners[bob.Id].Username)
}

// A deleted owner still yields a placeholder profile so the entities that
// reference it keep rendering and the page never shrinks.
func TestOwnersDanglingReference(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	alice := utils.TestCreateUser(t, db, "alice")

	owners, err := Owners(db, []string{alice.Id, "gone-user-id"})
	require.NoError(t, err)
	require.Len(t, owners, 2)
	require.Equal(t, "alice", owners[alice.Id].Username)
	require.Equal(t, "unknown", owners["gone-user-id"].Username)
	require.Equal(t, "Unknown User", owners["gone-user-id"].FullName)
}

func TestOwnersNeverProjectSecrets(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	alice := utils.TestCreateUser(t, db, "alice")
	alice.PasswordHash = "bcrypt-hash"
	require.NoError(t, db.Save(alice).Error)

	owners, err := Owners(db, []string{alice.Id})
	require.NoError(t, err)
	// The projection struct has no secret fields at all; this asserts the
	// public ones are what came back.
	require.Equal(t, Owner{
		Id:       alice.Id,
		Username: "alice",
		FullName: alice.FullName,
	}, owners[alice.Id])
}

func TestLikeCountsGrouped(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	owner := utils.TestCreateUser(t, db, "owner")
	fan1 := utils.TestCreateUser(t, db, "fan1")
	fan2 := utils.TestCreateUser(t, db, "fan2")
	v1 := utils.TestCreateVideo(t, db, owner.Id, "v1", 0, true)
	v2 := utils.TestCreateVideo(t, db, owner.Id, "v2", 0, true)
	v3 := utils.TestCreateVideo(t, db, owner.Id, "v3", 0, true)

	utils.TestCreateVideoLike(t, db, v1.Id, fan1.Id)
	utils.TestCreateVideoLike(t, db, v1.Id, fan2.Id)
	utils.TestCreateVideoLike(t, db, v2.Id, fan1.Id)

	counts, err := LikeCounts(db, LikeTargetVideo, []string{v1.Id, v2.Id, v3.Id})
	require.NoError(t, err)
	require.EqualValues(t, 2, counts[v1.Id])
	require.EqualValues(t, 1, counts[v2.Id])
	require.EqualValues(t, 0, counts[v3.Id])
}

func TestLikeCountsRejectsUnknownColumn(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	_, err := LikeCounts(db, "owner_id; DROP TABLE likes", []string{"x"})
	require.Error(t, err)
}

func TestLikedSet(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	owner := utils.TestCreateUser(t, db, "owner")
	fan := utils.TestCreateUser(t, db, "fan")
	v1 := utils.TestCreateVideo(t, db, owner.Id, "v1", 0, true)
	v2 := utils.TestCreateVideo(t, db, owner.Id, "v2", 0, true)

	utils.TestCreateVideoLike(t, db, v1.Id, fan.Id)

	liked, err := LikedSet(db, LikeTargetVideo, []string{v1.Id, v2.Id}, fan.Id)
	require.NoError(t, err)
	require.True(t, liked[v1.Id])
	require.False(t, liked[v2.Id])

	// Anonymous viewer likes nothing.
	liked, err = LikedSet(db, LikeTargetVideo, []string{v1.Id, v2.Id}, "")
	require.NoError(t, err)
	require.Empty(t, liked)
}

func TestSubscriberCounts(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	channel := utils.TestCreateUser(t, db, "channel")
	other := utils.TestCreateUser(t, db, "other")
	fan1 := utils.TestCreateUser(t, db, "fan1")
	fan2 := utils.TestCreateUser(t, db, "fan2")

	utils.TestCreateSubscription(t, db, fan1.Id, channel.Id)
	utils.TestCreateSubscription(t, db, fan2.Id, channel.Id)

	counts, err := SubscriberCounts(db, []string{channel.Id, other.Id})
	require.NoError(t, err)
	require.EqualValues(t, 2, counts[channel.Id])
	require.EqualValues(t, 0, counts[other.Id])
}
