// Package server assembles the gin engine: middleware chain, route table and
// the handler wiring.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/streamtube-app/streamtube/server/handler"
	"github.com/streamtube-app/streamtube/server/middlewares"
	"github.com/streamtube-app/streamtube/utils/flag"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

// NewRouter builds the engine with the full route table attached. Public
// reads go through OptionalJWT so viewer-dependent fields resolve when a
// token is present; every write requires one.
func NewRouter(h *handler.Handler) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(gintrace.Middleware(flag.ServiceName))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")

	videos := v1.Group("/videos")
	{
		videos.GET("", middlewares.OptionalJWT(), h.GetAllVideos)
		videos.GET("/channel/:username", middlewares.OptionalJWT(), h.GetChannelVideos)
		videos.GET("/:videoId", middlewares.OptionalJWT(), h.GetVideoById)
		videos.POST("", middlewares.JWT(), h.PublishVideo)
		videos.PATCH("/:videoId", middlewares.JWT(), h.UpdateVideo)
		videos.DELETE("/:videoId", middlewares.JWT(), h.DeleteVideo)
		videos.PATCH("/toggle/publish/:videoId", middlewares.JWT(), h.TogglePublishStatus)
	}

	comments := v1.Group("/comments")
	{
		comments.GET("/video/:videoId", middlewares.OptionalJWT(), h.GetVideoComments)
		comments.POST("/video/:videoId", middlewares.JWT(), h.AddComment)
		comments.GET("/:commentId", middlewares.OptionalJWT(), h.GetComment)
		comments.PATCH("/:commentId", middlewares.JWT(), h.UpdateComment)
		comments.DELETE("/:commentId", middlewares.JWT(), h.DeleteComment)
	}

	tweets := v1.Group("/tweets")
	{
		tweets.GET("/user/:username", middlewares.OptionalJWT(), h.GetUserTweets)
		tweets.POST("", middlewares.JWT(), h.CreateTweet)
		tweets.PATCH("/:tweetId", middlewares.JWT(), h.UpdateTweet)
		tweets.DELETE("/:tweetId", middlewares.JWT(), h.DeleteTweet)
	}

	likes := v1.Group("/likes", middlewares.JWT())
	{
		likes.POST("/toggle/v/:videoId", h.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", h.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", h.ToggleTweetLike)
		likes.GET("/videos", h.GetLikedVideos)
	}

	subscriptions := v1.Group("/subscriptions")
	{
		subscriptions.POST("/channel/:username", middlewares.JWT(), h.ToggleSubscription)
		subscriptions.GET("/channel/:username/subscribers", middlewares.OptionalJWT(), h.GetChannelSubscribers)
		subscriptions.GET("/channels", middlewares.JWT(), h.GetSubscribedChannels)
	}

	playlists := v1.Group("/playlists")
	{
		playlists.POST("", middlewares.JWT(), h.CreatePlaylist)
		playlists.GET("", middlewares.JWT(), h.GetMyPlaylists)
		playlists.GET("/:playlistId", middlewares.OptionalJWT(), h.GetPlaylist)
		playlists.PATCH("/:playlistId", middlewares.JWT(), h.UpdatePlaylist)
		playlists.DELETE("/:playlistId", middlewares.JWT(), h.DeletePlaylist)
		playlists.PATCH("/add/:videoId/:playlistId", middlewares.JWT(), h.AddVideoToPlaylist)
		playlists.PATCH("/remove/:videoId/:playlistId", middlewares.JWT(), h.RemoveVideoFromPlaylist)
	}

	users := v1.Group("/users")
	{
		users.GET("/c/:username", middlewares.OptionalJWT(), h.GetChannelProfile)
		users.GET("/history", middlewares.JWT(), h.GetWatchHistory)
		users.PATCH("/update-details", middlewares.JWT(), h.UpdateAccountDetails)
		users.PATCH("/avatar", middlewares.JWT(), h.UpdateAvatar)
		users.PATCH("/cover-image", middlewares.JWT(), h.UpdateCoverImage)
	}

	uploads := v1.Group("/uploads", middlewares.JWT())
	{
		uploads.GET("/:uploadId/progress", h.GetUploadProgress)
	}

	return router
}
