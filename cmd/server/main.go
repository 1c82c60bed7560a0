package main

import (
	"context"
	"os"

	"github.com/streamtube-app/streamtube/events"
	"github.com/streamtube-app/streamtube/media"
	"github.com/streamtube-app/streamtube/server"
	"github.com/streamtube-app/streamtube/server/handler"
	. "github.com/streamtube-app/streamtube/utils"
	"github.com/streamtube-app/streamtube/utils/dotenv"
	. "github.com/streamtube-app/streamtube/utils/log"
)

func cleanup() {
	CloseProfiler()
	CloseTracer()
	Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	InitTracer()
	InitProfiler()

	db, err := GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect database: ", err)
	}
	DatabaseSetupAndMigration(db)

	mediaStore, err := media.NewS3Store(os.Getenv("MEDIA_BUCKET"))
	if err != nil {
		Log.Fatal("fail to initialize media store: ", err)
	}

	progress, err := GetUploadProgressStore()
	if err != nil {
		// The server still runs without progress tracking, uploads just
		// don't report percentages.
		Log.Warn("fail to connect redis, upload progress disabled: ", err)
		progress = nil
	}

	bus := events.NewEventBus()
	if err := events.StartActivityLogger(context.Background(), bus); err != nil {
		Log.Fatal("fail to start activity logger: ", err)
	}
	publisher := events.NewPublisher(bus)

	h := handler.New(db, mediaStore, publisher, progress)
	router := server.NewRouter(h)

	Log.Info("api server starts up")
	router.Run(":8080")
}
