package utils

import (
	"github.com/streamtube-app/streamtube/utils/dotenv"
	"github.com/streamtube-app/streamtube/utils/flag"
	Logger "github.com/streamtube-app/streamtube/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
)

// InitProfiler starts the Datadog profiler. Must be called once from main.
func InitProfiler() {
	env := "development"
	if dotenv.IsProdEnv() {
		env = "production"
	}

	if err := profiler.Start(
		profiler.WithService(flag.ServiceName),
		profiler.WithEnv(env),
		profiler.WithProfileTypes(
			profiler.CPUProfile,
			profiler.HeapProfile,
			// The profiles below are disabled by
			// default to keep overhead low, but
			// can be enabled as needed.
			// profiler.BlockProfile,
			// profiler.MutexProfile,
			// profiler.GoroutineProfile,
		),
	); err != nil {
		Logger.Log.Fatal(err)
	}
}

// CloseProfiler stops profiler, OK to be closed multiple times
func CloseProfiler() {
	profiler.Stop()
}
