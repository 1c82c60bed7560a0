package utils

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// Upload progress entries are transient, a stale entry only survives until
// this TTL expires.
const uploadProgressTTL = 24 * time.Hour

var ctx = context.Background()

/*

UploadProgressStore tracks the progress of in-flight media uploads in Redis,
keyed by a fresh upload id minted per request. Each upload handler gets its
own handle through this store, there is no process-wide "current upload"
state, so concurrent uploads never observe each other's progress.

*/
type UploadProgressStore struct {
	inner     *redis.Client
	keyParser redisKeyParser
}

func GetUploadProgressStore() (*UploadProgressStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return &UploadProgressStore{
		inner:     redisClient,
		keyParser: redisKeyParser{delimiter: "__"},
	}, nil
}

type redisKeyParser struct {
	delimiter string
}

func (r redisKeyParser) validateId(id string) bool {
	return id != "" && !strings.Contains(id, r.delimiter)
}

func (r redisKeyParser) encodeUploadKey(uploadId string) (string, error) {
	if !r.validateId(uploadId) {
		return "", fmt.Errorf("invalid upload id: %s", uploadId)
	}
	return fmt.Sprintf("upload%s%s", r.delimiter, uploadId), nil
}

// SetProgress records the percentage [0, 100] for the given upload.
func (s *UploadProgressStore) SetProgress(uploadId string, percent int) error {
	key, err := s.keyParser.encodeUploadKey(uploadId)
	if err != nil {
		return err
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return s.inner.Set(ctx, key, strconv.Itoa(percent), uploadProgressTTL).Err()
}

// GetProgress returns the recorded percentage for the given upload, and
// whether any progress has been recorded at all.
func (s *UploadProgressStore) GetProgress(uploadId string) (int, bool, error) {
	key, err := s.keyParser.encodeUploadKey(uploadId)
	if err != nil {
		return 0, false, err
	}
	val, err := s.inner.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	percent, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt progress entry for %s: %q", uploadId, val)
	}
	return percent, true, nil
}

// ClearProgress drops the entry once the upload finished or failed.
func (s *UploadProgressStore) ClearProgress(uploadId string) error {
	key, err := s.keyParser.encodeUploadKey(uploadId)
	if err != nil {
		return err
	}
	return s.inner.Del(ctx, key).Err()
}
