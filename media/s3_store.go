package media

import (
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/streamtube-app/streamtube/utils"
)

type S3Store struct {
	bucket    string
	cdnPrefix string
	uploader  *s3manager.Uploader
	svc       *s3.S3
}

// NewS3Store builds a store against the given bucket. The public url prefix
// (usually a CloudFront distribution) comes from MEDIA_CDN_PREFIX.
func NewS3Store(bucket string) (*S3Store, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	})
	if err != nil {
		return nil, err
	}

	return &S3Store{
		bucket:    bucket,
		cdnPrefix: os.Getenv("MEDIA_CDN_PREFIX"),
		uploader:  s3manager.NewUploader(sess),
		svc:       s3.New(sess),
	}, nil
}

// Keys are random, the original file name only contributes the extension so
// two uploads of the same file never collide.
func (s *S3Store) generateKey(fileName string) string {
	return uuid.New().String() + utils.GetFileExtWithDot(fileName)
}

func (s *S3Store) Save(fileName string, body io.Reader) (string, error) {
	key := s.generateKey(fileName)
	_, err := s.uploader.Upload(&s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *S3Store) GetUrlFromKey(key string) string {
	return s.cdnPrefix + key
}

func (s *S3Store) Delete(key string) error {
	_, err := s.svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
