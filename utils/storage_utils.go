package utils

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Storage uploads files to an S3-compatible bucket and issues public URLs.
type Storage struct {
	client    *s3.S3
	bucket    string
	publicURL string
}

func NewStorage(accessKey, secretKey, bucket, region, endpoint string) (*Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}
	return &Storage{
		client:    s3.New(sess),
		bucket:    bucket,
		publicURL: fmt.Sprintf("%s/%s", endpoint, bucket),
	}, nil
}

// UploadFile stores the bytes under folder/fileName with public-read ACL and
// returns the public URL.
func (s *Storage) UploadFile(file []byte, fileName string, folder string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	contentType := http.DetectContentType(file)

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file: %v", err)
	}
	return fmt.Sprintf("%s/%s", s.publicURL, filePath), nil
}

// DeleteFile removes a previously uploaded object. Missing objects are not an
// error.
func (s *Storage) DeleteFile(filePath string) error {
	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(filePath),
	})
	return err
}
