package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// Storage archives export snapshots so a dated copy survives outside the
// device. Returns where the snapshot ended up.
type Storage interface {
	SaveSnapshot(filename string, data []byte) (string, error)
}

type LocalStorage struct {
	exportDir string
}

type SpacesStorage struct {
	client   *s3.S3
	bucket   string
	cdnURL   string
	endpoint string
}

func NewLocalStorage(exportDir string) *LocalStorage {
	return &LocalStorage{exportDir: exportDir}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client:   s3.New(sess),
		bucket:   bucket,
		cdnURL:   cdnURL,
		endpoint: endpoint,
	}, nil
}

func (ls *LocalStorage) SaveSnapshot(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(ls.exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	exportPath := filepath.Join(ls.exportDir, filename)
	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	log.Debug().Str("path", exportPath).Msg("export snapshot archived")
	return exportPath, nil
}

func (ss *SpacesStorage) SaveSnapshot(filename string, data []byte) (string, error) {
	key := fmt.Sprintf("exports/%s", filename)

	_, err := ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		ACL:         aws.String("private"),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to upload snapshot to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	cdnURL := fmt.Sprintf("%s/%s", ss.cdnURL, key)
	log.Debug().Str("url", cdnURL).Msg("export snapshot archived")
	return cdnURL, nil
}
