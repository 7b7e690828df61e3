package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"concord/internal/config"
	"concord/internal/model"
	"concord/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// attachmentService stores uploaded files in S3 (or MinIO) and keeps the
// metadata row in postgres.
type attachmentService struct {
	config         *config.Config
	uploader       *manager.Uploader
	s3Client       *s3.Client
	attachmentRepo repository.AttachmentRepository
}

func NewAttachmentService(cfg *config.Config, attachmentRepo repository.AttachmentRepository) (AttachmentService, error) {
	s3Opts := []func(*s3.Options){}

	if cfg.S3Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	credsProvider := credentials.NewStaticCredentialsProvider(
		cfg.S3AccessKeyID,
		cfg.S3SecretAccessKey,
		"",
	)

	awsCfg := aws.Config{
		Region:      cfg.S3Region,
		Credentials: credsProvider,
	}

	s3Client := s3.NewFromConfig(awsCfg, s3Opts...)

	service := &attachmentService{
		config:         cfg,
		uploader:       manager.NewUploader(s3Client),
		s3Client:       s3Client,
		attachmentRepo: attachmentRepo,
	}

	log.Printf("attachment storage initialized with endpoint: %s", cfg.S3Endpoint)
	return service, nil
}

func (s *attachmentService) Upload(ctx context.Context, file io.Reader, filename, contentType string, size int64, uploaderID, channelID uint) (*model.Attachment, error) {
	attachmentID := uuid.New().String()
	s3Key := path.Join("channels", fmt.Sprint(channelID), attachmentID, filename)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3BucketName),
		Key:         aws.String(s3Key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	attachment := &model.Attachment{
		ID:          attachmentID,
		Filename:    filename,
		Size:        size,
		ContentType: contentType,
		S3Key:       s3Key,
		S3Bucket:    s.config.S3BucketName,
		UploaderID:  uploaderID,
		ChannelID:   channelID,
		CreatedAt:   time.Now(),
	}

	if err := s.attachmentRepo.Create(attachment); err != nil {
		return nil, fmt.Errorf("failed to save attachment metadata: %w", err)
	}

	return attachment, nil
}

func (s *attachmentService) DownloadURL(ctx context.Context, id string, expires time.Duration) (string, error) {
	attachment, err := s.attachmentRepo.FindByID(id)
	if err != nil {
		return "", fmt.Errorf("attachment %s not found: %w", id, err)
	}

	presignClient := s3.NewPresignClient(s.s3Client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(attachment.S3Bucket),
		Key:    aws.String(attachment.S3Key),
	}, s3.WithPresignExpires(expires))

	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}
