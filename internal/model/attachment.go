package model

import "time"

// Attachment is the metadata row for a file stored in S3; the blob itself
// never touches postgres.
type Attachment struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	S3Key       string    `json:"s3_key"`
	S3Bucket    string    `json:"s3_bucket"`
	UploaderID  uint      `json:"uploader_id"`
	ChannelID   uint      `json:"channel_id"`
	CreatedAt   time.Time `json:"created_at"`
}
