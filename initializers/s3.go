package initializers

import (
	"context"
	"ptw-backend/config"
	s3client "ptw-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("s3 endpoint is not set, attachments are disabled")
		return
	}
	client, err := s3client.NewClient(s3client.Options{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          config.Conf.S3.UseSSL != nil && *config.Conf.S3.UseSSL,
		BucketName:      config.Conf.S3.BucketName,
	})
	if err != nil {
		log.WithError(err).Error("error initializing s3 client")
		return
	}
	if err = client.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("s3 connection failed, bucket check returned an error")
	}
	s3client.Instance = client
	log.Info("s3 client initialized")
}
