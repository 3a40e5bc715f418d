package services

import (
	"bytes"
	"context"
	"io"
	"time"

	appconfig "glik/config"
	"glik/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StorageService кладет документы пользователей в S3-совместимое хранилище.
// Файлы шифруются PGP перед загрузкой, ключ хранится вне хранилища.
type StorageService struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucket     string
	publicKey  string
	privateKey string
}

// NewStorageService создает новый экземпляр StorageService
func NewStorageService(cfg *appconfig.Config) (*StorageService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKey,
			cfg.S3.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.S3.Region),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
	})

	return &StorageService{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucket:     cfg.S3.Bucket,
		publicKey:  cfg.DocumentPublicKey,
		privateKey: cfg.DocumentPrivateKey,
	}, nil
}

// Upload шифрует и загружает документ, возвращает ключ объекта
func (s *StorageService) Upload(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	data := content
	if s.publicKey != "" {
		encrypted, err := utils.EncryptWithPGP(content, s.publicKey)
		if err != nil {
			return "", err
		}
		data = encrypted
		contentType = "application/pgp-encrypted"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// Download возвращает содержимое объекта как есть, без расшифровки
func (s *StorageService) Download(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer result.Body.Close()
	return io.ReadAll(result.Body)
}

// PresignedURL возвращает временную ссылку на скачивание объекта
func (s *StorageService) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// DownloadDecrypted возвращает расшифрованное содержимое объекта.
// Если шифрование не настроено, объект отдается как есть.
func (s *StorageService) DownloadDecrypted(ctx context.Context, key string) ([]byte, error) {
	data, err := s.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	if s.privateKey == "" {
		return data, nil
	}
	return utils.DecryptWithPGP(data, s.privateKey)
}

// Delete удаляет объект из хранилища
func (s *StorageService) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
