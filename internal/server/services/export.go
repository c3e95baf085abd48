package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	sc "github.com/dmitrijs2005/credvault/internal/server/config"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ExportURLValidity is how long the presigned download link stays valid.
const ExportURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type secretLister interface {
	List(ctx context.Context, ownerID string) ([]*models.Secret, error)
}

// ExportedSecret is one record of an export document. Only ciphertext
// leaves the server; the plaintext cannot be recovered without the
// master password.
type ExportedSecret struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Website     *string   `json:"website,omitempty"`
	Username    *string   `json:"username,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	Ciphertext  string    `json:"ciphertext"`
	Salt        string    `json:"salt"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ExportDocument struct {
	OwnerID    string           `json:"owner_id"`
	ExportedAt time.Time        `json:"exported_at"`
	Secrets    []ExportedSecret `json:"secrets"`
}

// Export is the result of ExportService.Export.
type Export struct {
	ObjectKey string
	URL       string
	ExpiresAt time.Time
}

// ExportService uploads a user's encrypted vault to object storage.
type ExportService struct {
	secrets secretLister
	config  *sc.Config
	now     func() time.Time
}

func NewExportService(secrets secretLister, config *sc.Config) *ExportService {
	return &ExportService{secrets: secrets, config: config, now: time.Now}
}

func exportKey(ownerID string) string {
	return fmt.Sprintf("exports/%s/%v.json", ownerID, uuid.New())
}

func (s *ExportService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func buildExport(ownerID string, at time.Time, list []*models.Secret) ExportDocument {
	doc := ExportDocument{OwnerID: ownerID, ExportedAt: at, Secrets: make([]ExportedSecret, 0, len(list))}
	for _, sec := range list {
		tags := sec.Tags
		if tags == nil {
			tags = []string{}
		}
		doc.Secrets = append(doc.Secrets, ExportedSecret{
			ID:          sec.ID,
			Name:        sec.Name,
			Website:     sec.Website,
			Username:    sec.Username,
			Description: sec.Description,
			Tags:        tags,
			Ciphertext:  hex.EncodeToString(sec.Ciphertext),
			Salt:        hex.EncodeToString(sec.Salt),
			CreatedAt:   sec.CreatedAt,
			UpdatedAt:   sec.UpdatedAt,
		})
	}
	return doc
}

// Export writes the caller's records to the bucket and returns a
// presigned GET link to the uploaded object.
func (s *ExportService) Export(ctx context.Context, ownerID string) (*Export, error) {
	list, err := s.secrets.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	body, err := json.Marshal(buildExport(ownerID, now, list))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal export: %w", common.ErrInternal, err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrObjectStorage, err)
	}

	bucket := s.config.S3Bucket
	key := exportKey(ownerID)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: upload export: %w", common.ErrObjectStorage, err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ExportURLValidity))
	if err != nil {
		return nil, fmt.Errorf("%w: presign export: %w", common.ErrObjectStorage, err)
	}

	return &Export{ObjectKey: key, URL: req.URL, ExpiresAt: now.Add(ExportURLValidity)}, nil
}
