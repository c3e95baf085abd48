package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/credvault/internal/common"
	sc "github.com/dmitrijs2005/credvault/internal/server/config"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	out []*models.Secret
	err error
}

func (f *fakeLister) List(context.Context, string) ([]*models.Secret, error) {
	return f.out, f.err
}

func newExportSvc(t *testing.T, lister secretLister) *ExportService {
	t.Helper()
	cfg := &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "admin",
		S3RootPassword: "secretpassword",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "vault",
	}
	svc := NewExportService(lister, cfg)
	svc.now = func() time.Time { return t0 }
	return svc
}

// stubS3 replaces the S3 seams for the duration of the test.
func stubS3(t *testing.T, put func(in *s3.PutObjectInput) error, presign func(in *s3.GetObjectInput) (string, error)) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origPut := putObject
	origNewPre := newS3PresignClient
	origPresign := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		putObject = origPut
		newS3PresignClient = origNewPre
		presignGetObject = origPresign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://127.0.0.1:9000" {
			t.Fatalf("BaseEndpoint not applied")
		}
		return &s3.Client{}
	}
	putObject = func(_ *s3.Client, _ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		if err := put(in); err != nil {
			return nil, err
		}
		return &s3.PutObjectOutput{}, nil
	}
	newS3PresignClient = func(*s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	presignGetObject = func(_ *s3.PresignClient, _ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		url, err := presign(in)
		if err != nil {
			return nil, err
		}
		return &v4.PresignedHTTPRequest{URL: url}, nil
	}
}

func TestExportService_Export(t *testing.T) {
	lister := &fakeLister{out: []*models.Secret{{
		ID: secretID, OwnerID: alice, Name: "bank", Website: ptr("bank.example"),
		Ciphertext: []byte{0xde, 0xad}, Salt: []byte{0xbe, 0xef}, Tags: []string{"finance"},
	}}}
	svc := newExportSvc(t, lister)

	var uploaded ExportDocument
	var putKey string
	stubS3(t, func(in *s3.PutObjectInput) error {
		assert.Equal(t, "vault", *in.Bucket)
		putKey = *in.Key
		body, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "1234")
		return json.Unmarshal(body, &uploaded)
	}, func(in *s3.GetObjectInput) (string, error) {
		assert.Equal(t, putKey, *in.Key)
		return "http://127.0.0.1:9000/vault/" + *in.Key + "?X-Amz-Signature=x", nil
	})

	exp, err := svc.Export(context.Background(), alice)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(exp.ObjectKey, "exports/"+alice+"/"))
	assert.True(t, strings.HasSuffix(exp.ObjectKey, ".json"))
	assert.Equal(t, putKey, exp.ObjectKey)
	assert.Contains(t, exp.URL, exp.ObjectKey)
	assert.True(t, exp.ExpiresAt.Equal(t0.Add(ExportURLValidity)))

	require.Len(t, uploaded.Secrets, 1)
	assert.Equal(t, alice, uploaded.OwnerID)
	assert.Equal(t, "dead", uploaded.Secrets[0].Ciphertext)
	assert.Equal(t, "beef", uploaded.Secrets[0].Salt)
	assert.Equal(t, []string{"finance"}, uploaded.Secrets[0].Tags)
}

func TestExportService_Export_Errors(t *testing.T) {
	ok := func(*s3.PutObjectInput) error { return nil }
	okURL := func(*s3.GetObjectInput) (string, error) { return "u", nil }
	boom := errors.New("boom")

	t.Run("list", func(t *testing.T) {
		svc := newExportSvc(t, &fakeLister{err: common.ErrDatabase})
		stubS3(t, ok, okURL)
		_, err := svc.Export(context.Background(), alice)
		assert.ErrorIs(t, err, common.ErrDatabase)
	})
	t.Run("put", func(t *testing.T) {
		svc := newExportSvc(t, &fakeLister{})
		stubS3(t, func(*s3.PutObjectInput) error { return boom }, okURL)
		_, err := svc.Export(context.Background(), alice)
		assert.ErrorIs(t, err, common.ErrObjectStorage)
		assert.ErrorIs(t, err, boom)
	})
	t.Run("presign", func(t *testing.T) {
		svc := newExportSvc(t, &fakeLister{})
		stubS3(t, ok, func(*s3.GetObjectInput) (string, error) { return "", boom })
		_, err := svc.Export(context.Background(), alice)
		assert.ErrorIs(t, err, common.ErrObjectStorage)
	})
	t.Run("config", func(t *testing.T) {
		svc := newExportSvc(t, &fakeLister{})
		stubS3(t, ok, okURL)
		loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, boom
		}
		_, err := svc.Export(context.Background(), alice)
		assert.ErrorIs(t, err, common.ErrObjectStorage)
	})
}

func TestBuildExport_EmptyTags(t *testing.T) {
	doc := buildExport(alice, t0, []*models.Secret{{ID: secretID, Name: "n"}})
	assert.Equal(t, []string{}, doc.Secrets[0].Tags)
}
