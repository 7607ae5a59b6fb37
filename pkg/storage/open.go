package storage

import (
	"context"
	"database/sql"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	_ "modernc.org/sqlite"

	"github.com/vango-dev/dot/internal/config"
	"github.com/vango-dev/dot/internal/errors"
)

// Open constructs the backend named by cfg.Backend. Unknown names fail with
// E030. The SQL backend creates its table.
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemory(), nil

	case config.BackendBolt:
		b, err := OpenBolt(cfg.Path)
		if err != nil {
			return nil, errors.New("E002").WithDetail("bolt %s", cfg.Path).Wrap(err)
		}
		return b, nil

	case config.BackendSQL:
		return openSQL(ctx, cfg)

	case config.BackendS3:
		if cfg.Bucket == "" {
			return nil, errors.New("E022").WithDetail("storage.bucket is required for the s3 backend")
		}
		client := NewS3Client(cfg.Region, cfg.Endpoint, EnvCredentials(os.Getenv))
		return NewS3(client, cfg.Bucket, cfg.Prefix), nil

	default:
		return nil, errors.New("E030").
			WithDetail("%q", cfg.Backend).
			WithSuggestion("Use one of: memory, bolt, sql, s3")
	}
}

func openSQL(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.New("E002").WithDetail("sql driver %q", cfg.Driver).Wrap(err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.New("E002").WithDetail("sql %s", cfg.Driver).Wrap(err)
	}

	b := NewSQL(db, WithTable(cfg.Table), WithDialect(DialectFor(cfg.Driver)))
	b.ownsDB = true
	if err := b.CreateTable(ctx); err != nil {
		_ = db.Close()
		return nil, errors.New("E002").Wrap(err)
	}
	return b, nil
}

// EnvCredentials returns a provider reading the standard AWS_* variables
// through getenv.
func EnvCredentials(getenv func(string) string) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		creds := aws.Credentials{
			AccessKeyID:     getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    getenv("AWS_SESSION_TOKEN"),
			Source:          "Environment",
		}
		if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
			return aws.Credentials{}, errors.New("E002").WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are not set")
		}
		return creds, nil
	})
}
