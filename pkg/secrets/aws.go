package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// SecretsManagerAPI is the subset of the Secrets Manager client the store
// uses.
type SecretsManagerAPI interface {
	PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
}

// AWSConfig selects the account and naming of the AWS store.
type AWSConfig struct {
	Region  string
	Profile string
	// Prefix is prepended to every secret name.
	Prefix string
}

// AWSStore keeps each secret as its own AWS Secrets Manager secret named
// <prefix><NAME>.
type AWSStore struct {
	client      SecretsManagerAPI
	credentials aws.CredentialsProvider
	prefix      string
}

// NewAWSStore loads the default AWS configuration, honouring the optional
// region and profile overrides.
func NewAWSStore(ctx context.Context, cfg AWSConfig) (*AWSStore, error) {
	var opts []func(*awscfg.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awscfg.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, awscfg.WithSharedConfigProfile(cfg.Profile))
	}

	awsConfig, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load AWS config: %v", ErrStoreUnavailable, err)
	}

	return NewAWSStoreWithClient(secretsmanager.NewFromConfig(awsConfig), awsConfig.Credentials, cfg.Prefix), nil
}

// NewAWSStoreWithClient builds a store around an existing client. A nil
// credentials provider skips the credential check in Probe.
func NewAWSStoreWithClient(client SecretsManagerAPI, credentials aws.CredentialsProvider, prefix string) *AWSStore {
	return &AWSStore{client: client, credentials: credentials, prefix: prefix}
}

func (s *AWSStore) Name() string {
	return "AWS Secrets Manager"
}

// Probe resolves credentials so a missing login fails before any push.
func (s *AWSStore) Probe(ctx context.Context) error {
	if s.credentials == nil {
		return nil
	}
	if _, err := s.credentials.Retrieve(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Set writes a new version of the secret, creating it on first use.
func (s *AWSStore) Set(ctx context.Context, name, value string) error {
	id := s.prefix + name

	_, err := s.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(id),
		SecretString: aws.String(value),
	})
	if err == nil {
		return nil
	}

	var notFound *smtypes.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to set %s: %w", id, err)
	}

	_, err = s.client.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(id),
		SecretString: aws.String(value),
		Description:  aws.String("Managed by envctl"),
	})
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", id, err)
	}
	return nil
}

func (s *AWSStore) Guidance() []string {
	return []string{
		"Configure credentials with: aws configure",
		"Or set AWS_PROFILE / AWS_REGION, see: https://docs.aws.amazon.com/cli/latest/userguide/cli-configure-files.html",
	}
}
