package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
	sserrors "github.com/stackmill/secretsync/internal/errors"
	"github.com/stackmill/secretsync/internal/logging"
)

// DeleteParameters accepts at most this many names per request
const deleteBatchSize = 10

// SSMAPI defines the interface for AWS SSM Parameter Store operations
// This allows for mocking in tests
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
	DeleteParameters(ctx context.Context, params *ssm.DeleteParametersInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParametersOutput, error)
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// SSMStore implements ParameterStore against AWS Systems Manager Parameter
// Store
type SSMStore struct {
	client SSMAPI
	logger *logging.Logger
}

// SSMConfig holds AWS-specific configuration
type SSMConfig struct {
	Region  string
	Profile string
}

// SSMStoreOption is a functional option for configuring the store
type SSMStoreOption func(*SSMStore)

// WithClient sets a custom SSM client (for testing)
func WithClient(client SSMAPI) SSMStoreOption {
	return func(s *SSMStore) {
		s.client = client
	}
}

// NewSSMStore creates a Parameter Store client
func NewSSMStore(config SSMConfig, logger *logging.Logger, opts ...SSMStoreOption) (*SSMStore, error) {
	s := &SSMStore{logger: logger}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		client, err := createSSMClient(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create SSM client: %w", err)
		}
		s.client = client
	}

	return s, nil
}

// createSSMClient creates an AWS SSM client with the given configuration
func createSSMClient(config SSMConfig) (*ssm.Client, error) {
	ctx := context.Background()

	var configOpts []func(*awsconfig.LoadOptions) error

	if config.Region != "" {
		configOpts = append(configOpts, awsconfig.WithRegion(config.Region))
	}

	if config.Profile != "" {
		configOpts = append(configOpts, awsconfig.WithSharedConfigProfile(config.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return ssm.NewFromConfig(cfg), nil
}

// Get fetches a single parameter
func (s *SSMStore) Get(ctx context.Context, path string, decrypt bool) (Parameter, error) {
	input := &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(decrypt),
	}

	result, err := s.client.GetParameter(ctx, input)
	if err != nil {
		s.debugAPIError("GetParameter", path, err)
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return Parameter{}, ErrNotFound
		}
		return Parameter{}, sserrors.StoreError("get", err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return Parameter{}, fmt.Errorf("parameter %s has no value", path)
	}

	s.logger.Debug("GetParameter %s -> type=%s version=%d value=%s",
		path, result.Parameter.Type, result.Parameter.Version,
		logging.Secret(aws.ToString(result.Parameter.Value)))

	return Parameter{
		Path:   path,
		Value:  aws.ToString(result.Parameter.Value),
		Secure: result.Parameter.Type == types.ParameterTypeSecureString,
	}, nil
}

// Put writes a parameter as SecureString, overwriting any existing value
func (s *SSMStore) Put(ctx context.Context, path, value string) error {
	input := &ssm.PutParameterInput{
		Name:      aws.String(path),
		Value:     aws.String(value),
		Type:      types.ParameterTypeSecureString,
		Overwrite: aws.Bool(true),
	}

	result, err := s.client.PutParameter(ctx, input)
	if err != nil {
		s.debugAPIError("PutParameter", path, err)
		return sserrors.StoreError("put", err)
	}

	s.logger.Debug("PutParameter %s -> version=%d", path, result.Version)
	return nil
}

// Delete removes the given parameters, chunking requests to the API's batch
// limit
func (s *SSMStore) Delete(ctx context.Context, pathList []string) error {
	for start := 0; start < len(pathList); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(pathList) {
			end = len(pathList)
		}

		input := &ssm.DeleteParametersInput{
			Names: pathList[start:end],
		}

		result, err := s.client.DeleteParameters(ctx, input)
		if err != nil {
			s.debugAPIError("DeleteParameters", fmt.Sprintf("%v", pathList[start:end]), err)
			return sserrors.StoreError("delete", err)
		}

		s.logger.Debug("DeleteParameters deleted=%d invalid=%d",
			len(result.DeletedParameters), len(result.InvalidParameters))

		for _, invalid := range result.InvalidParameters {
			s.logger.Warn("Parameter %s could not be deleted (already gone?)", invalid)
		}
	}

	return nil
}

// ListByPath returns every parameter under the prefix, following pagination
func (s *SSMStore) ListByPath(ctx context.Context, prefix string, decrypt bool) ([]Parameter, error) {
	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(decrypt),
	}

	var parameters []Parameter
	paginator := ssm.NewGetParametersByPathPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			s.debugAPIError("GetParametersByPath", prefix, err)
			return nil, sserrors.StoreError("list", err)
		}

		s.logger.Debug("GetParametersByPath %s -> %d parameters", prefix, len(page.Parameters))

		for _, p := range page.Parameters {
			parameters = append(parameters, Parameter{
				Path:   aws.ToString(p.Name),
				Value:  aws.ToString(p.Value),
				Secure: p.Type == types.ParameterTypeSecureString,
			})
		}
	}

	return parameters, nil
}

// debugAPIError surfaces the SSM error code when debug logging is active
func (s *SSMStore) debugAPIError(operation, target string, err error) {
	if !s.logger.DebugEnabled() {
		return
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		s.logger.Debug("%s %s failed: %s (%s)", operation, target, apiErr.ErrorCode(), apiErr.ErrorMessage())
		return
	}
	s.logger.Debug("%s %s failed: %v", operation, target, err)
}
