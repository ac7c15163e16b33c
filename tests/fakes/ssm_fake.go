// Package fakes provides hand-written test doubles for the AWS SDK surface
// used by secretsync.
package fakes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// FakeSSMClient is a mock implementation of store.SSMAPI. Orchestrator tests
// hit it from concurrent goroutines, so every method is mutex-guarded.
type FakeSSMClient struct {
	mu sync.Mutex

	// Parameters maps parameter names to their data
	Parameters map[string]*ParameterData
	// Errors maps parameter names to errors to return
	Errors map[string]error

	// Call counters for asserting on remote traffic
	GetCalls    int
	PutCalls    int
	DeleteCalls int
	ListCalls   int

	// DeleteBatches records the name slices passed to DeleteParameters
	DeleteBatches [][]string

	// PageSize splits GetParametersByPath responses when > 0
	PageSize int

	// GetParameterFunc allows custom behavior for GetParameter
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error)
	// PutParameterFunc allows custom behavior for PutParameter
	PutParameterFunc func(ctx context.Context, params *ssm.PutParameterInput) (*ssm.PutParameterOutput, error)
}

// ParameterData holds the data for a mock SSM parameter
type ParameterData struct {
	Type      ssmtypes.ParameterType
	Value     string
	Version   int64
	Overwrite bool
}

// NewFakeSSMClient creates a new mock SSM client
func NewFakeSSMClient() *FakeSSMClient {
	return &FakeSSMClient{
		Parameters: make(map[string]*ParameterData),
		Errors:     make(map[string]error),
	}
}

// AddSecureStringParameter adds a SecureString parameter to the mock client
func (f *FakeSSMClient) AddSecureStringParameter(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Parameters[name] = &ParameterData{
		Type:    ssmtypes.ParameterTypeSecureString,
		Value:   value,
		Version: 1,
	}
}

// AddStringParameter adds a plain String parameter to the mock client
func (f *FakeSSMClient) AddStringParameter(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Parameters[name] = &ParameterData{
		Type:    ssmtypes.ParameterTypeString,
		Value:   value,
		Version: 1,
	}
}

// AddError configures the mock to return an error for a specific parameter
func (f *FakeSSMClient) AddError(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[name] = err
}

// RemoteCalls returns the total number of API calls seen
func (f *FakeSSMClient) RemoteCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.GetCalls + f.PutCalls + f.DeleteCalls + f.ListCalls
}

// GetParameter mocks the GetParameter operation
func (f *FakeSSMClient) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls++

	if f.GetParameterFunc != nil {
		return f.GetParameterFunc(ctx, params)
	}

	name := aws.ToString(params.Name)

	if err, exists := f.Errors[name]; exists {
		return nil, err
	}

	data, exists := f.Parameters[name]
	if !exists {
		return nil, &ssmtypes.ParameterNotFound{
			Message: aws.String(fmt.Sprintf("Parameter %s not found", name)),
		}
	}

	return &ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{
			Name:    params.Name,
			Type:    data.Type,
			Value:   aws.String(data.Value),
			Version: data.Version,
		},
	}, nil
}

// PutParameter mocks the PutParameter operation
func (f *FakeSSMClient) PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PutCalls++

	if f.PutParameterFunc != nil {
		return f.PutParameterFunc(ctx, params)
	}

	name := aws.ToString(params.Name)

	if err, exists := f.Errors[name]; exists {
		return nil, err
	}

	version := int64(1)
	if existing, exists := f.Parameters[name]; exists {
		version = existing.Version + 1
	}

	f.Parameters[name] = &ParameterData{
		Type:      params.Type,
		Value:     aws.ToString(params.Value),
		Version:   version,
		Overwrite: aws.ToBool(params.Overwrite),
	}

	return &ssm.PutParameterOutput{Version: version}, nil
}

// DeleteParameters mocks the DeleteParameters operation
func (f *FakeSSMClient) DeleteParameters(ctx context.Context, params *ssm.DeleteParametersInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParametersOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	f.DeleteBatches = append(f.DeleteBatches, append([]string(nil), params.Names...))

	var deleted, invalid []string
	for _, name := range params.Names {
		if err, exists := f.Errors[name]; exists {
			return nil, err
		}
		if _, exists := f.Parameters[name]; exists {
			delete(f.Parameters, name)
			deleted = append(deleted, name)
		} else {
			invalid = append(invalid, name)
		}
	}

	return &ssm.DeleteParametersOutput{
		DeletedParameters: deleted,
		InvalidParameters: invalid,
	}, nil
}

// GetParametersByPath mocks the GetParametersByPath operation with optional
// pagination via PageSize
func (f *FakeSSMClient) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++

	prefix := aws.ToString(params.Path)
	if err, exists := f.Errors[prefix]; exists {
		return nil, err
	}

	var names []string
	for name := range f.Parameters {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	// Stable order across calls so pagination offsets line up
	sort.Strings(names)

	start := 0
	if token := aws.ToString(params.NextToken); token != "" {
		fmt.Sscanf(token, "%d", &start)
	}

	end := len(names)
	var nextToken *string
	if f.PageSize > 0 && start+f.PageSize < len(names) {
		end = start + f.PageSize
		nextToken = aws.String(fmt.Sprintf("%d", end))
	}

	var out []ssmtypes.Parameter
	for _, name := range names[start:end] {
		data := f.Parameters[name]
		out = append(out, ssmtypes.Parameter{
			Name:    aws.String(name),
			Type:    data.Type,
			Value:   aws.String(data.Value),
			Version: data.Version,
		})
	}

	return &ssm.GetParametersByPathOutput{
		Parameters: out,
		NextToken:  nextToken,
	}, nil
}
