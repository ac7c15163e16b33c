package errors

import (
	"fmt"
	"strings"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context.
// A missing required field (for example secrets.file on deploy or pull)
// surfaces as a ConfigError before any remote call is made.
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// FormatError reports a secrets file whose content does not decode to a
// top-level mapping. It is fatal and raised before any remote interaction.
type FormatError struct {
	Path       string
	Message    string
	Suggestion string
}

func (e FormatError) Error() string {
	msg := "Invalid secrets file"
	if e.Path != "" {
		msg += fmt.Sprintf(" '%s'", e.Path)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// StoreError enhances parameter-store errors with context
func StoreError(operation string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("Parameter store error during %s", operation),
		Suggestion: getSSMSuggestion(err),
		Err:        err,
	}
}

// getSSMSuggestion returns helpful suggestions based on SSM errors
func getSSMSuggestion(err error) string {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "accessdenied"):
		return "Check IAM permissions: ssm:GetParameter, ssm:PutParameter, ssm:DeleteParameters, ssm:GetParametersByPath, and kms:Decrypt for SecureString"
	case strings.Contains(errStr, "parameternotfound"):
		return "Verify the parameter name and path. SSM parameters are case-sensitive"
	case strings.Contains(errStr, "invalidkeyid"):
		return "The KMS key for this SecureString parameter may not exist or you lack kms:Decrypt permission"
	case strings.Contains(errStr, "throttl"):
		return "Request was throttled. Wait a moment and try again"
	case strings.Contains(errStr, "region"):
		return "Check that you're using the correct AWS region where the parameters are stored"
	case strings.Contains(errStr, "credentials") || strings.Contains(errStr, "authorization"):
		return "Configure AWS credentials: 'aws configure' or set AWS_PROFILE"
	case strings.Contains(errStr, "timeout"):
		return "The operation timed out. Check your network connection and try again"
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return "Unable to connect. Check your network and AWS configuration"
	default:
		return "Check AWS credentials, region, and IAM permissions for SSM Parameter Store"
	}
}
