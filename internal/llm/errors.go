package llm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrorKind is the closed taxonomy of terminal failures. Once raised, the
// invocation ends; retry is the caller's responsibility.
type ErrorKind int

const (
	// KindNoChanges means the change set was empty (checked before any provider call)
	KindNoChanges ErrorKind = iota
	// KindAPIKeyMissing means no credential is configured for a cloud provider
	KindAPIKeyMissing
	// KindAPIKeyInvalid means the provider rejected the credential
	KindAPIKeyInvalid
	// KindQuotaExceeded means the provider rate or quota limit was hit
	KindQuotaExceeded
	// KindRequestFailed is the catch-all for malformed responses, network
	// failures and unclassified provider errors
	KindRequestFailed
)

// Code returns the stable machine-readable error code for the kind
func (k ErrorKind) Code() string {
	switch k {
	case KindNoChanges:
		return "NO_CHANGES"
	case KindAPIKeyMissing:
		return "API_KEY_MISSING"
	case KindAPIKeyInvalid:
		return "API_KEY_INVALID"
	case KindQuotaExceeded:
		return "QUOTA_EXCEEDED"
	default:
		return "API_REQUEST_ERROR"
	}
}

// String returns the string representation of the kind
func (k ErrorKind) String() string {
	return k.Code()
}

// ClassifiedError is a terminal failure carrying a kind and an actionable
// human-readable message.
type ClassifiedError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

// Error implements the error interface
func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind.Code(), e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *ClassifiedError) Unwrap() error {
	return e.cause
}

// NewNoChangesError reports an empty change set
func NewNoChangesError() *ClassifiedError {
	return &ClassifiedError{
		Kind:    KindNoChanges,
		Message: "no staged changes found; stage some changes with 'git add' first",
	}
}

// NewAPIKeyMissingError reports a missing credential for a cloud provider
func NewAPIKeyMissingError(provider, envName string) *ClassifiedError {
	msg := fmt.Sprintf("no API key configured for provider %q", provider)
	if envName != "" {
		msg += fmt.Sprintf("; set %s or add api_key to the config file", envName)
	}
	return &ClassifiedError{Kind: KindAPIKeyMissing, Message: msg}
}

// matchRule maps provider failure signals to an error kind. Rules are kept
// as data so the classification is independently testable per provider.
type matchRule struct {
	kind        ErrorKind
	statusCodes []int
	substrings  []string
}

// providerRules enumerates the exact matched substrings and status codes per
// provider's error conventions. Substrings are matched case-insensitively.
var providerRules = map[string][]matchRule{
	"gemini": {
		{kind: KindAPIKeyInvalid, statusCodes: []int{401, 403},
			substrings: []string{"api key not valid", "api_key_invalid", "permission_denied", "unauthenticated"}},
		{kind: KindQuotaExceeded, statusCodes: []int{429},
			substrings: []string{"resource_exhausted", "quota exceeded", "rate limit"}},
	},
	"openai": {
		{kind: KindAPIKeyInvalid, statusCodes: []int{401, 403},
			substrings: []string{"invalid_api_key", "incorrect api key", "invalid authentication"}},
		{kind: KindQuotaExceeded, statusCodes: []int{429},
			substrings: []string{"insufficient_quota", "rate limit", "rate_limit_exceeded"}},
	},
	"deepseek": {
		{kind: KindAPIKeyInvalid, statusCodes: []int{401, 403},
			substrings: []string{"invalid_api_key", "authentication fails", "incorrect api key"}},
		{kind: KindQuotaExceeded, statusCodes: []int{429},
			substrings: []string{"insufficient balance", "rate limit", "rate_limit_reached"}},
	},
	"ollama": {
		// A local runtime has no credentials or quotas; connection problems
		// all degrade to the catch-all with a host-specific hint below.
	},
}

// HTTPStatusError is implemented by provider errors that expose a status code
type HTTPStatusError interface {
	error
	HTTPStatusCode() int
}

// statusPattern extracts a status code embedded in an error message,
// e.g. "status code: 429" or "unexpected status 401".
var statusPattern = regexp.MustCompile(`status(?: code)?[:\s]+(\d{3})`)

// statusCodeOf extracts an HTTP status code from an error, or 0
func statusCodeOf(err error) int {
	var statusErr HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.HTTPStatusCode()
	}
	if m := statusPattern.FindStringSubmatch(strings.ToLower(err.Error())); m != nil {
		if code, convErr := strconv.Atoi(m[1]); convErr == nil {
			return code
		}
	}
	return 0
}

// Classify maps a provider failure to a ClassifiedError. Errors that are
// already classified (the loop's own precondition checks) pass through
// untouched. The mapping is pure: same provider, status and message always
// produce the same kind.
func Classify(provider string, err error) error {
	if err == nil {
		return nil
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce
	}

	status := statusCodeOf(err)
	msg := strings.ToLower(err.Error())

	for _, rule := range providerRules[provider] {
		for _, code := range rule.statusCodes {
			if status == code {
				return &ClassifiedError{Kind: rule.kind, Message: err.Error(), cause: err}
			}
		}
		for _, sub := range rule.substrings {
			if strings.Contains(msg, sub) {
				return &ClassifiedError{Kind: rule.kind, Message: err.Error(), cause: err}
			}
		}
	}

	// Generic status fallback shared by all providers
	switch status {
	case 401, 403:
		return &ClassifiedError{Kind: KindAPIKeyInvalid, Message: err.Error(), cause: err}
	case 429:
		return &ClassifiedError{Kind: KindQuotaExceeded, Message: err.Error(), cause: err}
	}

	message := err.Error()
	if provider == "ollama" && (strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host")) {
		message = fmt.Sprintf("cannot reach the local ollama server: %v (is ollama running?)", err)
	}

	return &ClassifiedError{Kind: KindRequestFailed, Message: message, cause: err}
}
