package services

import (
	"errors"
	"fmt"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/ai"
)

// Failure taxonomy for one generation request. Nothing here is fatal to the
// process; every error is scoped to a single request.
var (
	// ErrInputTooShort rejects source text below the minimum length before
	// any network or CPU work happens.
	ErrInputTooShort = errors.New("input text is too short for analysis")

	// ErrNoProviderConfigured means no remote AI credential is available.
	// The local pipeline is attempted first; this only reaches the caller
	// when the local path also produced nothing.
	ErrNoProviderConfigured = ai.ErrNoProviderConfigured

	// ErrGenerationFailed is terminal for a request: neither the remote nor
	// the local path yielded a single usable question.
	ErrGenerationFailed = errors.New("question generation failed: no usable topics in source material")
)

// ExtractionError reports an unparsable or unusable document. The user must
// re-upload; retrying the same bytes will not help.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("document extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// RemoteCallError is a per-item remote failure. The orchestrator drops the
// affected item and continues the batch.
type RemoteCallError struct {
	Provider string
	Op       string
	Err      error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s %s call failed: %v", e.Provider, e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }
