package profanity

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("profanity: model file not found")

	// ErrInvalidModel indicates the model file exists but no session could be created from it.
	ErrInvalidModel = errors.New("profanity: invalid model format")

	// ErrVocabularyFailed indicates the vocabulary file could not be loaded.
	ErrVocabularyFailed = errors.New("profanity: vocabulary initialization failed")

	// ErrRuntimeUnavailable indicates the ONNX Runtime library could not be loaded.
	ErrRuntimeUnavailable = errors.New("profanity: onnx runtime unavailable")

	// ErrInvalidThreshold indicates a threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("profanity: threshold must be within [0, 1]")

	// ErrNoOracle indicates a nil oracle was supplied.
	ErrNoOracle = errors.New("profanity: no oracle")

	// ErrClosed is returned by every operation on a closed Checker.
	ErrClosed = errors.New("profanity: checker is closed")

	// ErrOracle wraps failures reported by the scoring oracle.
	ErrOracle = errors.New("profanity: oracle failure")
)
