// Package inference provides an ONNX Runtime backed profanity classifier.
//
// The model is a scikit-learn classifier exported with skl2onnx: it takes a
// bag-of-words vector and returns a label and class probabilities.
package inference

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ErrRuntime indicates the ONNX Runtime shared library could not be loaded.
var ErrRuntime = errors.New("onnx runtime unavailable")

// ErrSessionClosed is returned by calls on a closed Session.
var ErrSessionClosed = errors.New("session is closed")

// ErrInputMismatch indicates the vocabulary does not fit the model input.
var ErrInputMismatch = errors.New("vocabulary does not match model input")

const (
	inputName         = "float_input"
	labelOutput       = "label"
	probabilityOutput = "probabilities"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// initORT initializes ONNX Runtime environment once. A non-empty
// libraryPath is applied before the first initialization only.
func initORT(libraryPath string) error {
	ortEnvOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortEnvErr = ort.InitializeEnvironment()
	})
	if ortEnvErr != nil {
		return fmt.Errorf("%w: %w", ErrRuntime, ortEnvErr)
	}
	return nil
}

// Session wraps an ONNX Runtime session and the vocabulary that feeds it.
// Calls are serialized.
type Session struct {
	session *ort.DynamicAdvancedSession
	vocab   *Vocabulary
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a session from a model file and a vocabulary.
// libraryPath optionally points at the ONNX Runtime shared library.
func NewSession(modelPath string, vocab *Vocabulary, libraryPath string) (*Session, error) {
	if vocab == nil {
		return nil, errors.New("nil vocabulary")
	}

	// Check file exists
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(libraryPath); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	if err := checkInputWidth(modelPath, vocab.Size()); err != nil {
		return nil, err
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }() // Cleanup error doesn't affect success

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputName},
		[]string{labelOutput, probabilityOutput},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session, vocab: vocab}, nil
}

// checkInputWidth compares the model's feature width with the vocabulary
// size. Dynamic dimensions are accepted.
func checkInputWidth(modelPath string, size int) error {
	inputs, _, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return fmt.Errorf("reading model inputs: %w", err)
	}
	for _, info := range inputs {
		if info.Name != inputName {
			continue
		}
		return validateWidth(info.Dimensions, size)
	}
	return fmt.Errorf("model has no %s input", inputName)
}

func validateWidth(dims ort.Shape, size int) error {
	if len(dims) != 2 {
		return fmt.Errorf("%w: %s has shape %v, want [1, %d]", ErrInputMismatch, inputName, dims, size)
	}
	if width := dims[1]; width > 0 && width != int64(size) {
		return fmt.Errorf("%w: model expects %d features, vocabulary has %d", ErrInputMismatch, width, size)
	}
	return nil
}

// Predict returns the model's own verdict for text.
func (s *Session) Predict(ctx context.Context, text string) (bool, error) {
	label, _, err := s.infer(ctx, text)
	if err != nil {
		return false, err
	}
	return label == 1, nil
}

// PredictProbability returns the probability that text is profane.
func (s *Session) PredictProbability(ctx context.Context, text string) (float64, error) {
	_, prob, err := s.infer(ctx, text)
	if err != nil {
		return 0, err
	}
	return prob, nil
}

// infer runs the model once, returning the predicted label and the
// probability of the profane class.
func (s *Session) infer(ctx context.Context, text string) (int64, float64, error) {
	// Check context before expensive operation
	select {
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, 0, ErrSessionClosed
	}

	features := s.vocab.Vectorize(text)
	input, err := ort.NewTensor(ort.NewShape(1, int64(len(features))), features)
	if err != nil {
		return 0, 0, fmt.Errorf("creating %s tensor: %w", inputName, err)
	}
	defer func() { _ = input.Destroy() }()

	// nil entries will be allocated by Run
	outputs := []ort.Value{nil, nil}
	if err := s.session.Run([]ort.Value{input}, outputs); err != nil {
		return 0, 0, fmt.Errorf("running inference: %w", err)
	}
	defer func() {
		for _, o := range outputs {
			if o != nil {
				_ = o.Destroy()
			}
		}
	}()

	labels, ok := outputs[0].(*ort.Tensor[int64])
	if !ok {
		return 0, 0, fmt.Errorf("unexpected %s tensor type", labelOutput)
	}
	probs, ok := outputs[1].(*ort.Tensor[float32])
	if !ok {
		return 0, 0, fmt.Errorf("unexpected %s tensor type", probabilityOutput)
	}

	labelData := labels.GetData()
	probData := probs.GetData()
	if len(labelData) < 1 || len(probData) < 2 {
		return 0, 0, fmt.Errorf("short model output: %d labels, %d probabilities", len(labelData), len(probData))
	}

	prob := float64(probData[1])
	if math.IsNaN(prob) {
		return 0, 0, errors.New("model returned NaN probability")
	}
	return labelData[0], prob, nil
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
