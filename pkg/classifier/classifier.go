package classifier

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	ort "github.com/yalue/onnxruntime_go"

	"DermAssist/pkg/preprocess"
)

// NumClasses is the width of the model output. The session output tensor is
// allocated with this shape at load time, so a model with a different output
// width fails to load instead of producing out-of-range label indices.
const NumClasses = 7

type State string

const (
	StateUnloaded     State = "UNLOADED"
	StateReady        State = "READY"
	StateFailedToLoad State = "FAILED_TO_LOAD"
)

var (
	ErrModelUnavailable = errors.New("model not loaded")
	ErrInferenceFailed  = errors.New("inference failed")
)

type IClassifier interface {
	Classify(input []float32) ([]float32, error)
	State() State
	Ready() bool
	Version() string
	Close()
}

type onnxClassifier struct {
	log     *logrus.Logger
	version string

	state   State
	loadErr error

	// The session reads from inputTensor and writes to outputTensor on every
	// Run, so concurrent calls must be serialized. The model itself is
	// immutable after load.
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

// New loads the model once at startup. A missing or unloadable artifact is
// not fatal: the classifier transitions to FAILED_TO_LOAD and every Classify
// call reports the model as unavailable.
func New(log *logrus.Logger) IClassifier {
	c := &onnxClassifier{
		log:     log,
		state:   StateUnloaded,
		version: envOr("MODEL_VERSION", "1.0.0"),
	}

	modelPath := envOr("MODEL_PATH", "./models/skin_cancer_model.onnx")
	if err := c.load(modelPath); err != nil {
		c.state = StateFailedToLoad
		c.loadErr = err
		log.WithFields(logrus.Fields{
			"model_path": modelPath,
			"error":      err.Error(),
		}).Error("Model failed to load, /predict will be unavailable")
		return c
	}

	c.state = StateReady
	log.WithFields(logrus.Fields{
		"model_path":    modelPath,
		"model_version": c.version,
	}).Info("Model loaded")

	return c
}

func (c *onnxClassifier) load(modelPath string) error {
	if _, err := os.Stat(modelPath); err != nil {
		return fmt.Errorf("model artifact not found: %w", err)
	}

	if libPath := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH"); libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	// Tensor bindings are created once here and reused for every request.
	inputShape := ort.NewShape(1, preprocess.TargetSize, preprocess.TargetSize, preprocess.Channels)
	outputShape := ort.NewShape(1, NumClasses)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{envOr("MODEL_INPUT_NAME", "input")},
		[]string{envOr("MODEL_OUTPUT_NAME", "output")},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return fmt.Errorf("failed to create ONNX session: %w", err)
	}

	c.session = session
	c.inputTensor = inputTensor
	c.outputTensor = outputTensor

	return nil
}

// Classify runs one synchronous inference over a normalized input vector and
// returns a copy of the raw score vector. The input is never mutated.
func (c *onnxClassifier) Classify(input []float32) ([]float32, error) {
	if c.state != StateReady {
		return nil, ErrModelUnavailable
	}

	if len(input) != preprocess.TensorLen {
		return nil, fmt.Errorf("%w: expected %d input values, got %d",
			ErrInferenceFailed, preprocess.TensorLen, len(input))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	copy(c.inputTensor.GetData(), input)

	if err := c.session.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}

	scores := make([]float32, NumClasses)
	copy(scores, c.outputTensor.GetData())

	return scores, nil
}

func (c *onnxClassifier) State() State {
	return c.state
}

func (c *onnxClassifier) Ready() bool {
	return c.state == StateReady
}

func (c *onnxClassifier) Version() string {
	return c.version
}

func (c *onnxClassifier) Close() {
	if c.state != StateReady {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inputTensor.Destroy()
	c.outputTensor.Destroy()
	c.session.Destroy()
	ort.DestroyEnvironment()
	c.state = StateUnloaded
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
