package classifier

import (
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// IClassifier is the process-wide handle to the loaded model. It is
// constructed once at startup and shared read-only by every request.
type IClassifier interface {
	Ready() bool
	NumClasses() int
	InputLen() int
	Predict(input []float32) ([]float32, error)
	Close()
}

type onnxClassifier struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	inputLen     int
	numClasses   int

	// The session runs against pre-allocated tensors, so concurrent calls
	// would race on them. Inference is the only step that needs a lock.
	mu sync.Mutex
}

// New loads the ONNX model at modelPath. A missing model file is not a
// startup failure: the server still comes up and reports itself unhealthy,
// matching how the frontend probes /health before enabling the camera.
func New(modelPath string, inputSize, numClasses int) (IClassifier, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return &onnxClassifier{
			inputLen:   inputSize * inputSize * 3,
			numClasses: numClasses,
		}, nil
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	inputShape := ort.NewShape(1, int64(inputSize), int64(inputSize), 3)
	outputShape := ort.NewShape(1, int64(numClasses))

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &onnxClassifier{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		inputLen:     inputSize * inputSize * 3,
		numClasses:   numClasses,
	}, nil
}

func (c *onnxClassifier) Ready() bool {
	return c.session != nil
}

func (c *onnxClassifier) NumClasses() int {
	return c.numClasses
}

func (c *onnxClassifier) InputLen() int {
	return c.inputLen
}

func (c *onnxClassifier) Predict(input []float32) ([]float32, error) {
	if c.session == nil {
		return nil, fmt.Errorf("model session is not initialized")
	}
	if len(input) != c.inputLen {
		return nil, fmt.Errorf("expected %d input values, got %d", c.inputLen, len(input))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	copy(c.inputTensor.GetData(), input)

	if err := c.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	// Copy out under the lock so the next request cannot overwrite the
	// output tensor while the caller is still reading it.
	raw := c.outputTensor.GetData()
	out := make([]float32, len(raw))
	copy(out, raw)

	return out, nil
}

func (c *onnxClassifier) Close() {
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
		ort.DestroyEnvironment()
	}
}
