package inspector

import (
	"os"
	"strconv"
)

// VegetableClasses is the class label table of the trained model. The order
// is positional: index i of the output vector is the probability of
// VegetableClasses[i]. Reordering it breaks the contract with the model.
var VegetableClasses = []string{
	"Tomato", "Cucumber", "Carrot", "Bell_Pepper", "Broccoli",
	"Cabbage", "Lettuce", "Spinach", "Potato", "Onion",
	"Eggplant", "Zucchini", "Radish", "Cauliflower", "Bean",
}

// AllowedExtensions is the upload extension whitelist, matching the decoders
// the pipeline registers.
var AllowedExtensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "webp", "tiff"}

// Config is the full configuration surface of the inference pipeline,
// constructed once at startup and passed by reference. It lives below the
// server wiring so the service layer can depend on it without pulling in
// handler registration.
type Config struct {
	ModelPath         string
	InputSize         int
	Classes           []string
	MaxUploadBytes    int
	AllowedExtensions []string
}

func NewConfig() *Config {
	modelPath := os.Getenv("MODEL_PATH")
	if modelPath == "" {
		modelPath = "models/vegetable_quality_model.onnx"
	}

	maxUpload := 32 * 1024 * 1024
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if mb, err := strconv.Atoi(v); err == nil && mb > 0 {
			maxUpload = mb * 1024 * 1024
		}
	}

	return &Config{
		ModelPath:         modelPath,
		InputSize:         150,
		Classes:           VegetableClasses,
		MaxUploadBytes:    maxUpload,
		AllowedExtensions: AllowedExtensions,
	}
}

func (c *Config) MaxUploadMB() float64 {
	return float64(c.MaxUploadBytes) / (1024 * 1024)
}
