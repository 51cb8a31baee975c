package inspectionService

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// decodeImage validates and decodes raw image bytes. The header is checked
// with DecodeConfig before the full decode so obvious garbage is rejected
// without materializing pixels; a truncated stream still fails the full
// decode. EXIF orientation is applied during decoding so portrait phone
// shots reach the model upright.
func decodeImage(data []byte) (image.Image, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		// chai2010/webp handles some encodings the registered webp
		// decoder rejects (lossless, alpha). WebP keeps orientation in
		// a RIFF EXIF chunk this decoder does not surface, so no
		// orientation pass is possible here; such frames reach the
		// model as stored.
		if img, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
			return img, nil
		}
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, errors.New("decoder returned no image")
	}

	return img, nil
}

// makeTensor resizes the image to size×size and flattens it into the NHWC
// float32 layout the model expects, one batch, three channels, values
// scaled to [0,1]. Aspect ratio is intentionally not preserved: the model
// was trained on direct resizes and a crop-and-pad policy would shift its
// accuracy.
func makeTensor(img image.Image, size int) []float32 {
	resized := imaging.Resize(img, size, size, imaging.Lanczos)

	input := make([]float32, size*size*3)
	i := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// NRGBA pixels are not alpha-premultiplied, so dropping the
			// alpha channel is a plain discard.
			px := resized.NRGBAAt(x, y)
			input[i] = float32(px.R) / 255.0
			input[i+1] = float32(px.G) / 255.0
			input[i+2] = float32(px.B) / 255.0
			i += 3
		}
	}

	return input
}
