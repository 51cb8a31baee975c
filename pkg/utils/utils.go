package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	DecodeBase64Image(encoded string) ([]byte, error)
	SanitizeFilename(name string) string
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// DecodeBase64Image decodes a base64 image payload, accepting both bare
// base64 and the data-URL form browsers produce from canvas captures
// ("data:image/jpeg;base64,....").
func (u *utils) DecodeBase64Image(encoded string) ([]byte, error) {
	if strings.HasPrefix(encoded, "data:image") {
		parts := strings.SplitN(encoded, ",", 2)
		if len(parts) != 2 {
			return nil, errors.New("malformed data URL")
		}
		encoded = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// SanitizeFilename strips any path components and characters that are not
// safe to echo back in a response or a log line. Runs of unsafe characters
// collapse into a single underscore so "my photo (1).png" becomes
// "my_photo_1_.png" rather than sprouting one underscore per character.
func (u *utils) SanitizeFilename(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	underscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-':
			b.WriteRune(r)
			underscore = false
		default:
			if !underscore {
				b.WriteRune('_')
			}
			underscore = true
		}
	}

	sanitized := b.String()
	if sanitized == "" || sanitized == "." || sanitized == ".." {
		return "upload"
	}
	return sanitized
}
