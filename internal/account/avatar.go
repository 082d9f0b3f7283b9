package account

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/doctrack/trackctl/internal/errors"
)

// MaxAvatarBytes caps avatar uploads at 5 MiB, checked against the
// file size before any bytes are read.
const MaxAvatarBytes = 5 << 20

var avatarMIMETypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// Avatar is an image prepared for storage in the session record: a
// base64 data URL plus a content fingerprint used to skip redundant
// persists when the same file is attached twice.
type Avatar struct {
	DataURL     string
	Fingerprint string
}

// LoadAvatar reads an image file and encodes it as a data URL. Only
// jpeg, jpg, png and gif extensions are accepted, and files over
// MaxAvatarBytes are rejected without being read.
func LoadAvatar(path string) (*Avatar, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := avatarMIMETypes[ext]
	if !ok {
		return nil, errors.New(errors.ErrCodeProfileAvatar,
			"Avatar must be a jpeg, jpg, png, or gif image.").
			WithSuggestion("Pick an image file with one of the supported extensions")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("cannot stat avatar file: %s", path), err)
	}
	if info.Size() > MaxAvatarBytes {
		return nil, errors.New(errors.ErrCodeProfileAvatar,
			"Avatar image is too large (maximum 5 MB).").
			WithSuggestion("Resize or compress the image before attaching it")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("cannot read avatar file: %s", path), err)
	}

	sum := blake3.Sum256(data)
	return &Avatar{
		DataURL:     "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		Fingerprint: hex.EncodeToString(sum[:]),
	}, nil
}

// FingerprintDataURL hashes a stored data URL so a newly loaded avatar
// can be compared against what the session already holds.
func FingerprintDataURL(dataURL string) string {
	i := strings.Index(dataURL, ";base64,")
	if i < 0 {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[i+len(";base64,"):])
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
