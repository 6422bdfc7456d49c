// Package uploads names and stores files users attach to their profile or
// companies attach as logos.
package uploads

import (
	"crypto/rand"
	"errors"
	"math/big"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category groups uploads of one kind under a top-level directory.
type Category string

const (
	Resume         Category = "resume"
	ProfilePicture Category = "applicant"
	CompanyLogo    Category = "logo"
)

var ErrExtensionNotAllowed = errors.New("file type is not allowed")

var allowedExtensions = map[Category][]string{
	Resume:         {".pdf"},
	ProfilePicture: {".png", ".jpg", ".jpeg"},
	CompanyLogo:    {".png", ".jpg", ".jpeg"},
}

const randomAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const randomLength = 6

// Namer builds storage-relative paths of the form
// <category>/<owner hex>/<6 random chars>-<unix millis><ext>.
type Namer struct {
	Now func() time.Time
}

func NewNamer() *Namer {
	return &Namer{Now: time.Now}
}

// Path returns the relative path for filename owned by owner, or
// ErrExtensionNotAllowed when the extension is not accepted for category.
func (n *Namer) Path(category Category, owner uuid.UUID, filename string) (string, error) {
	ext := Extension(filename)
	if !Allowed(category, ext) {
		return "", ErrExtensionNotAllowed
	}
	suffix, err := randomString(randomLength)
	if err != nil {
		return "", err
	}
	millis := n.Now().UnixMilli()
	name := suffix + "-" + strconv.FormatInt(millis, 10) + ext
	return path.Join(string(category), hex(owner), name), nil
}

// Extension is the lowercased extension of filename including the dot,
// reduced to ASCII letters and digits. It is empty when there is none.
func Extension(filename string) string {
	filename = path.Base(strings.ReplaceAll(filename, "\\", "/"))
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToLower(filename[i+1:]) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "." + b.String()
}

func Allowed(category Category, ext string) bool {
	for _, a := range allowedExtensions[category] {
		if a == ext {
			return true
		}
	}
	return false
}

func hex(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}

func randomString(n int) (string, error) {
	limit := big.NewInt(int64(len(randomAlphabet)))
	out := make([]byte, n)
	for i := range out {
		k, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out[i] = randomAlphabet[k.Int64()]
	}
	return string(out), nil
}
