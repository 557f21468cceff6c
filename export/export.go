// Package export builds the downloadable file for a diagram preview.
package export

import (
	"errors"
	"fmt"
	"slices"

	"github.com/awantoch/kwanixflow/constants"
)

// FileBaseName is the file name every export shares; only the extension varies.
const FileBaseName = "flow-diagram"

// Extensions are the selectable export suffixes, in display order.
var Extensions = []string{".java", ".py", ".js", ".jsx", ".ts", ".tsx", ".cpp", ".c"}

// DefaultExtension is preselected for new sessions.
var DefaultExtension = Extensions[1]

// ErrUnsupportedExtension is returned for a suffix outside Extensions.
var ErrUnsupportedExtension = errors.New("unsupported export extension")

// Artifact is a file ready to hand to the browser.
type Artifact struct {
	Filename    string `json:"filename"`
	Extension   string `json:"extension"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// Supported reports whether ext is one of Extensions.
func Supported(ext string) bool {
	return slices.Contains(Extensions, ext)
}

// Validate returns ErrUnsupportedExtension (wrapped with ext) when ext is not supported.
func Validate(ext string) error {
	if !Supported(ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
	return nil
}

// FileName returns the suggested download name for ext.
func FileName(ext string) string {
	return FileBaseName + ext
}

// Build wraps content as a text file named for ext. The content is written
// unchanged whatever the extension.
func Build(content, ext string) (Artifact, error) {
	if err := Validate(ext); err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Filename:    FileName(ext),
		Extension:   ext,
		ContentType: constants.ContentTypeText,
		Data:        []byte(content),
	}, nil
}
