// Package attachment encodes uploaded documents as data URIs for inline
// storage on a memo, and decodes them again for the download collaborator.
package attachment

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// maxDisplayRunes is the list-display truncation width for file names. The
// stored name is always kept in full.
const maxDisplayRunes = 15

// Attachment is the encoded form of an uploaded document: the full content as
// a data URI plus the original name and MIME type.
type Attachment struct {
	Data string
	Name string
	Type string
}

// Input carries a pending upload into a save operation.
type Input struct {
	Name   string
	Reader io.Reader
}

// Encode reads the upload fully and encodes it as a data URI. The MIME type
// is sniffed from the content; any read failure aborts the encoding so a save
// never commits a half-attached file.
func Encode(name string, r io.Reader) (*Attachment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", name, err)
	}

	mime := mimetype.Detect(data).String()
	encoded := base64.StdEncoding.EncodeToString(data)

	return &Attachment{
		Data: "data:" + mime + ";base64," + encoded,
		Name: name,
		Type: mime,
	}, nil
}

// EncodeFile encodes the file at path, using its base name as the attachment
// name.
func EncodeFile(path string) (*Attachment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer f.Close()

	return Encode(filepath.Base(path), f)
}

// Decode splits a data URI back into its MIME type and raw payload.
func Decode(dataURI string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}

	mime, encoded, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("data URI is not base64 encoded")
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}

	return mime, payload, nil
}

// DisplayName truncates a file name for list display, appending an ellipsis
// when it was cut.
func DisplayName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxDisplayRunes {
		return name
	}
	return string(runes[:maxDisplayRunes]) + "..."
}
