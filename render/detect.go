package render

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// isArchiveFile reports whether path is a zip archive by checking the
// signature rather than trusting the extension.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	magic := make([]byte, len(zipMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// too short to be an archive
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(magic, zipMagic), nil
}

// isMarkupFile reports whether path looks like a saved forum page.
func isMarkupFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
