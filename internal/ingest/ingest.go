package ingest

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amara-chukwu/healthvault/constants"
	"github.com/amara-chukwu/healthvault/internal/entity"
)

// LoadedDocument pairs a pipeline-ready RawDocument with the file facts the
// repository wants to store alongside the extracted record.
type LoadedDocument struct {
	Doc         entity.RawDocument
	FileSize    int
	ContentHash []byte
}

// LoadDocument reads a file from disk and wraps it as a RawDocument, deriving
// the declared media type from the extension (no picker supplies one here).
func LoadDocument(path string) (LoadedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadedDocument{}, fmt.Errorf("load document %q: %w", path, err)
	}

	ext := constants.NormalizeExt(filepath.Ext(path))
	sum := sha256.Sum256(data)

	return LoadedDocument{
		Doc: entity.RawDocument{
			Name:      filepath.Base(path),
			MediaType: constants.MediaTypeForExt(ext),
			Data:      bytes.NewReader(data),
		},
		FileSize:    len(data),
		ContentHash: sum[:],
	}, nil
}
