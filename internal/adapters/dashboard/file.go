package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jsr4564/WepaAPP/internal/ports"
)

// FileSource feeds a saved raw snapshot (a JSON object of component values)
// into a cycle instead of the network. Used for offline refreshes and for
// replaying captured pages.
type FileSource struct {
	path string
}

var _ ports.StatusSource = (*FileSource)(nil)

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Fetch(_ context.Context) (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}

	return raw, nil
}
