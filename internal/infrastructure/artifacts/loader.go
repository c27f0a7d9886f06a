// Package artifacts reads the JSON model artifacts exported by the offline
// training jobs. Artifacts are loaded once at startup and shared read-only
// across requests; a missing or corrupt file surfaces as ErrModelUnavailable
// so the owning predictor can pin itself to its deterministic fallback.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mittimitra/advisory/internal/core/domain"
)

type Dir struct {
	path string
}

func NewDir(path string) *Dir {
	return &Dir{path: path}
}

func (d *Dir) Load(name string, out any) error {
	full := filepath.Join(d.path, name)
	raw, err := os.ReadFile(full)
	if err != nil {
		return domain.WrapError(domain.ErrModelUnavailable, "read artifact "+name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.WrapError(domain.ErrModelUnavailable, "parse artifact "+name, fmt.Errorf("%s: %w", full, err))
	}
	return nil
}
