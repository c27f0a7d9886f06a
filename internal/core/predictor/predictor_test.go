package predictor

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mittimitra/advisory/internal/infrastructure/artifacts"
	"github.com/mittimitra/advisory/internal/ml"
)

type identityTranslator struct{}

func (identityTranslator) Translate(text, _ string) string { return text }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// emptyArtifactDir points at a directory with no artifacts, forcing every
// predictor onto its fallback path.
func emptyArtifactDir(t *testing.T) *artifacts.Dir {
	t.Helper()
	return artifacts.NewDir(t.TempDir())
}

func artifactDir(t *testing.T, files map[string]any) *artifacts.Dir {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		raw, err := json.Marshal(content)
		if err != nil {
			t.Fatalf("marshal artifact %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
			t.Fatalf("write artifact %s: %v", name, err)
		}
	}
	return artifacts.NewDir(dir)
}

// constantForest returns a single-leaf forest whose class probabilities are
// proportional to counts, independent of the input features.
func constantForest(classes []string, counts []float64) ml.Forest {
	return ml.Forest{
		Trees:   []ml.Tree{{Nodes: []ml.Node{{Left: -1, Right: -1, Value: counts}}}},
		Classes: classes,
	}
}

func identityScaler(n int) ml.Scaler {
	mean := make([]float64, n)
	scale := make([]float64, n)
	for i := range scale {
		scale[i] = 1
	}
	return ml.Scaler{Mean: mean, Scale: scale}
}
