// PlantDiseaseDetector | 2026
// remote.go

package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/config"
)

// Remote talks to the model-serving process that hosts the trained
// network. Load is the one-time warm-up barrier: it must complete
// before the server accepts traffic and is never repeated mid-flight.
// After Load the adapter is effectively read-only and safe for
// concurrent Predict calls.
type Remote struct {
	client     *resty.Client
	labelsPath string

	loadOnce sync.Once
	loadErr  error
	labels   map[string]struct{}
}

type predictResponse struct {
	Label string `json:"label"`
}

func NewRemote(cfg config.ClassifierConfig) *Remote {
	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(cfg.Timeout)

	return &Remote{
		client:     client,
		labelsPath: cfg.LabelsPath,
	}
}

// Load reads the class catalog and verifies the model server answers.
// Subsequent calls return the first outcome without re-initializing.
func (r *Remote) Load(ctx context.Context) error {
	r.loadOnce.Do(func() {
		data, err := os.ReadFile(r.labelsPath)
		if err != nil {
			r.loadErr = fmt.Errorf("read class catalog: %w", err)
			return
		}

		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			r.loadErr = fmt.Errorf("parse class catalog: %w", err)
			return
		}

		r.labels = make(map[string]struct{}, len(names))
		for _, name := range names {
			r.labels[name] = struct{}{}
		}

		resp, err := r.client.R().SetContext(ctx).Get("/healthz")
		if err != nil {
			r.loadErr = fmt.Errorf("model server unreachable: %w", err)
			return
		}
		if resp.IsError() {
			r.loadErr = fmt.Errorf(
				"model server not ready: %s",
				resp.Status(),
			)
			return
		}

		slog.Info("classifier loaded",
			"classes", len(names),
			"endpoint", r.client.BaseURL,
		)
	})

	return r.loadErr
}

func (r *Remote) Predict(
	ctx context.Context,
	imagePath string,
) (string, error) {
	if r.labels == nil {
		return "", fmt.Errorf("classifier used before Load")
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var result predictResponse

	resp, err := r.client.R().
		SetContext(ctx).
		SetFileReader("file", filepath.Base(imagePath), f).
		SetResult(&result).
		Post("/predict")
	if err != nil {
		return "", fmt.Errorf("predict request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("predict failed: %s", resp.Status())
	}

	if result.Label == "" {
		return "", fmt.Errorf("predict returned empty label")
	}

	if _, known := r.labels[result.Label]; !known {
		slog.Warn("predicted label not in class catalog",
			"label", result.Label,
		)
	}

	return result.Label, nil
}

var _ Classifier = (*Remote)(nil)
