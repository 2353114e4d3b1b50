// PlantDiseaseDetector | 2026
// remote_test.go

package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/config"
)

func writeLabels(t *testing.T, labels []string) string {
	t.Helper()

	data, err := json.Marshal(labels)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "class_disease.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeImage(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "leaf.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0o644))
	return path
}

func modelServer(t *testing.T, label string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("file")
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck // test server
		_ = json.NewEncoder(w).Encode(map[string]string{"label": label})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newLoadedRemote(t *testing.T, server *httptest.Server) *Remote {
	t.Helper()

	remote := NewRemote(config.ClassifierConfig{
		Endpoint:   server.URL,
		LabelsPath: writeLabels(t, []string{"Tomato___healthy"}),
		Timeout:    5 * time.Second,
	})
	require.NoError(t, remote.Load(context.Background()))
	return remote
}

func TestRemote_Load(t *testing.T) {
	t.Run("Should fail on a missing class catalog", func(t *testing.T) {
		server := modelServer(t, "Tomato___healthy")

		remote := NewRemote(config.ClassifierConfig{
			Endpoint:   server.URL,
			LabelsPath: filepath.Join(t.TempDir(), "absent.json"),
			Timeout:    5 * time.Second,
		})

		err := remote.Load(context.Background())
		assert.ErrorContains(t, err, "read class catalog")
	})

	t.Run("Should fail when the model server is down", func(t *testing.T) {
		server := modelServer(t, "Tomato___healthy")
		server.Close()

		remote := NewRemote(config.ClassifierConfig{
			Endpoint:   server.URL,
			LabelsPath: writeLabels(t, []string{"Tomato___healthy"}),
			Timeout:    time.Second,
		})

		err := remote.Load(context.Background())
		assert.ErrorContains(t, err, "model server unreachable")
	})

	t.Run("Should remember the first outcome", func(t *testing.T) {
		server := modelServer(t, "Tomato___healthy")
		remote := newLoadedRemote(t, server)

		assert.NoError(t, remote.Load(context.Background()))
	})
}

func TestRemote_Predict(t *testing.T) {
	t.Run("Should return the predicted label", func(t *testing.T) {
		server := modelServer(t, "Tomato___healthy")
		remote := newLoadedRemote(t, server)

		label, err := remote.Predict(context.Background(), writeImage(t))
		require.NoError(t, err)
		assert.Equal(t, "Tomato___healthy", label)
	})

	t.Run("Should pass through labels outside the catalog", func(t *testing.T) {
		server := modelServer(t, "Mystery___blotch")
		remote := newLoadedRemote(t, server)

		label, err := remote.Predict(context.Background(), writeImage(t))
		require.NoError(t, err)
		assert.Equal(t, "Mystery___blotch", label)
	})

	t.Run("Should refuse to run before Load", func(t *testing.T) {
		server := modelServer(t, "Tomato___healthy")

		remote := NewRemote(config.ClassifierConfig{
			Endpoint:   server.URL,
			LabelsPath: writeLabels(t, nil),
			Timeout:    5 * time.Second,
		})

		_, err := remote.Predict(context.Background(), writeImage(t))
		assert.ErrorContains(t, err, "before Load")
	})

	t.Run("Should fail on a missing image file", func(t *testing.T) {
		server := modelServer(t, "Tomato___healthy")
		remote := newLoadedRemote(t, server)

		_, err := remote.Predict(
			context.Background(),
			filepath.Join(t.TempDir(), "absent.jpg"),
		)
		assert.ErrorContains(t, err, "open image")
	})
}
