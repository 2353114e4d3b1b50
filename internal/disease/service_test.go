// PlantDiseaseDetector | 2026
// service_test.go

package disease

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/storage"
)

type fakeRepo struct {
	byName    map[string]*Disease
	createErr error
}

func newFakeRepo(diseases ...*Disease) *fakeRepo {
	repo := &fakeRepo{byName: make(map[string]*Disease)}
	for _, d := range diseases {
		repo.byName[d.Name] = d
	}
	return repo
}

func (f *fakeRepo) Create(_ context.Context, d *Disease) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byName[d.Name]; ok {
		return core.ErrDuplicateKey
	}
	f.byName[d.Name] = d
	return nil
}

func (f *fakeRepo) GetByName(_ context.Context, name string) (*Disease, error) {
	if d, ok := f.byName[name]; ok {
		return d, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) List(_ context.Context) ([]Disease, error) {
	out := make([]Disease, 0, len(f.byName))
	for _, d := range f.byName {
		out = append(out, *d)
	}
	return out, nil
}

type fakeStore struct {
	saved *storage.SavedFile
	err   error
}

func (f *fakeStore) Save(
	_ context.Context,
	_ string,
	_ io.Reader,
) (*storage.SavedFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.saved, nil
}

type fakeClassifier struct {
	label string
	err   error
}

func (f *fakeClassifier) Predict(
	_ context.Context,
	_ string,
) (string, error) {
	return f.label, f.err
}

type fakeRecorder struct {
	userID    string
	diseaseID string
	imagePath string
	err       error
}

func (f *fakeRecorder) Record(
	_ context.Context,
	userID, diseaseID, imagePath string,
) (time.Time, error) {
	f.userID = userID
	f.diseaseID = diseaseID
	f.imagePath = imagePath
	if f.err != nil {
		return time.Time{}, f.err
	}
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), nil
}

type fakeMirror struct {
	key string
	err error
}

func (f *fakeMirror) Upload(_ context.Context, key, _ string) error {
	f.key = key
	return f.err
}

func testDetectService(
	repo Repository,
	clf *fakeClassifier,
	recorder *fakeRecorder,
	mirror Mirror,
) *Service {
	store := &fakeStore{
		saved: &storage.SavedFile{
			Path:    "/uploads/ab/cd/ef/1234_leaf.jpg",
			AbsPath: "/srv/image-store/ab/cd/ef/1234_leaf.jpg",
		},
	}
	return NewService(repo, store, clf, recorder, mirror)
}

func TestService_Detect(t *testing.T) {
	known := &Disease{
		ID:              "d-1",
		Name:            "Tomato___Late_blight",
		Reason:          "Phytophthora infestans",
		Recommendations: "Remove infected plants",
	}
	sentinel := &Disease{
		ID:     "d-0",
		Name:   SentinelName,
		Reason: "Label not cataloged yet",
	}

	t.Run("Should resolve a cataloged label and record history", func(t *testing.T) {
		recorder := &fakeRecorder{}
		svc := testDetectService(
			newFakeRepo(known, sentinel),
			&fakeClassifier{label: known.Name},
			recorder,
			nil,
		)

		resp, err := svc.Detect(
			context.Background(),
			"user-1",
			"leaf.jpg",
			strings.NewReader("img"),
		)
		require.NoError(t, err)

		assert.Equal(t, known.Name, resp.DiseasesName)
		assert.Equal(t, known.Reason, resp.Reason)
		assert.Equal(t, "/uploads/ab/cd/ef/1234_leaf.jpg", resp.ImageURL)
		assert.False(t, resp.Time.IsZero())

		assert.Equal(t, "user-1", recorder.userID)
		assert.Equal(t, known.ID, recorder.diseaseID)
		assert.Equal(t, resp.ImageURL, recorder.imagePath)
	})

	t.Run("Should fall back to the sentinel for unknown labels", func(t *testing.T) {
		recorder := &fakeRecorder{}
		svc := testDetectService(
			newFakeRepo(sentinel),
			&fakeClassifier{label: "Mystery___blotch"},
			recorder,
			nil,
		)

		resp, err := svc.Detect(
			context.Background(),
			"user-1",
			"leaf.jpg",
			strings.NewReader("img"),
		)
		require.NoError(t, err)

		assert.Equal(t, SentinelName, resp.DiseasesName)
		assert.Equal(t, sentinel.ID, recorder.diseaseID)
	})

	t.Run("Should fail when even the sentinel is missing", func(t *testing.T) {
		svc := testDetectService(
			newFakeRepo(),
			&fakeClassifier{label: "Mystery___blotch"},
			&fakeRecorder{},
			nil,
		)

		_, err := svc.Detect(
			context.Background(),
			"user-1",
			"leaf.jpg",
			strings.NewReader("img"),
		)
		assert.ErrorIs(t, err, ErrNoSentinel)
	})

	t.Run("Should tolerate a failing mirror", func(t *testing.T) {
		mirror := &fakeMirror{err: errors.New("bucket offline")}
		svc := testDetectService(
			newFakeRepo(known, sentinel),
			&fakeClassifier{label: known.Name},
			&fakeRecorder{},
			mirror,
		)

		resp, err := svc.Detect(
			context.Background(),
			"user-1",
			"leaf.jpg",
			strings.NewReader("img"),
		)
		require.NoError(t, err)
		assert.Equal(t, known.Name, resp.DiseasesName)

		// Object keys never carry the URL's leading slash.
		assert.Equal(t, "uploads/ab/cd/ef/1234_leaf.jpg", mirror.key)
	})

	t.Run("Should surface classifier failures", func(t *testing.T) {
		svc := testDetectService(
			newFakeRepo(known, sentinel),
			&fakeClassifier{err: errors.New("model down")},
			&fakeRecorder{},
			nil,
		)

		_, err := svc.Detect(
			context.Background(),
			"user-1",
			"leaf.jpg",
			strings.NewReader("img"),
		)
		assert.ErrorContains(t, err, "classify image")
	})

	t.Run("Should surface history write failures", func(t *testing.T) {
		svc := testDetectService(
			newFakeRepo(known, sentinel),
			&fakeClassifier{label: known.Name},
			&fakeRecorder{err: errors.New("db down")},
			nil,
		)

		_, err := svc.Detect(
			context.Background(),
			"user-1",
			"leaf.jpg",
			strings.NewReader("img"),
		)
		assert.ErrorContains(t, err, "record history")
	})
}

func TestService_Create(t *testing.T) {
	t.Run("Should reject a duplicate name", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, nil, nil, nil, nil)

		_, err := svc.Create(context.Background(), CreateRequest{
			Name: "Tomato___Leaf_Mold",
		})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), CreateRequest{
			Name: "Tomato___Leaf_Mold",
		})
		assert.ErrorIs(t, err, core.ErrDuplicateKey)
	})
}
