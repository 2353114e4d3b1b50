// PlantDiseaseDetector | 2026
// classifier.go

package classifier

import (
	"context"
)

// Classifier turns a stored leaf image into a disease label. The label
// is a key into the disease catalog; whether it matches a catalog row
// is the caller's problem.
type Classifier interface {
	Predict(ctx context.Context, imagePath string) (string, error)
}
