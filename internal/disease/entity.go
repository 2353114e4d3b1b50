// PlantDiseaseDetector | 2026
// entity.go

package disease

import (
	"time"
)

// SentinelName is the catalog row every classification falls back to
// when the predicted label has no entry of its own.
const SentinelName = "UnknownDisease"

type Disease struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Reason          string    `db:"reason"`
	Recommendations string    `db:"recommendations"`
	CreatedAt       time.Time `db:"created_at"`
}
