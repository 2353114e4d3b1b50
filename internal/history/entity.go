// PlantDiseaseDetector | 2026
// entity.go

package history

import (
	"time"
)

// History rows are written once per completed upload+classification and
// never updated.
type History struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	DiseaseID string    `db:"disease_id"`
	ImagePath string    `db:"image_path"`
	CreatedAt time.Time `db:"created_at"`
}

// Entry is a history row joined with its disease, as served to the
// owning user.
type Entry struct {
	DiseaseName     string    `db:"disease_name"`
	Reason          string    `db:"reason"`
	Recommendations string    `db:"recommendations"`
	ImagePath       string    `db:"image_path"`
	CreatedAt       time.Time `db:"created_at"`
}
