// PlantDiseaseDetector | 2026
// shard.go

package storage

import (
	"crypto/md5" //nolint:gosec // G501: path sharding, not integrity
	"encoding/hex"
	"fmt"
)

// ShardPath maps a filename onto a stable three-level directory
// fragment ("ab/cd/ef") built from md5 prefixes, bounding per-directory
// fan-out. Same filename, same fragment.
func ShardPath(filename string) string {
	sum := md5.Sum([]byte(filename)) //nolint:gosec // G401: see above
	h := hex.EncodeToString(sum[:])
	return fmt.Sprintf("%s/%s/%s", h[0:2], h[2:4], h[4:6])
}
