package analysis

import (
	"time"

	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// BuildMetadata is exported for testing. See buildMetadata.
func BuildMetadata(start time.Time, version string, files int) taxonomy.Metadata {
	return buildMetadata(start, version, files)
}
