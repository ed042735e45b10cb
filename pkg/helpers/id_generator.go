package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator generates entity identifiers and note folios
type IDGenerator struct{}

// NewIDGenerator creates a new ID generator
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// GenerateUUID generates a UUID v4
func (g *IDGenerator) GenerateUUID() string {
	return uuid.New().String()
}

// GenerateFolio derives the human-readable note reference from its identity
// and creation date. Format: NV-YYYYMMDD-XXXXXXXX (e.g., NV-20260829-A1B2C3D4)
func (g *IDGenerator) GenerateFolio(noteID string, createdAt time.Time) string {
	fragment := noteID
	if len(fragment) > 8 {
		fragment = fragment[:8]
	}
	return fmt.Sprintf("NV-%s-%s", createdAt.Format("20060102"), strings.ToUpper(fragment))
}
