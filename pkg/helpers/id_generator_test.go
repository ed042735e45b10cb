package helpers

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFolio(t *testing.T) {
	g := NewIDGenerator()

	t.Run("derives folio from note id and creation date", func(t *testing.T) {
		createdAt := time.Date(2020, 11, 25, 10, 30, 0, 0, time.UTC)
		folio := g.GenerateFolio("a1b2c3d4-e5f6-7890-abcd-ef1234567890", createdAt)

		assert.Equal(t, "NV-20201125-A1B2C3D4", folio)
	})

	t.Run("matches the folio format", func(t *testing.T) {
		folio := g.GenerateFolio(g.GenerateUUID(), time.Now())

		assert.Regexp(t, regexp.MustCompile(`^NV-\d{8}-[A-F0-9]{8}$`), folio)
	})

	t.Run("same note id always yields the same folio", func(t *testing.T) {
		createdAt := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
		first := g.GenerateFolio("deadbeef-0000-0000-0000-000000000000", createdAt)
		second := g.GenerateFolio("deadbeef-0000-0000-0000-000000000000", createdAt)

		assert.Equal(t, first, second)
	})
}

func TestGenerateUUID(t *testing.T) {
	g := NewIDGenerator()

	first := g.GenerateUUID()
	second := g.GenerateUUID()

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 36)
}
