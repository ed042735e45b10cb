package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missaelcorm/notas-service/internal/models"
)

func TestRender(t *testing.T) {
	note := &models.Note{
		ID:        "note-1",
		Folio:     "NV-20260829-ABCD1234",
		Total:     mustMoney(t, "25700.00"),
		CreatedAt: time.Now(),
	}
	customer := &models.Customer{
		LegalName: "Empresa de Tecnologia SA de CV",
		TradeName: "EmpresaTec",
		RFC:       "ETE201125XYZ",
		Email:     "cliente@example.com",
		Phone:     "5512345678",
	}
	lines := []*models.NoteLine{
		{ProductName: "Laptop", Quantity: 1, UnitPrice: mustMoney(t, "25000.00"), Amount: mustMoney(t, "25000.00")},
		{ProductName: "Mouse", Quantity: 2, UnitPrice: mustMoney(t, "350.00"), Amount: mustMoney(t, "700.00")},
	}

	t.Run("produces a PDF document", func(t *testing.T) {
		data, err := Render(note, customer, lines)
		require.NoError(t, err)

		assert.Equal(t, "%PDF", string(data[:4]))
		assert.Greater(t, len(data), 500)
	})

	t.Run("renders with no lines", func(t *testing.T) {
		data, err := Render(note, customer, nil)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(data[:4]))
	})
}

func mustMoney(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.MoneyFromString(s)
	require.NoError(t, err)
	return m
}
