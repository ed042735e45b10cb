package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type rfcHolder struct {
	RFC string `validate:"required,rfc"`
}

type addressTypeHolder struct {
	Type string `validate:"required,address_type"`
}

func TestValidateRFC(t *testing.T) {
	cv := NewCustomValidator()

	tests := []struct {
		name  string
		rfc   string
		valid bool
	}{
		{"persona moral", "ETE201125XYZ", true},
		{"persona fisica", "GODE561231GR8", true},
		{"lowercase input accepted", "ete201125xyz", true},
		{"with enye", "ÑAÑO010101AB1", true},
		{"too short", "AB1234", false},
		{"missing date digits", "ETEXXXXXXXYZ", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(rfcHolder{RFC: tt.rfc})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateAddressType(t *testing.T) {
	cv := NewCustomValidator()

	assert.NoError(t, cv.Validate(addressTypeHolder{Type: "BILLING"}))
	assert.NoError(t, cv.Validate(addressTypeHolder{Type: "shipping"}))
	assert.Error(t, cv.Validate(addressTypeHolder{Type: "WAREHOUSE"}))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ETE201125XYZ", NormalizeRFC("  ete201125xyz "))
	assert.Equal(t, "cliente@example.com", NormalizeEmail(" Cliente@Example.COM "))
	assert.Equal(t, "BILLING", NormalizeAddressType("billing "))
}
