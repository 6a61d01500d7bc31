package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name     string `validate:"required"`
	Strategy string `validate:"omitempty,oneof=naive chunking contextual multi_query"`
	K        int    `validate:"omitempty,min=1,max=50"`
}

func TestValidateRequestPasses(t *testing.T) {
	err := ValidateRequest(sampleRequest{Name: "analysis", Strategy: "contextual", K: 5})
	assert.NoError(t, err)
}

func TestValidateRequestMissingRequiredField(t *testing.T) {
	err := ValidateRequest(sampleRequest{})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Name")
		assert.Contains(t, err.Error(), "required")
	}
}

func TestValidateRequestRejectsUnknownStrategy(t *testing.T) {
	err := ValidateRequest(sampleRequest{Name: "x", Strategy: "hyde"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "oneof")
	}
}

func TestValidateRequestRejectsOutOfRangeK(t *testing.T) {
	err := ValidateRequest(sampleRequest{Name: "x", K: 51})
	assert.Error(t, err)
}
