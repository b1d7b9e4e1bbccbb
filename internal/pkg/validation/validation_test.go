package validation

import (
	"errors"
	"testing"

	"semdex-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("pbernardproxy@gmail.com"))
	assert.False(t, IsValidEmail("pbernardproxy@gmail"))
	assert.False(t, IsValidEmail("no spaces@x.com"))
	assert.False(t, IsValidEmail(""))
}

func TestClassifyIdentifier(t *testing.T) {
	assert.Equal(t, KindEmail, ClassifyIdentifier("audrey.l.brutus@gmail.com"))
	assert.Equal(t, KindPhone, ClassifyIdentifier("+230 54557219"))
	assert.Equal(t, KindUnknown, ClassifyIdentifier("not an identifier"))
}

type sample struct {
	Action string `json:"action" validate:"required,max=5"`
	Limit  *int   `query:"limit" validate:"omitempty,min=1"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{Action: "LOGIN"}))

	zero := 0
	err := Struct(sample{Action: "", Limit: &zero})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "required", verr.Fields["action"])
	assert.Equal(t, "min", verr.Fields["limit"])

	err = Struct(sample{Action: "TOO-LONG"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "max", verr.Fields["action"])
}
