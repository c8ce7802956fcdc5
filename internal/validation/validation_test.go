package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Username string `validate:"required,max=80"`
	Email    string `validate:"required,email"`
	Quantity int64  `validate:"min=1"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{Username: "john", Email: "john@example.com", Quantity: 1})
	assert.NoError(t, err)
}

func TestStruct_ReportsFirstViolationInSnakeCase(t *testing.T) {
	err := Struct(sample{Username: "", Email: "john@example.com", Quantity: 1})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "username is invalid (required)")
	}
}

func TestStruct_BadEmail(t *testing.T) {
	err := Struct(sample{Username: "john", Email: "not-an-email", Quantity: 1})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "email is invalid (email)")
	}
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "shipping_address", toSnake("ShippingAddress"))
	assert.Equal(t, "quantity", toSnake("Quantity"))
}
