package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checador/internal/platform/apperr"
)

type entry struct {
	Day   string `json:"dia_semana" validate:"required"`
	Start string `json:"hora_inicio" validate:"required,timeofday"`
}

type payload struct {
	Name    string  `json:"nombre" validate:"required"`
	Email   string  `json:"correo" validate:"required,email"`
	Phone   *string `json:"telefono" validate:"omitempty,max=10"`
	Entries []entry `json:"horarios" validate:"dive"`
}

func TestStructCollectsJSONFieldNames(t *testing.T) {
	long := "55555555555"
	err := Struct(payload{
		Email:   "not-an-email",
		Phone:   &long,
		Entries: []entry{{Day: "Lunes", Start: "25:00:00"}},
	})

	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Validation, appErr.Kind())

	got := map[string]string{}
	for _, issue := range appErr.Fields() {
		got[issue.Field] = issue.Reason
	}
	assert.Equal(t, "is required", got["nombre"])
	assert.Equal(t, "must be a valid email", got["correo"])
	assert.Equal(t, "must be at most 10", got["telefono"])
	assert.Equal(t, "must match HH:MM:SS", got["horarios[0].hora_inicio"])
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(payload{Name: "Ana", Email: "ana@x.com"}))
}

func TestIsTimeOfDay(t *testing.T) {
	valid := []string{"00:00:00", "08:30:00", "23:59:59", "12:00:00.123"}
	invalid := []string{"24:00:00", "8:30:00", "08:30", "08:60:00", "08:30:00.12", "2024-05-01T08:30:00"}
	for _, v := range valid {
		assert.True(t, IsTimeOfDay(v), v)
	}
	for _, v := range invalid {
		assert.False(t, IsTimeOfDay(v), v)
	}
}

func TestCollectorDateAndOrdering(t *testing.T) {
	c := New()
	c.Required("username", " ")
	_, ok := c.Date("fecha", "2024-13-01")
	assert.False(t, ok)
	c.Add("curp", "")

	issues := c.Issues()
	require.Len(t, issues, 2)
	assert.Equal(t, "fecha", issues[0].Field)
	assert.Equal(t, "username", issues[1].Field)
	assert.Error(t, c.Err())
	assert.NoError(t, New().Err())
}
