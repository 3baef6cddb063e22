package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Lat *float64 `json:"lat" binding:"required" validate:"required,lat"`
	Lng *float64 `json:"lng" binding:"required" validate:"required,lng"`
}

func ptr(f float64) *float64 { return &f }

func TestCoordinates(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	tcs := map[string]struct {
		p     point
		valid bool
	}{
		"origin":        {p: point{Lat: ptr(0), Lng: ptr(0)}, valid: true},
		"dhaka":         {p: point{Lat: ptr(23.8), Lng: ptr(90.4)}, valid: true},
		"edges":         {p: point{Lat: ptr(-90), Lng: ptr(180)}, valid: true},
		"lat too large": {p: point{Lat: ptr(90.01), Lng: ptr(0)}},
		"lng too small": {p: point{Lat: ptr(0), Lng: ptr(-180.5)}},
		"missing lng":   {p: point{Lat: ptr(1)}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			err := v.Struct(tc.p)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	err := v.Struct(point{Lat: ptr(100)})
	require.Error(t, err)

	c := Collect(err)
	require.True(t, c.HasError())
	require.Len(t, c.Errors(), 2)
	assert.Equal(t, "lat", c.Errors()[0].Field)
	assert.Equal(t, "lng", c.Errors()[1].Field)

	c = Collect(errors.New("unexpected EOF"))
	require.Len(t, c.Errors(), 1)
	assert.Equal(t, "body", c.Errors()[0].Field)
}

func TestRegisterGin(t *testing.T) {
	assert.NoError(t, RegisterGin())
}
