package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHTTPErrorKind(t *testing.T) {
	tests := []struct {
		code int
		want Kind
	}{
		{http.StatusUnauthorized, KindUnauthenticated},
		{http.StatusForbidden, KindForbidden},
		{http.StatusNotFound, KindNotFound},
		{http.StatusBadRequest, KindValidation},
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusInternalServerError, KindTransient},
	}
	for _, tt := range tests {
		err := NewHTTPError(tt.code, "msg")
		assert.Equal(t, tt.want, err.Kind)
		assert.Equal(t, tt.code, err.StatusCode)
	}
}

func TestWithDataCopies(t *testing.T) {
	base := NewKindHTTPError(http.StatusBadRequest, KindInvalidState, "SOS is already accepted")
	withData := base.WithData(map[string]string{"status": "ACCEPTED"})

	assert.Nil(t, base.Data)
	assert.Equal(t, map[string]string{"status": "ACCEPTED"}, withData.Data)
	assert.Equal(t, base.Message, withData.Error())
}

func TestValidationErrorCollector(t *testing.T) {
	c := NewValidationErrorCollector()
	assert.False(t, c.HasError())

	c.Add(NewValidationError(400, "lat", "out of range")).
		Add(NewValidationError(400, "lng", "required", "out of range"))

	assert.True(t, c.HasError())
	assert.Len(t, c.Errors(), 2)
	assert.Equal(t, "lat: out of range, lng: required, out of range", c.Error())
}
