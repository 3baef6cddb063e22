package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(RedisConfig{Port: 6379})
	assert.ErrorIs(t, err, ErrHostRequired)

	_, err = New(RedisConfig{Host: "localhost", Port: 70000})
	assert.ErrorIs(t, err, ErrInvalidPort)
}
