package postgre

import (
	"context"
	"testing"

	"sos-srv/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.PostgresConfig{Host: "db", Port: 5432, User: "sos", Password: "pw", DBName: "sos"})
	assert.Equal(t, "host=db port=5432 user=sos password=pw dbname=sos sslmode=disable", dsn)

	dsn = DSN(config.PostgresConfig{Host: "db", Port: 5432, DBName: "sos", SSLMode: "require"})
	assert.Contains(t, dsn, "sslmode=require")
}

func TestHealthCheckWithoutConnect(t *testing.T) {
	assert.Error(t, HealthCheck(context.Background()))
	assert.NoError(t, Disconnect(context.Background()))
}
