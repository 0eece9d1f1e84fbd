package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/config"
)

func TestDSN(t *testing.T) {
	got := DSN(&config.DatabaseConfig{Host: "db", Port: 5433, User: "wizard", Password: "s3cret", Name: "costwizard"})
	assert.Equal(t, "host=db port=5433 user=wizard password=s3cret dbname=costwizard sslmode=disable", got)
}
