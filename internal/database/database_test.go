package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/swimrecords/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.DatabaseConfig
		expected string
	}{
		{
			name: "basic DSN",
			cfg: &config.DatabaseConfig{
				Host: "localhost", Port: 3306, User: "coach", Password: "secret",
				Database: "swim", TLS: "preferred",
			},
			expected: "coach:secret@tcp(localhost:3306)/swim?parseTime=true&tls=preferred",
		},
		{
			name: "DSN without database",
			cfg: &config.DatabaseConfig{
				Host: "localhost", Port: 3306, User: "coach", Password: "secret",
			},
			expected: "coach:secret@tcp(localhost:3306)/?parseTime=true&tls=preferred",
		},
		{
			name: "TLS disabled",
			cfg: &config.DatabaseConfig{
				Host: "db", Port: 3307, User: "coach", Password: "", Database: "swim", TLS: "disable",
			},
			expected: "coach:@tcp(db:3307)/swim?parseTime=true&tls=false",
		},
		{
			name: "TLS required",
			cfg: &config.DatabaseConfig{
				Host: "db", Port: 3306, User: "coach", Password: "p@ss", Database: "swim", TLS: "required",
			},
			expected: "coach:p@ss@tcp(db:3306)/swim?parseTime=true&tls=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildDSN(tt.cfg))
		})
	}
}

func TestNewManager(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "localhost", Port: 3306}
	manager := NewManager(cfg)
	require.NotNil(t, manager)
	assert.Same(t, cfg, manager.config)
	assert.Nil(t, manager.DB, "DB should be nil before Connect()")
}

func TestManager_ConnectNilConfig(t *testing.T) {
	err := NewManager(nil).Connect(context.Background())
	assert.Error(t, err)
}

func TestManager_CloseWithoutConnect(t *testing.T) {
	assert.NoError(t, NewManager(&config.DatabaseConfig{}).Close())
}

func TestManager_PingWithoutConnect(t *testing.T) {
	err := NewManager(&config.DatabaseConfig{}).Ping(context.Background())
	assert.ErrorContains(t, err, "not connected")
}

func TestManager_PingAndClose(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	manager := NewManager(&config.DatabaseConfig{})
	manager.DB = db

	mock.ExpectPing()
	assert.NoError(t, manager.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(assert.AnError)
	assert.ErrorContains(t, manager.Ping(context.Background()), "ping failed")

	mock.ExpectClose()
	assert.NoError(t, manager.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
