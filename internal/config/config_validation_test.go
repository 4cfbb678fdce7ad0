package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name: "zero config is valid (all defaults)",
			cfg:  StructuredConfig{},
		},
		{
			name: "postgres driver",
			cfg:  StructuredConfig{Storage: Storage{DB: DB{Driver: DriverPostgres}}},
		},
		{
			name: "sqlite driver",
			cfg:  StructuredConfig{Storage: Storage{DB: DB{Driver: DriverSQLite}}},
		},
		{
			name:    "unknown driver",
			cfg:     StructuredConfig{Storage: Storage{DB: DB{Driver: "oracle"}}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "valid resolution order",
			cfg:  StructuredConfig{Auth: Auth{ResolutionOrder: ResolveUserFirst}},
		},
		{
			name:    "unknown resolution order",
			cfg:     StructuredConfig{Auth: Auth{ResolutionOrder: "random"}},
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name: "bcrypt cost in range",
			cfg:  StructuredConfig{Auth: Auth{BcryptCost: 12}},
		},
		{
			name:    "bcrypt cost too low",
			cfg:     StructuredConfig{Auth: Auth{BcryptCost: 2}},
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "bcrypt cost too high",
			cfg:     StructuredConfig{Auth: Auth{BcryptCost: 40}},
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "negative session ttl",
			cfg:     StructuredConfig{Auth: Auth{SessionTTL: -time.Hour}},
			wantErr: ErrInvalidAuthConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
