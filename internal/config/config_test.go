package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoMigrateEnabled(t *testing.T) {
	tests := []struct {
		name         string
		mode         string
		forceMigrate bool
		want         bool
	}{
		{"debug 模式默认迁移", "debug", false, true},
		{"release 模式默认不迁移", "release", false, false},
		{"release 模式 --migrate 强制迁移", "release", true, true},
		{"debug 模式 --migrate 仍然迁移", "debug", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:       ServerConfig{Mode: tt.mode},
				ForceMigrate: tt.forceMigrate,
			}
			assert.Equal(t, tt.want, cfg.AutoMigrateEnabled())
		})
	}
}
