package configwatcher

import (
	"fmt"
	"math_edu_backend/internal/config"
	"math_edu_backend/pkg/logger"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func writeConfigFile(t *testing.T, path, port string) {
	t.Helper()
	content := fmt.Sprintf(`server:
  port: "%s"
  mode: "debug"
jwt:
  secret: "watcher-test-secret"
  expire_hours: 1
`, port)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatchConfig_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfigFile(t, path, "8080")

	reloaded := make(chan *config.Config, 1)
	go WatchConfig(path, nil, func(c interface{}) {
		if cfg, ok := c.(*config.Config); ok {
			select {
			case reloaded <- cfg:
			default:
			}
		}
	})

	// 等待 watcher 完成注册
	time.Sleep(200 * time.Millisecond)

	// 连续多次写入，防抖后应触发一次重载并读到最终内容
	writeConfigFile(t, path, "9000")
	writeConfigFile(t, path, "9090")

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "9090", cfg.Server.Port)
	case <-time.After(5 * time.Second):
		t.Fatal("配置文件修改后重载回调未被触发")
	}
}
