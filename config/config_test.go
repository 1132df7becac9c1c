package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Functions

// writeConfig places the supplied TOML content
// in a temporary file and returns its path.
func writeConfig(t *testing.T, content string) string {

	t.Helper()

	path := filepath.Join(t.TempDir(), "fieldsync.toml")

	err := os.WriteFile(path, []byte(content), 0600)
	assert.Nil(t, err)

	return path
}

func TestLoadConfig(t *testing.T) {

	path := writeConfig(t, `
Agent = "tractor-1"
ListenSyncAddr = "0.0.0.0:4040"
PrometheusAddr = "127.0.0.1:9040"
SyncInterval = 5

[Peers]
"tractor-2" = "10.0.4.2:4040"
"tractor-3" = "10.0.4.3:4040"

[TLS]
CertLoc = "private/fleet-cert.pem"
KeyLoc = "private/fleet-key.pem"
`)

	conf, err := LoadConfig(path)
	assert.Nil(t, err)

	assert.Equal(t, "tractor-1", conf.Agent)
	assert.Equal(t, "0.0.0.0:4040", conf.ListenSyncAddr)
	assert.Equal(t, "127.0.0.1:9040", conf.PrometheusAddr)
	assert.Equal(t, (5 * time.Second), conf.Interval())
	assert.Equal(t, 2, len(conf.Peers))
	assert.Equal(t, "10.0.4.2:4040", conf.Peers["tractor-2"])
	assert.NotNil(t, conf.TLS)
	assert.Equal(t, "private/fleet-cert.pem", conf.TLS.CertLoc)
}

func TestLoadConfigDefaults(t *testing.T) {

	path := writeConfig(t, `
Agent = "tractor-1"
ListenSyncAddr = "0.0.0.0:4040"
`)

	conf, err := LoadConfig(path)
	assert.Nil(t, err)

	// Interval falls back to ten seconds, TLS stays off.
	assert.Equal(t, (10 * time.Second), conf.Interval())
	assert.Nil(t, conf.TLS)
	assert.Equal(t, "", conf.PrometheusAddr)
}

func TestLoadConfigInvalid(t *testing.T) {

	var err error

	// Missing file.
	_, err = LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.NotNil(t, err)

	// Missing agent name.
	_, err = LoadConfig(writeConfig(t, `
ListenSyncAddr = "0.0.0.0:4040"
`))
	assert.NotNil(t, err)

	// Missing listen address.
	_, err = LoadConfig(writeConfig(t, `
Agent = "tractor-1"
`))
	assert.NotNil(t, err)

	// Agent listed among its own peers.
	_, err = LoadConfig(writeConfig(t, `
Agent = "tractor-1"
ListenSyncAddr = "0.0.0.0:4040"

[Peers]
"tractor-1" = "10.0.4.1:4040"
`))
	assert.NotNil(t, err)

	// TLS section missing the key location.
	_, err = LoadConfig(writeConfig(t, `
Agent = "tractor-1"
ListenSyncAddr = "0.0.0.0:4040"

[TLS]
CertLoc = "private/fleet-cert.pem"
`))
	assert.NotNil(t, err)
}
