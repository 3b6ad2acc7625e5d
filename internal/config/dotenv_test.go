package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# Dataverse
DATAVERSE_URL=https://contoso.crm.dynamics.com

export TENANT_ID='tenant'
CLIENT_SECRET="a=b"
not a pair
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	entries, err := ParseEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, []EnvEntry{
		{"DATAVERSE_URL", "https://contoso.crm.dynamics.com"},
		{"TENANT_ID", "tenant"},
		{"CLIENT_SECRET", "a=b"},
	}, entries)
}

func TestParseEnvFile_NotFound(t *testing.T) {
	_, err := ParseEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadDotEnv_ExistingWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("M3652CS_TEST_KEEP=file\nM3652CS_TEST_NEW=file\n"), 0644))
	t.Setenv("M3652CS_TEST_KEEP", "env")
	t.Setenv("M3652CS_TEST_NEW", "")
	os.Unsetenv("M3652CS_TEST_NEW")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "env", os.Getenv("M3652CS_TEST_KEEP"))
	assert.Equal(t, "file", os.Getenv("M3652CS_TEST_NEW"))
}
