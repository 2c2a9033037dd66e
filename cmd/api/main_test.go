package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LabelWise-io/labelwise/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeAPI(t *testing.T) {
	tempDir := t.TempDir()
	configData := `
apiPort: 8099
database:
  type: sqlite
  path: ` + filepath.Join(tempDir, "test.db") + `
auth:
  secretKey: test-secret
`
	configPath := filepath.Join(tempDir, "app.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configData), 0644))

	// No GEMINI_API_KEY: the service still starts, with analysis disabled
	os.Unsetenv("GEMINI_API_KEY")

	apiInstance, err := initializeAPI(configPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	assert.Equal(t, 8099, apiInstance.Config.APIPort)
	assert.NotNil(t, apiInstance.Router)
	assert.NotNil(t, apiInstance.Analyzer)
	assert.Nil(t, apiInstance.Archive)
}
