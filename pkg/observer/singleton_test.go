package observer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PackageLevelLifecycle(t *testing.T) {
	prev := SetDefault(New(WithExportDir(t.TempDir())))
	t.Cleanup(func() {
		Reset()
		SetDefault(prev)
	})

	session := Observe("global")
	assert.Equal(t, "global", session.Name)

	closed, ok := End()
	require.True(t, ok)
	assert.Equal(t, session.ID, closed.ID)

	path, err := Flush()
	require.NoError(t, err)
	assert.FileExists(t, path)

	Reset()
	sessions, events := Default().Snapshot()
	assert.Empty(t, sessions)
	assert.Empty(t, events)
}

func TestSetDefault_ReturnsPrevious(t *testing.T) {
	replacement := New(WithExportDir(t.TempDir()))
	prev := SetDefault(replacement)
	t.Cleanup(func() { SetDefault(prev) })

	assert.Same(t, replacement, Default())
}
