package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/icdmap/cmd/application"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewCommand(&application.Mock{VersionFunc: func() string { return "1.2.3" }})
	cmd.SetOut(&buf)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "icdmap version 1.2.3")
	assert.Contains(t, buf.String(), "built by: test")
}
