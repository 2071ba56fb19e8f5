package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rogerio-castellano/stocksync/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOCKSYNC_JWT_SECRET", "cli-secret")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"token", "--subject", "store-42"})
	require.NoError(t, cmd.Execute())

	claims, err := auth.NewSigner("cli-secret").ParseToken(strings.TrimSpace(out.String()), auth.KindCustom)
	require.NoError(t, err)
	assert.Equal(t, "store-42", claims.Subject)
}

func TestTokenCommand_RequiresSubject(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"token"})
	assert.Error(t, cmd.Execute())
}
