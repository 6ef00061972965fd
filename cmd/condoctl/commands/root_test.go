package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "github.com/pewpola/dao-condominium/internal/jwt_token"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCommand_ShowsHelpWhenNoSubcommand(t *testing.T) {
	out, err := execute(t)
	assert.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "condoctl")
}

func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	_, err := execute(t, "--unknown-flag", "value")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	out, err := execute(t, "token",
		"--identity", "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		"--signing-key", "k",
		"--issuer", "iss",
		"--audience", "aud",
		"--ttl", "10m",
	)
	require.NoError(t, err)

	caller, err := jwttoken.NewJWTService("k", "iss", "aud").ExtractCaller(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "0x5fbdb2315678afecb367f032d93f642f64180aa3", caller.String())

	claims, err := jwttoken.NewJWTService("k", "iss", "aud").ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenCommandErrors(t *testing.T) {
	_, err := execute(t, "token", "--signing-key", "k")
	assert.Error(t, err, "identity is required")

	_, err = execute(t, "token", "--identity", "0x0000000000000000000000000000000000000000", "--signing-key", "k")
	assert.ErrorContains(t, err, "invalid identity")

	_, err = execute(t, "token", "--identity", "alice", "--signing-key", "")
	assert.ErrorContains(t, err, "signing key")
}

func TestResidenceCommand(t *testing.T) {
	out, err := execute(t, "residence", "1202", "2505")
	require.NoError(t, err)
	assert.Contains(t, out, "1202: block 1, floor 2, unit 2 - exists")

	out, err = execute(t, "residence", "--json", "3000")
	assert.ErrorContains(t, err, "1 of 1 residences do not exist")
	var report residenceReport
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &report))
	assert.Equal(t, 3000, report.Residence)
	assert.False(t, report.Exists)

	_, err = execute(t, "residence", "--floors", "10", "1101")
	assert.Error(t, err)

	_, err = execute(t, "residence", "abc")
	assert.Error(t, err)
}
