package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/hollow/seed/internal/service"
)

var envKeys = []string{
	"SEED_CONFIG", "DB_BACKEND", "MONGO_URI", "DB_NAME", "DB_HOST", "DB_PORT",
	"DB_NAMESPACE", "DB_USER", "DB_PASSWORD", "SQLITE_PATH", "DB_CONNECT_TIMEOUT",
	"SEED_VARIANT", "LOG_LEVEL", "LOG_FORMAT",
}

// execute runs the CLI with args and returns what it wrote to stdout
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestRoot_LoadPrintsChineseSummary(t *testing.T) {
	out, err := execute(t, nil, "--backend", "memory")
	require.NoError(t, err)

	assert.Equal(t, "测试数据已创建:\n"+
		"用户数量: 2\n"+
		"盒子数量: 3\n"+
		"留言数量: 3\n"+
		"头像文件数量: 2\n"+
		"头像分块数量: 2\n", out)
}

func TestRoot_BasicVariantEnglish(t *testing.T) {
	out, err := execute(t, nil, "--backend", "memory", "--variant", "basic", "--lang", "en")
	require.NoError(t, err)

	assert.Equal(t, "Test data created:\nusers: 2\nboxes: 3\nmessages: 3\n", out)
}

func TestRoot_LoadAndVerify(t *testing.T) {
	out, err := execute(t, nil, "--backend", "memory", "--verify")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "测试数据校验通过\n"))
}

func TestRoot_SQLiteBackend(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "hollow.db"))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--backend", "sqlite", "--lang", "en", "--verify"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
	assert.Contains(t, out.String(), "avatar chunks: 2\n")

	// verify reads the same file back in a separate invocation
	verify := newRootCmd()
	out.Reset()
	verify.SetOut(&out)
	verify.SetErr(io.Discard)
	verify.SetArgs([]string{"verify", "--backend", "sqlite", "--lang", "en"})
	require.NoError(t, verify.ExecuteContext(t.Context()))
	assert.Contains(t, out.String(), "Test data verified\n")
}

func TestRoot_InvalidBackend(t *testing.T) {
	_, err := execute(t, nil, "--backend", "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_BACKEND")
}

func TestRoot_InvalidLang(t *testing.T) {
	_, err := execute(t, nil, "--backend", "memory", "--lang", "fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--lang")
}

func TestRoot_RejectsArgs(t *testing.T) {
	_, err := execute(t, nil, "--backend", "memory", "extra")
	assert.Error(t, err)
}

func TestVerify_EmptyStoreFails(t *testing.T) {
	out, err := execute(t, nil, "verify", "--backend", "memory")
	require.ErrorIs(t, err, service.ErrVerification)
	assert.Empty(t, out)
}

func TestHashPassword_Argument(t *testing.T) {
	out, err := execute(t, nil, "hash-password", "--cost", "4", "password123")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("password123")))
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 4, cost)
}

func TestHashPassword_Stdin(t *testing.T) {
	out, err := execute(t, strings.NewReader("s3cret\n"), "hash-password", "--cost", "4")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("s3cret")))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := execute(t, strings.NewReader(""), "hash-password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")
}
