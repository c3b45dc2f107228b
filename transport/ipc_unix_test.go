//go:build unix

package transport

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setBaseEnv points discovery at dir via TMPDIR and clears the rest of
// the environment it consumes.
func setBaseEnv(t *testing.T, dir string) {
	t.Helper()

	unsetSnap(t)
	t.Setenv("XDG_RUNTIME_DIR", "/nonexistent")
	t.Setenv("TMPDIR", dir)
	t.Setenv("TMP", "")
	t.Setenv("TEMP", "")
}

func unsetSnap(t *testing.T) {
	t.Helper()

	if v, ok := os.LookupEnv("SNAP"); ok {
		t.Setenv("SNAP", v) // registers the restore
		_ = os.Unsetenv("SNAP")
	}
}

func touch(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestSocketPathDiscovery(t *testing.T) {
	dir := t.TempDir()
	setBaseEnv(t, dir)

	touch(t, filepath.Join(dir, "discord-ipc-4"))

	path, err := SocketPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "discord-ipc-4"), path)
}

func TestSocketPathNoEndpoint(t *testing.T) {
	unsetSnap(t)
	t.Setenv("XDG_RUNTIME_DIR", "")
	t.Setenv("TMPDIR", "")
	t.Setenv("TMP", "")
	t.Setenv("TEMP", "")

	_, err := SocketPath()
	assert.ErrorIs(t, err, ErrEndpointNotFound)
}

func TestSocketPathEmptyBaseDir(t *testing.T) {
	setBaseEnv(t, t.TempDir())

	_, err := SocketPath()
	assert.ErrorIs(t, err, ErrEndpointNotFound)
}

func TestSocketPathIndexBeforeSubdir(t *testing.T) {
	dir := t.TempDir()
	setBaseEnv(t, dir)

	// Index 0 in a sandbox subdir beats index 1 at the base: the outer
	// loop runs over indices, the inner one over subdirs.
	touch(t, filepath.Join(dir, "discord-ipc-1"))
	touch(t, filepath.Join(dir, "snap.discord", "discord-ipc-0"))

	path, err := SocketPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "snap.discord", "discord-ipc-0"), path)
}

func TestSocketPathFlatpakSubdir(t *testing.T) {
	dir := t.TempDir()
	setBaseEnv(t, dir)

	sock := filepath.Join(dir, ".flatpak", "com.discordapp.Discord", "xdg-run", "discord-ipc-0")
	touch(t, sock)

	path, err := SocketPath()
	require.NoError(t, err)
	assert.Equal(t, sock, path)
}

func TestSocketPathSnapStripsRuntimeDir(t *testing.T) {
	runtime := t.TempDir()
	perApp := filepath.Join(runtime, "snap.some-app")
	require.NoError(t, os.Mkdir(perApp, 0o755))

	touch(t, filepath.Join(runtime, "discord-ipc-0"))

	t.Setenv("XDG_RUNTIME_DIR", perApp)
	t.Setenv("TMPDIR", "")
	t.Setenv("TMP", "")
	t.Setenv("TEMP", "")
	t.Setenv("SNAP", "/snap/some-app/1")

	path, err := SocketPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(runtime, "discord-ipc-0"), path)
}

func TestDialConnectionFailed(t *testing.T) {
	dir := t.TempDir()
	setBaseEnv(t, dir)

	// A regular file is found by discovery but refuses a connection.
	touch(t, filepath.Join(dir, "discord-ipc-0"))

	_, err := Dial()
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestDialEndpointNotFound(t *testing.T) {
	setBaseEnv(t, t.TempDir())

	_, err := Dial()
	assert.ErrorIs(t, err, ErrEndpointNotFound)
}

func TestDial(t *testing.T) {
	dir := t.TempDir()
	setBaseEnv(t, dir)

	ln, err := net.Listen("unix", filepath.Join(dir, "discord-ipc-0"))
	require.NoError(t, err)
	defer ln.Close()

	echoed := make(chan []byte, 1)
	go func() {
		peer, err := ln.Accept()
		if err != nil {
			return
		}
		defer peer.Close()

		buf := make([]byte, 4)
		n, _ := peer.Read(buf)
		echoed <- buf[:n]
	}()

	conn, err := Dial()
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Write([]byte("ping")))
	assert.Equal(t, []byte("ping"), <-echoed)
}
