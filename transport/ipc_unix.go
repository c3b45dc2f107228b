//go:build unix

package transport

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
)

// Environment keys probed, in order, for the socket base directory.
var envKeys = []string{"XDG_RUNTIME_DIR", "TMPDIR", "TMP", "TEMP"}

// Well-known subdirectories that sandboxed Discord builds place their
// socket under. The empty entry covers the plain desktop app.
var sandboxSubdirs = []string{
	"",
	"app/com.discordapp.Discord/",
	"app/dev.vencord.Vesktop/",
	".flatpak/com.discordapp.Discord/xdg-run/",
	".flatpak/dev.vencord.Vesktop/xdg-run/",
	"snap.discord-canary/",
	"snap.discord/",
}

// Dial finds the Discord RPC socket and opens it.
func Dial() (Conn, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}

	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return newSocketConn(conn), nil
}

// SocketPath returns the first Discord RPC socket that exists on disk,
// or ErrEndpointNotFound.
func SocketPath() (string, error) {
	base, ok := baseDir()
	if !ok {
		return "", ErrEndpointNotFound
	}

	for i := 0; i < 10; i++ {
		for _, subdir := range sandboxSubdirs {
			path := filepath.Join(base, subdir, "discord-ipc-"+strconv.Itoa(i))

			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", ErrEndpointNotFound
}

func baseDir() (string, bool) {
	for _, key := range envKeys {
		dir, ok := os.LookupEnv(key)
		if !ok || dir == "" {
			continue
		}

		if key == "XDG_RUNTIME_DIR" {
			// A snap-confined process sees a per-app runtime dir;
			// the Discord socket lives one level up.
			if _, confined := os.LookupEnv("SNAP"); confined {
				dir = filepath.Dir(dir)
			}
		}

		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, true
		}
	}

	return "", false
}
