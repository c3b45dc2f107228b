//go:build windows

package transport

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Microsoft/go-winio"
)

const pipePrefix = `\\?\pipe\discord-ipc-`

// Dial probes the Discord RPC named pipes and opens the first that
// accepts a read+write connection.
func Dial() (Conn, error) {
	var lastErr error

	for i := 0; i < 10; i++ {
		conn, err := winio.DialPipe(pipePrefix+strconv.Itoa(i), nil)
		if err == nil {
			return newSocketConn(conn), nil
		}

		if !errors.Is(err, os.ErrNotExist) {
			lastErr = err
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, lastErr)
	}

	return nil, ErrEndpointNotFound
}
