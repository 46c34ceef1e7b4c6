//go:build !unix

package preflight

import "os"

// access falls back to opening the path; write permission is not checked.
func access(path string, _, _ bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
