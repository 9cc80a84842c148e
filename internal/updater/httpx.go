package updater

import "io"

// maxErrorBodySize bounds how much of a non-2xx response body is read
// for logging, mirroring the resolver package's own bounded-read
// helper.
const maxErrorBodySize = 64 * 1024

func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
