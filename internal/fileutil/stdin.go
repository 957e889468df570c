package fileutil

import (
	"fmt"
	"io"
	"os"
)

// maxStdinSize caps stdin input at 10MB to avoid unbounded reads.
const maxStdinSize = 10 * 1024 * 1024

// ReadStdin reads all of stdin up to maxStdinSize.
func ReadStdin() ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, maxStdinSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading stdin: %w", err)
	}
	if len(data) > maxStdinSize {
		return nil, fmt.Errorf("stdin input exceeds maximum size of %d bytes", maxStdinSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("stdin is empty")
	}
	return data, nil
}

// ReadFileOrStdin reads from stdin when path is "-", otherwise from the file
// at path.
func ReadFileOrStdin(path string) ([]byte, error) {
	if path == "-" {
		return ReadStdin()
	}
	return ReadSecureFile(path)
}
