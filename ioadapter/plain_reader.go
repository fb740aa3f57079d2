package ioadapter

import (
	"bufio"
	"io"
)

// plainReader reads prompt answers line by line from a non-TTY stdin, e.g.
// when input is piped into "ellex repl" (mirrors gosh's non-interactive
// fallback in cmd/gosh/main.go).
type plainReader struct {
	scanner *bufio.Scanner
}

func newPlainReader(r io.Reader) *plainReader {
	return &plainReader{scanner: bufio.NewScanner(r)}
}

func (p *plainReader) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}
