package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// GetSimpleText prompts on w and reads a single trimmed line from r.
func GetSimpleText(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
	fmt.Fprintf(w, "%s: ", prompt)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
