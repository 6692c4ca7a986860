package vocab

import (
	"bufio"
	"io"
	"strings"
)

// TextParser reads a plain word list, one entry per line. Lines holding
// several words contribute each of them.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var words []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
