package bsdl

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser parses BSDL files. It is safe for concurrent use.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser builds the BSDL grammar.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(Lexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("bsdl: failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a BSDL file from a reader. The name is used in error
// positions and may be empty.
func (p *Parser) Parse(name string, r io.Reader) (*File, error) {
	file, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("bsdl: parse error: %w", err)
	}
	return file, nil
}

// ParseFile parses the BSDL file at path.
func (p *Parser) ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bsdl: failed to open file: %w", err)
	}
	defer f.Close()

	return p.Parse(path, f)
}
