package lattice

import (
	"fmt"
	"strings"
	"text/template"
	"text/template/parse"
)

// XCFTemplate is a pgrcmd XCF descriptor with the bitstream path left open.
// The placeholder is the template action {{.BitstreamFile}}. Rendering is
// safe for concurrent use.
type XCFTemplate struct {
	name         string
	tmpl         *template.Template
	placeholders int
}

type xcfData struct {
	BitstreamFile string
}

// ParseXCFTemplate parses descriptor text. The only field the text may
// reference is .BitstreamFile.
func ParseXCFTemplate(name, text string) (*XCFTemplate, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("lattice: parse descriptor %s: %w", name, err)
	}

	if tmpl.Tree == nil || tmpl.Tree.Root == nil {
		return nil, fmt.Errorf("lattice: descriptor %s is empty", name)
	}
	n, err := countPlaceholders(tmpl.Tree.Root)
	if err != nil {
		return nil, fmt.Errorf("lattice: descriptor %s: %w", name, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("lattice: descriptor %s has no bitstream placeholder", name)
	}

	return &XCFTemplate{name: name, tmpl: tmpl, placeholders: n}, nil
}

// countPlaceholders walks the parse tree and rejects anything besides plain
// text and {{.BitstreamFile}} actions.
func countPlaceholders(list *parse.ListNode) (int, error) {
	n := 0
	for _, node := range list.Nodes {
		switch node := node.(type) {
		case *parse.TextNode:
		case *parse.ActionNode:
			if node.String() != "{{.BitstreamFile}}" {
				return 0, fmt.Errorf("unsupported action %s", node)
			}
			n++
		default:
			return 0, fmt.Errorf("unsupported template node %s", node)
		}
	}
	return n, nil
}

// Name returns the template name, usually the descriptor file name.
func (t *XCFTemplate) Name() string {
	return t.name
}

// Placeholders returns how many times the bitstream path is substituted.
func (t *XCFTemplate) Placeholders() int {
	return t.placeholders
}

// Render substitutes bitstreamFile for every placeholder. The path is
// inserted verbatim, without XML escaping, since pgrcmd reads it as-is.
func (t *XCFTemplate) Render(bitstreamFile string) (string, error) {
	var b strings.Builder
	if err := t.tmpl.Execute(&b, xcfData{BitstreamFile: bitstreamFile}); err != nil {
		return "", fmt.Errorf("lattice: render %s: %w", t.name, err)
	}
	return b.String(), nil
}
