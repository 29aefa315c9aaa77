package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Declarations is a parsed inline style attribute: property name (lowercased)
// to raw value string. Forum markup only ever carries a handful of
// declarations per element, full cascade semantics are out of scope.
type Declarations map[string]string

// Get returns a declaration value or an empty string.
func (d Declarations) Get(name string) string {
	return d[name]
}

// DisplayNone reports whether the declarations hide the element outright.
func (d Declarations) DisplayNone() bool {
	return strings.EqualFold(d["display"], "none")
}

// Parser parses inline style declaration lists.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new inline style parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-inline")}
}

// Inline parses a style attribute value into declarations. Malformed input
// yields whatever declarations could be recovered before the error - style
// problems never fail a conversion.
func (p *Parser) Inline(style string) Declarations {
	decls := make(Declarations)
	if strings.TrimSpace(style) == "" {
		return decls
	}

	input := parse.NewInputString(style)
	parser := css.NewParser(input, true)

	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("Inline style parse error", zap.String("style", style), zap.Error(err))
			}
			return decls
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			var val strings.Builder
			for _, tok := range parser.Values() {
				val.Write(tok.Data)
			}
			decls[strings.ToLower(string(data))] = strings.TrimSpace(val.String())
		}
	}
}
