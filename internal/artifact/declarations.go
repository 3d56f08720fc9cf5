package artifact

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// declaration is a single "property: value" pair.
type declaration struct {
	property string
	value    string
}

func (d declaration) String() string {
	return d.property + ": " + d.value + ";"
}

// parseDeclarations reads a flat declaration list ("a: b; c: d") with the CSS
// lexer. Nested blocks and stray tokens are rejected.
func parseDeclarations(body string) ([]declaration, error) {
	lexer := css.NewLexer(parse.NewInputString(body))

	var decls []declaration
	var currentProp string
	var currentVal []string
	sawColon := false

	flush := func() error {
		if currentProp == "" {
			return nil
		}
		if !sawColon {
			return fmt.Errorf("property %q has no value", currentProp)
		}
		value := strings.TrimSpace(strings.Join(currentVal, ""))
		if value == "" {
			return fmt.Errorf("property %q has an empty value", currentProp)
		}
		decls = append(decls, declaration{property: currentProp, value: value})
		currentProp = ""
		currentVal = nil
		sawColon = false
		return nil
	}

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			break
		}

		switch {
		case tt == css.CommentToken:
			continue
		case tt == css.LeftBraceToken || tt == css.RightBraceToken:
			return nil, fmt.Errorf("nested blocks are not supported")
		case tt == css.SemicolonToken:
			if err := flush(); err != nil {
				return nil, err
			}
		case currentProp == "":
			switch tt {
			case css.WhitespaceToken:
				// Between declarations
			case css.IdentToken, css.CustomPropertyNameToken:
				currentProp = string(text)
			default:
				return nil, fmt.Errorf("expected property name, got %q", text)
			}
		case !sawColon:
			switch tt {
			case css.WhitespaceToken:
			case css.ColonToken:
				sawColon = true
			default:
				return nil, fmt.Errorf("expected ':' after %q, got %q", currentProp, text)
			}
		default:
			currentVal = append(currentVal, string(text))
		}
	}

	// The last declaration may omit its semicolon.
	if err := flush(); err != nil {
		return nil, err
	}
	return decls, nil
}

// normalizeBody validates a declaration list and renders it in canonical
// "prop: value;" form separated by single spaces.
func normalizeBody(body string) (string, error) {
	decls, err := parseDeclarations(body)
	if err != nil {
		return "", err
	}
	if len(decls) == 0 {
		return "", fmt.Errorf("no declarations")
	}

	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, " "), nil
}
