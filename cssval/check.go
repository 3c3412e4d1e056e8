package cssval

import (
	"errors"
	"fmt"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Check verifies that s is well formed CSS component value: it could be
// tokenized, has balanced parentheses and does not leak out of declaration.
func Check(s string) error {
	if s == "" {
		return errors.New("empty css value")
	}

	l := css.NewLexer(parse.NewInputString(s))
	depth := 0
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("malformed css value %q: %w", s, err)
			}
			if depth != 0 {
				return fmt.Errorf("malformed css value %q: unbalanced parentheses", s)
			}
			return nil
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			if depth--; depth < 0 {
				return fmt.Errorf("malformed css value %q: unexpected ')'", s)
			}
		case css.BadStringToken, css.BadURLToken:
			return fmt.Errorf("malformed css value %q: bad token %q", s, data)
		case css.SemicolonToken, css.LeftBraceToken, css.RightBraceToken:
			return fmt.Errorf("malformed css value %q: unexpected %q", s, data)
		}
	}
}
