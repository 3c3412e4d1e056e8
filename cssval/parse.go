package cssval

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

var (
	ErrEmptySequence = errors.New("empty value sequence")
	ErrTooManyValues = errors.New("value sequence has more than 3 elements")
	ErrUnsupported   = errors.New("unsupported value")
)

// Parse maps loosely typed input onto Value. Numbers of any kind and
// json.Number become numeric scalars, strings become tokens, slices and
// arrays of 1 to 3 of those become Scalar, Pair or Triple. Byte slices are
// text and become tokens. nil is an empty token.
func Parse(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Token(""), nil
	case Value:
		return x, nil
	}

	rv := reflect.ValueOf(v)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return parseScalar(v)
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return Token(string(rv.Bytes())), nil
	}

	items := make([]Scalar, 0, 3)
	for i := range rv.Len() {
		if i == 3 {
			return nil, fmt.Errorf("%w: %d", ErrTooManyValues, rv.Len())
		}
		s, err := parseScalar(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, s)
	}
	return fromScalars(items)
}

// FormatAny is Parse followed by Format.
func FormatAny(v any, unit string) (string, error) {
	val, err := Parse(v)
	if err != nil {
		return "", err
	}
	return Format(val, unit), nil
}

func fromScalars(items []Scalar) (Value, error) {
	switch len(items) {
	case 0:
		return nil, ErrEmptySequence
	case 1:
		return items[0], nil
	case 2:
		return Pair{items[0], items[1]}, nil
	case 3:
		return Triple{items[0], items[1], items[2]}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrTooManyValues, len(items))
	}
}

func parseScalar(v any) (Scalar, error) {
	switch x := v.(type) {
	case Scalar:
		return x, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Scalar{}, fmt.Errorf("%w: %q", ErrUnsupported, x)
		}
		return Num(f), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return Token(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Num(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Num(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Num(rv.Float()), nil
	}
	return Scalar{}, fmt.Errorf("%w: %T", ErrUnsupported, v)
}

var digitsRe = regexp.MustCompile(`^[0-9.]+$`)

// IsOnlyDigits reports whether s is not empty and consists of decimal digits
// and dots only.
func IsOnlyDigits(s string) bool {
	return digitsRe.MatchString(s)
}

// ParseText parses textual value as it is written on the command line or in
// configuration: YAML flow scalar or sequence, for example `12`, `[12, 8]`,
// `auto` or `[auto, 5]`. Quoted text made of digits only is a number, any
// other non numeric scalar is a token taken verbatim.
func ParseText(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Token(""), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil || len(doc.Content) == 0 {
		// not YAML at all, keep text verbatim
		return Token(s), nil
	}

	node := doc.Content[0]
	switch node.Kind {
	case yaml.ScalarNode:
		return scalarFromNode(node), nil
	case yaml.SequenceNode:
		items := make([]Scalar, 0, len(node.Content))
		for i, n := range node.Content {
			if n.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("element %d: %w: nested %s", i, ErrUnsupported, kindName(n.Kind))
			}
			items = append(items, scalarFromNode(n))
		}
		return fromScalars(items)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, kindName(node.Kind))
}

func scalarFromNode(n *yaml.Node) Scalar {
	switch n.ShortTag() {
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return Num(f)
		}
	case "!!str":
		if IsOnlyDigits(n.Value) {
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return Num(f)
			}
		}
	}
	return Token(n.Value)
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "scalar"
	}
}
