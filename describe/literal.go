package describe

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/broady/typedesc/desc"
	"github.com/broady/typedesc/syntax"
)

func describeLiteral(n *syntax.Literal) (desc.Descriptor, error) {
	switch n.Kind {
	case syntax.LitString:
		return desc.Const(desc.Str(n.Text)), nil
	case syntax.LitNumber:
		v, err := ParseNumber(n.Text)
		if err != nil {
			return nil, errorf(n, CodeMalformedLiteral, "%v", err)
		}
		return desc.Const(desc.Num(v)), nil
	case syntax.LitTrue:
		return desc.Const(desc.Bool(true)), nil
	case syntax.LitFalse:
		return desc.Const(desc.Bool(false)), nil
	case syntax.LitNull:
		return desc.Const(desc.Null()), nil
	}
	return nil, unsupported(n, "unknown literal kind %d", n.Kind)
}

func describeKeyword(n *syntax.Keyword) (desc.Descriptor, error) {
	switch n.Name {
	case "string":
		return desc.String(), nil
	case "number":
		return desc.Number(), nil
	case "boolean":
		return desc.Boolean(), nil
	}
	return nil, unsupported(n, "type %q is not supported", n.Name)
}

var decimalLiteral = regexp.MustCompile(`^(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// ParseNumber parses the source text of a numeric literal type: decimal with
// optional fraction and exponent, or 0x, 0o and 0b integers, with numeric
// separators and an optional leading minus sign. The result must be finite.
func ParseNumber(text string) (float64, error) {
	s := strings.TrimSpace(text)
	neg := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		neg = true
		s = strings.TrimSpace(rest)
	}
	if s == "" {
		return 0, fmt.Errorf("malformed number literal %q", text)
	}
	if strings.Contains(s, "_") {
		if strings.HasPrefix(s, "_") || strings.HasSuffix(s, "_") || strings.Contains(s, "__") {
			return 0, fmt.Errorf("malformed numeric separator in %q", text)
		}
		s = strings.ReplaceAll(s, "_", "")
	}

	var v float64
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		i, ok := new(big.Int).SetString(strings.ToLower(s[:2])+s[2:], 0)
		if !ok {
			return 0, fmt.Errorf("malformed number literal %q", text)
		}
		v, _ = new(big.Float).SetInt(i).Float64()
	} else {
		if !decimalLiteral.MatchString(s) {
			return 0, fmt.Errorf("malformed number literal %q", text)
		}
		var err error
		v, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("number literal %q is out of range", text)
		}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("number literal %q is not finite", text)
	}
	if neg {
		v = -v
	}
	return v, nil
}
