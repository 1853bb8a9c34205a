package lang

import (
	"strings"
)

// Assign resolves the right-hand side of "name = rhs" and binds it in s.
//
// The first of these that succeeds decides the stored value:
//
//  1. rhs is a literal int32 → Int
//  2. rhs is a valid expression (see [Evaluate]) → Int
//  3. otherwise → Str of the trimmed rhs, without enclosing quotes
//
// A fatal evaluation error, such as division by zero, is returned and
// nothing is stored.
func Assign(s *Store, line string) (string, Value, error) {
	name, rhs, ok := strings.Cut(line, "=")
	if !ok {
		return "", Value{}, ErrSyntax.Wrapf("invalid variable assignment")
	}

	name, rhs = strings.TrimSpace(name), strings.TrimSpace(rhs)
	if !isName(name) {
		return "", Value{}, ErrInvalidName.Wrapf("%q", name)
	}

	v, err := resolveAssignment(rhs, s)
	if err != nil {
		return name, Value{}, err
	}

	s.Set(name, v)

	return name, v, nil
}

func resolveAssignment(rhs string, vars Lookup) (Value, error) {
	if n, ok := parseInt(rhs); ok {
		return Int(n), nil
	}

	n, err := Evaluate(rhs, vars)

	switch {
	case err == nil:
		return Int(n), nil
	case IsFatal(err):
		return Value{}, err
	default:
		return Str(unquote(rhs)), nil
	}
}
