package util

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlaceholder is returned (wrapped) when a template names a
// placeholder that has no value.
var ErrUnknownPlaceholder = errors.New("unknown placeholder")

// ErrMalformedTemplate is returned (wrapped) for unbalanced braces.
var ErrMalformedTemplate = errors.New("malformed template")

// FormatNamed substitutes {name} placeholders in tmpl from values.
//
// "{{" and "}}" produce literal braces. Every placeholder must have an entry
// in values; values that the template does not reference are ignored.
func FormatNamed(tmpl string, values map[string]string) (string, error) {
	return expand(tmpl, func(name string) (string, error) {
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("%w: {%s} in %q", ErrUnknownPlaceholder, name, tmpl)
		}
		return v, nil
	})
}

// Placeholders returns the placeholder names referenced by tmpl, in order of
// first appearance.
func Placeholders(tmpl string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	_, err := expand(tmpl, func(name string) (string, error) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return "", nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func expand(tmpl string, lookup func(name string) (string, error)) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at offset %d in %q", ErrMalformedTemplate, i, tmpl)
			}
			name := tmpl[i+1 : i+1+end]
			if name == "" || strings.ContainsRune(name, '{') {
				return "", fmt.Errorf("%w: bad placeholder at offset %d in %q", ErrMalformedTemplate, i, tmpl)
			}
			v, err := lookup(name)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("%w: single '}' at offset %d in %q", ErrMalformedTemplate, i, tmpl)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
