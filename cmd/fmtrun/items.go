package main

import (
	"fmt"
	"strconv"
	"strings"
)

// splitItems splits on commas outside quotes and parentheses.
func splitItems(s string) ([]string, error) {
	var (
		parts []string
		cur   strings.Builder
		quote rune
		depth int
	)
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ')' in items")
			}
		case r == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated string in items")
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '(' in items")
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" || len(parts) > 0 {
		parts = append(parts, rest)
	}
	return parts, nil
}

// parseItems infers a Go value for every item literal: integers, reals,
// logicals (T, F, .TRUE., .FALSE.), complex constants (re,im) and strings.
// Unquoted text that is none of these is taken as a string.
func parseItems(s string) ([]any, error) {
	parts, err := splitItems(s)
	if err != nil {
		return nil, err
	}
	items := make([]any, 0, len(parts))
	for _, p := range parts {
		items = append(items, parseLiteral(p))
	}
	return items, nil
}

func parseLiteral(p string) any {
	if n := len(p); n >= 2 && (p[0] == '\'' || p[0] == '"') && p[n-1] == p[0] {
		return p[1 : n-1]
	}
	if n, err := strconv.ParseInt(p, 10, 64); err == nil {
		return int(n)
	}
	if f, err := strconv.ParseFloat(strings.NewReplacer("d", "e", "D", "e").Replace(p), 64); err == nil {
		return f
	}
	switch strings.ToUpper(p) {
	case "T", ".TRUE.":
		return true
	case "F", ".FALSE.":
		return false
	}
	if strings.HasPrefix(p, "(") && strings.HasSuffix(p, ")") {
		re, im, ok := strings.Cut(p[1:len(p)-1], ",")
		if ok {
			rf, err1 := strconv.ParseFloat(strings.TrimSpace(re), 64)
			imf, err2 := strconv.ParseFloat(strings.TrimSpace(im), 64)
			if err1 == nil && err2 == nil {
				return complex(rf, imf)
			}
		}
	}
	return p
}

// parseTypes allocates one input target per type letter.
func parseTypes(s string) ([]any, error) {
	var targets []any
	for i, t := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "i":
			targets = append(targets, new(int))
		case "f", "d":
			targets = append(targets, new(float64))
		case "c":
			targets = append(targets, new(complex128))
		case "l":
			targets = append(targets, new(bool))
		case "a":
			targets = append(targets, new(string))
		default:
			return nil, fmt.Errorf("type %d: unknown type %q (want i, f, c, l or a)", i+1, t)
		}
	}
	return targets, nil
}
