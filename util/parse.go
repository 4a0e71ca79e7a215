package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ParseError reports a kernel or file token that could not be read as the
// expected number.
type ParseError struct {
	Source string
	Token  string
	Index  int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Token == "" && e.Err == nil {
		return fmt.Sprintf("%s: missing token %d", e.Source, e.Index)
	}
	return fmt.Sprintf("%s: token %d %q is not a number: %v", e.Source, e.Index, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SplitTokens splits kernel output on whitespace. Trailing newlines and
// repeated separators never produce empty tokens.
func SplitTokens(output string) []string {
	return strings.Fields(output)
}

// TokenAt returns the i-th whitespace separated token of output.
func TokenAt(source, output string, i int) (string, error) {
	tokens := SplitTokens(output)
	if i < 0 || i >= len(tokens) {
		return "", &ParseError{Source: source, Index: i}
	}
	return tokens[i], nil
}

// ParseFloatToken parses a single numeric token. Only finite values are
// accepted; symbolic infinities and NaN are reported as parse errors so that
// callers decide how to treat them.
func ParseFloatToken(source, token string, index int) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0, &ParseError{Source: source, Token: token, Index: index, Err: err}
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, &ParseError{Source: source, Token: token, Index: index,
			Err: fmt.Errorf("non-finite value")}
	}
	return value, nil
}

// ParseFloatPair reads the first two tokens of a kernel's output as floats.
func ParseFloatPair(source, output string) (float64, float64, error) {
	tokens := SplitTokens(output)
	values := make([]float64, 2)
	for i := range values {
		if i >= len(tokens) {
			return 0, 0, &ParseError{Source: source, Index: i}
		}
		v, err := ParseFloatToken(source, tokens[i], i)
		if err != nil {
			return 0, 0, err
		}
		values[i] = v
	}
	if len(tokens) > 2 {
		log.WithFields(log.Fields{"source": source, "tokens": len(tokens)}).
			Debug("Ignoring trailing kernel output tokens.")
	}
	return values[0], values[1], nil
}

// FormatFloat renders a value the way the result logs have always been
// written: shortest representation, integral values keep a ".0" suffix and
// infinities are written as "inf".
func FormatFloat(value float64) string {
	switch {
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	case math.IsNaN(value):
		return "nan"
	}
	s := strconv.FormatFloat(value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// FormatPercent renders a support percentage for the mining oracle, e.g. "5.0%".
func FormatPercent(value float64) string {
	return FormatFloat(value) + "%"
}
