// internal/logging/redact.go
package logging

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Mask replaces redacted values in messages.
const Mask = "*****"

// maxKeywordLen is a basic ReDoS guard on user-supplied keyword patterns.
const maxKeywordLen = 200

// nonWord separates a keyword from its value. Letters and digits of any
// script count as word characters, so "passwordé" is not the keyword
// "password".
const nonWord = `[^\p{L}\p{N}_]`

// DefaultSensitivePatterns are used when masking is enabled without an
// explicit keyword list.
func DefaultSensitivePatterns() []string {
	return []string{"password", "token", "apikey", "secret"}
}

// RedactedString creates a Zap field with redacted value and length.
func RedactedString(key, val string) zap.Field {
	return zap.String(key, "[REDACTED:"+strconv.Itoa(len(val))+"]")
}

// RedactingFilter masks the token that follows each sensitive keyword in a
// message: "password: hunter2" becomes "password ***** ". Keywords are
// regular expressions and are applied in order, each to the output of the
// previous one.
type RedactingFilter struct {
	keywords []string
	patterns []*regexp.Regexp
}

// NewRedactingFilter compiles one pattern per keyword, failing fast on the
// first keyword that is not valid regexp syntax.
func NewRedactingFilter(keywords []string, caseInsensitive bool) (*RedactingFilter, error) {
	f := &RedactingFilter{
		keywords: make([]string, 0, len(keywords)),
		patterns: make([]*regexp.Regexp, 0, len(keywords)),
	}
	for _, kw := range keywords {
		if len(kw) > maxKeywordLen {
			return nil, fmt.Errorf("%w: keyword too long (max %d chars): %q", ErrInvalidPattern, maxKeywordLen, kw)
		}
		expr := `(` + kw + nonWord + `+[^\s+]+)`
		if caseInsensitive {
			expr = `(?i)` + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, kw, err)
		}
		f.keywords = append(f.keywords, kw)
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Redact returns msg with every keyword's value masked.
func (f *RedactingFilter) Redact(msg string) string {
	for i, re := range f.patterns {
		msg = re.ReplaceAllLiteralString(msg, f.keywords[i]+" "+Mask+" ")
	}
	return msg
}

// Evaluate rewrites rec.Message and always emits.
func (f *RedactingFilter) Evaluate(rec *Record) bool {
	rec.Message = f.Redact(rec.Message)
	return true
}

func (*RedactingFilter) filter() {}

// maskLiterals replaces every exact occurrence of each value with Mask.
// Empty values are skipped.
func maskLiterals(msg string, values []string) string {
	for _, v := range values {
		if v == "" {
			continue
		}
		msg = strings.ReplaceAll(msg, v, Mask)
	}
	return msg
}
