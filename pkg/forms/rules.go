package forms

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// Rule kinds understood by Schema.Check. Required and option checks are
// derived from Field.Required and Field.Options; the rest are attached
// explicitly.
const (
	RuleRequired  = "required"
	RuleEmail     = "email"
	RulePhone     = "phone"
	RuleOption    = "option"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
)

// Rule is a single validation constraint. Length limits keep their threshold
// in Params["value"]; pattern rules keep the expression in Params["pattern"].
type Rule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// MinLength returns a minimum length rule.
func MinLength(n int) Rule {
	return Rule{Kind: RuleMinLength, Params: map[string]string{"value": strconv.Itoa(n)}}
}

// MaxLength returns a maximum length rule.
func MaxLength(n int) Rule {
	return Rule{Kind: RuleMaxLength, Params: map[string]string{"value": strconv.Itoa(n)}}
}

// Pattern returns a rule requiring values to match expr.
func Pattern(expr string) Rule {
	return Rule{Kind: RulePattern, Params: map[string]string{"pattern": expr}}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether value looks like an address: something, an @,
// something, a dot, something, and no whitespace anywhere.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// PhoneDigits strips everything but ASCII digits.
func PhoneDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether value reduces to exactly ten digits.
func ValidPhone(value string) bool {
	return len(PhoneDigits(value)) == 10
}

// FormatPhone renders a ten digit number as (305) 555-1234. Other inputs are
// returned unchanged.
func FormatPhone(value string) string {
	digits := PhoneDigits(value)
	if len(digits) != 10 {
		return value
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

var (
	patternCacheMu sync.RWMutex
	patternCache   = map[string]*regexp.Regexp{}
)

func compilePattern(expr string) (*regexp.Regexp, error) {
	patternCacheMu.RLock()
	re, ok := patternCache[expr]
	patternCacheMu.RUnlock()
	if ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	patternCacheMu.Lock()
	patternCache[expr] = re
	patternCacheMu.Unlock()
	return re, nil
}

// check applies rule to a non-empty value and reports whether it passed.
func (r Rule) check(field Field, value string) bool {
	switch r.Kind {
	case RuleEmail:
		return ValidEmail(value)
	case RulePhone:
		return ValidPhone(value)
	case RuleOption:
		return slices.ContainsFunc(field.Options, func(o Option) bool {
			return o.Value == value && !o.Disabled
		})
	case RuleMinLength:
		n, err := strconv.Atoi(r.Params["value"])
		return err != nil || utf8.RuneCountInString(value) >= n
	case RuleMaxLength:
		n, err := strconv.Atoi(r.Params["value"])
		return err != nil || utf8.RuneCountInString(value) <= n
	case RulePattern:
		re, err := compilePattern(r.Params["pattern"])
		return err != nil || re.MatchString(value)
	default:
		return true
	}
}
