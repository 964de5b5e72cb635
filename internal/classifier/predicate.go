package classifier

import (
	"fmt"
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Predicate reports whether a normalized keyword belongs to a rule category.
// Implementations search anywhere in the keyword; none of them anchor.
type Predicate interface {
	Match(keyword string) bool
}

// Pattern is an RE2 regular expression searched in the keyword.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles expr.
func NewPattern(expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return &Pattern{re: re}, nil
}

// MustPattern is like NewPattern but panics on a bad expression.
// Only used for the built-in registry.
func MustPattern(expr string) *Pattern {
	p, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Match implements Predicate.
func (p *Pattern) Match(keyword string) bool {
	return p.re.MatchString(keyword)
}

func (p *Pattern) String() string {
	return p.re.String()
}

// AnyToken matches when at least one dictionary token occurs in the keyword.
// Matching is case-sensitive: tokens are compared against the lower-cased
// keyword as written, so an upper-case token never matches.
type AnyToken struct {
	tokens  []string
	matcher *ahocorasick.Matcher
}

// NewAnyToken builds the Aho-Corasick automaton over tokens. Empty tokens are ignored.
func NewAnyToken(tokens ...string) *AnyToken {
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			kept = append(kept, t)
		}
	}

	a := &AnyToken{tokens: kept}
	if len(kept) > 0 {
		a.matcher = ahocorasick.NewStringMatcher(kept)
	}
	return a
}

// Match implements Predicate. The automaton is shared across goroutines,
// hence the thread-safe variant.
func (a *AnyToken) Match(keyword string) bool {
	if a.matcher == nil || keyword == "" {
		return false
	}
	return len(a.matcher.MatchThreadSafe([]byte(keyword))) > 0
}

func (a *AnyToken) String() string {
	return strings.Join(a.tokens, "|")
}

// TrailingExclusion matches when a token occurs and no excluded token starts
// at or after the last token occurrence. "영어 장난감" matches tokens
// {장난감} except {영어}; "장난감 영어" does not.
type TrailingExclusion struct {
	Tokens []string
	Except []string
}

// Match implements Predicate.
func (t *TrailingExclusion) Match(keyword string) bool {
	last := lastIndexAny(keyword, t.Tokens)
	if last < 0 {
		return false
	}
	return lastIndexAny(keyword, t.Except) < last
}

func (t *TrailingExclusion) String() string {
	return strings.Join(t.Tokens, "|") + " !" + strings.Join(t.Except, "|")
}

// lastIndexAny returns the greatest byte offset at which any token starts, or -1.
func lastIndexAny(s string, tokens []string) int {
	last := -1
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if i := strings.LastIndex(s, tok); i > last {
			last = i
		}
	}
	return last
}
