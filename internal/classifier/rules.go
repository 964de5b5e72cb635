package classifier

import (
	"errors"
	"fmt"

	"keywordmatrix/internal/config"
	"keywordmatrix/internal/models"
)

// Rule kinds accepted in rule files
const (
	KindPattern           = "pattern"
	KindTokens            = "tokens"
	KindTrailingExclusion = "trailing_exclusion"
)

var (
	ErrEmptyCategory = errors.New("rule category is required")
	ErrUnknownKind   = errors.New("unknown rule kind")
	ErrUnknownBucket = errors.New("unknown bucket")
)

// Rule pairs a category label with the predicate that selects it.
type Rule struct {
	Category  string
	Predicate Predicate
}

// RuleSet is an ordered list of rules. Order decides which category wins
// when several match.
type RuleSet []Rule

// LastMatch returns the category of the last rule in order that matches.
// Within one pass every matching rule overwrites the label, so the last
// match is the one that survives.
func (rs RuleSet) LastMatch(keyword string) (string, bool) {
	category, found := "", false
	for _, r := range rs {
		if r.Predicate.Match(keyword) {
			category, found = r.Category, true
		}
	}
	return category, found
}

// Matches returns every matching category in order.
func (rs RuleSet) Matches(keyword string) []string {
	var out []string
	for _, r := range rs {
		if r.Predicate.Match(keyword) {
			out = append(out, r.Category)
		}
	}
	return out
}

// Categories returns the category labels in order.
func (rs RuleSet) Categories() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Category
	}
	return out
}

// BucketMap maps a detail label to its qualitative bucket.
type BucketMap map[string]models.Bucket

// Bucket looks up the bucket of a detail label. Labels that are not in the
// map fall back to BucketUnclassified.
func (m BucketMap) Bucket(detail string) models.Bucket {
	if b, ok := m[detail]; ok && b.Valid() {
		return b
	}
	return models.BucketUnclassified
}

// Registry holds the three ordered rule sets and the bucket map. A Registry
// is never modified after construction and may be shared between goroutines.
type Registry struct {
	Unsuitable RuleSet
	Suitable   RuleSet
	Expandable RuleSet
	Buckets    BucketMap
}

// NewRegistry compiles a rule file. Rule sets left empty in the file keep
// the built-in rules, as does a missing bucket map.
func NewRegistry(cfg *config.RulesConfig) (*Registry, error) {
	def := DefaultRegistry()
	if cfg == nil {
		return def, nil
	}

	reg := &Registry{
		Unsuitable: def.Unsuitable,
		Suitable:   def.Suitable,
		Expandable: def.Expandable,
		Buckets:    def.Buckets,
	}

	var err error
	if len(cfg.Unsuitable) > 0 {
		if reg.Unsuitable, err = compileRuleSet("unsuitable", cfg.Unsuitable); err != nil {
			return nil, err
		}
	}
	if len(cfg.Suitable) > 0 {
		if reg.Suitable, err = compileRuleSet("suitable", cfg.Suitable); err != nil {
			return nil, err
		}
	}
	if len(cfg.Expandable) > 0 {
		if reg.Expandable, err = compileRuleSet("expandable", cfg.Expandable); err != nil {
			return nil, err
		}
	}

	if len(cfg.Buckets) > 0 {
		buckets := make(BucketMap)
		for name, details := range cfg.Buckets {
			b, ok := models.ParseBucket(name)
			if !ok {
				return nil, fmt.Errorf("buckets.%s: %w", name, ErrUnknownBucket)
			}
			for _, d := range details {
				buckets[d] = b
			}
		}
		reg.Buckets = buckets
	}

	return reg, nil
}

func compileRuleSet(set string, rules []config.RuleConfig) (RuleSet, error) {
	out := make(RuleSet, 0, len(rules))
	for i, rc := range rules {
		r, err := compileRule(rc)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", set, i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func compileRule(rc config.RuleConfig) (Rule, error) {
	if rc.Category == "" {
		return Rule{}, ErrEmptyCategory
	}

	kind := rc.Kind
	if kind == "" {
		kind = KindPattern
		if rc.Pattern == "" && len(rc.Tokens) > 0 {
			kind = KindTokens
		}
	}

	switch kind {
	case KindPattern:
		p, err := NewPattern(rc.Pattern)
		if err != nil {
			return Rule{}, err
		}
		return Rule{Category: rc.Category, Predicate: p}, nil
	case KindTokens:
		return Rule{Category: rc.Category, Predicate: NewAnyToken(rc.Tokens...)}, nil
	case KindTrailingExclusion:
		return Rule{
			Category:  rc.Category,
			Predicate: &TrailingExclusion{Tokens: rc.Tokens, Except: rc.Except},
		}, nil
	default:
		return Rule{}, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
}
