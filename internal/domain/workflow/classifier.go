package workflow

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const ComplaintTypeOther = "Other"

// ClassifierRule assigns Label to any text containing one of Keywords.
type ClassifierRule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// ClassifierConfig models the optional rules file.
type ClassifierConfig struct {
	Fallback string           `yaml:"fallback,omitempty"`
	Rules    []ClassifierRule `yaml:"rules"`
	// Order lists the labels for display. Rule order decides matching.
	Order []string `yaml:"order,omitempty"`
}

// Classifier buckets complaint free text by keyword. It is approximate:
// the first rule with a matching substring wins.
type Classifier struct {
	rules    []ClassifierRule
	fallback string
	order    []string
}

func DefaultClassifier() *Classifier {
	return &Classifier{
		rules: []ClassifierRule{
			{Label: "Shipping", Keywords: []string{"delivery", "shipping", "tracking", "late"}},
			{Label: "Product", Keywords: []string{"item", "product", "size", "color", "fake"}},
		},
		fallback: ComplaintTypeOther,
		order:    []string{"Product", "Shipping", ComplaintTypeOther},
	}
}

// LoadClassifier reads rules from a YAML file. An empty path returns the
// default rules.
func LoadClassifier(path string) (*Classifier, error) {
	if path == "" {
		return DefaultClassifier(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read classifier rules: %w", err)
	}
	return ParseClassifier(data)
}

func ParseClassifier(data []byte) (*Classifier, error) {
	var cfg ClassifierConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse classifier rules: %w", err)
	}
	if len(cfg.Rules) == 0 {
		return nil, fmt.Errorf("classifier rules: at least one rule is required")
	}

	c := &Classifier{fallback: cfg.Fallback}
	if c.fallback == "" {
		c.fallback = ComplaintTypeOther
	}
	for i, rule := range cfg.Rules {
		label := strings.TrimSpace(rule.Label)
		if label == "" {
			return nil, fmt.Errorf("classifier rule %d: label is required", i)
		}
		keywords := make([]string, 0, len(rule.Keywords))
		for _, k := range rule.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keywords = append(keywords, k)
			}
		}
		c.rules = append(c.rules, ClassifierRule{Label: label, Keywords: keywords})
	}

	known := make(map[string]bool, len(c.rules)+1)
	for _, l := range c.ruleLabels() {
		known[l] = true
	}
	seen := make(map[string]bool, len(cfg.Order))
	for _, l := range cfg.Order {
		if !known[l] || seen[l] {
			return nil, fmt.Errorf("classifier order: unknown or repeated label %q", l)
		}
		seen[l] = true
	}
	if len(cfg.Order) > 0 && len(cfg.Order) != len(known) {
		return nil, fmt.Errorf("classifier order: every label must appear once")
	}
	c.order = cfg.Order
	return c, nil
}

func (c *Classifier) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range c.rules {
		for _, k := range rule.Keywords {
			if strings.Contains(lower, k) {
				return rule.Label
			}
		}
	}
	return c.fallback
}

// Labels returns every label in display order. Without an explicit order
// that is rule order followed by the fallback.
func (c *Classifier) Labels() []string {
	if len(c.order) > 0 {
		return append([]string(nil), c.order...)
	}
	return c.ruleLabels()
}

func (c *Classifier) ruleLabels() []string {
	out := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		out = append(out, r.Label)
	}
	return append(out, c.fallback)
}
