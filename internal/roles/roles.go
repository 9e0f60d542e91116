// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roles tags resumes with a job role inferred from their filename.
//
// Rules are checked in order and the first rule whose keyword appears
// (case-insensitively) in the filename wins, so broader keywords listed early
// shadow narrower ones listed later.
package roles

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resume-screener/pkg/types"
)

// Rule maps a filename keyword to a role label.
type Rule struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Role    string `json:"role" yaml:"role"`
}

// File is the on-disk representation of a rule set.
type File struct {
	Rules []Rule `yaml:"rules"`
}

// Classifier assigns role labels from an ordered rule list.
type Classifier struct {
	rules []Rule
}

// defaultRules is the built-in rule table.
var defaultRules = []Rule{
	{Keyword: "developer", Role: "Developer"},
	{Keyword: "full stack", Role: "Full Stack Developer"},
	{Keyword: "frontend", Role: "Frontend Developer"},
	{Keyword: "backend", Role: "Backend Developer"},
	{Keyword: "qa", Role: "QA Engineer"},
	{Keyword: "ux", Role: "UX Designer"},
	{Keyword: "data analyst", Role: "Data Analyst"},
	{Keyword: "cybersecurity", Role: "Cybersecurity Analyst"},
	{Keyword: "cloud", Role: "Cloud Engineer"},
	{Keyword: "business analyst", Role: "Business Analyst"},
	{Keyword: "content writer", Role: "Content Writer"},
	{Keyword: "marketing", Role: "Digital Marketing Specialist"},
	{Keyword: "technical writer", Role: "Content Writer"},
}

// Default returns a classifier with the built-in rules.
func Default() *Classifier {
	return New(defaultRules)
}

// New returns a classifier over a copy of rules. Keywords are lowercased;
// rules with an empty keyword or role are dropped.
func New(rules []Rule) *Classifier {
	c := &Classifier{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		role := strings.TrimSpace(r.Role)
		if kw == "" || role == "" {
			continue
		}
		c.rules = append(c.rules, Rule{Keyword: kw, Role: role})
	}
	return c
}

// Load reads a YAML rule file. An empty path returns the default classifier.
func Load(path string) (*Classifier, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roles file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing roles file %s: %w", path, err)
	}
	c := New(f.Rules)
	if len(c.rules) == 0 {
		return nil, fmt.Errorf("roles file %s defines no rules", path)
	}
	return c, nil
}

// Classify returns the role for a document identifier, or types.DefaultRole.
func (c *Classifier) Classify(id string) string {
	name := strings.ToLower(id)
	for _, r := range c.rules {
		if strings.Contains(name, r.Keyword) {
			return r.Role
		}
	}
	return types.DefaultRole
}

// Rules returns a copy of the rule list in match order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Labels returns the distinct role labels in rule order.
func (c *Classifier) Labels() []string {
	seen := make(map[string]bool, len(c.rules))
	var labels []string
	for _, r := range c.rules {
		if !seen[r.Role] {
			seen[r.Role] = true
			labels = append(labels, r.Role)
		}
	}
	return labels
}
