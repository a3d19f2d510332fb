package site

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// ErrMissingProfileName is returned when content has no owner name.
var ErrMissingProfileName = errors.New("site: content profile name is required")

type Profile struct {
	Name     string   `yaml:"name"`
	Headline []string `yaml:"headline"`
	Summary  string   `yaml:"summary"`
	Logo     string   `yaml:"logo"`
}

type NavItem struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

type About struct {
	Paragraphs []string `yaml:"paragraphs"`
	Highlights []string `yaml:"highlights"`
}

type Skill struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

// SkillGroup is the skills of one category, in content order.
type SkillGroup struct {
	Category string
	Skills   []Skill
}

type Project struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	GitHubURL    string   `yaml:"github_url"`
	DemoURL      string   `yaml:"demo_url"`
}

type Link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Contact struct {
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
	Social   []Link `yaml:"social"`
}

// Content is everything the portfolio page renders besides the form.
type Content struct {
	Profile  Profile   `yaml:"profile"`
	Nav      []NavItem `yaml:"nav"`
	About    About     `yaml:"about"`
	Skills   []Skill   `yaml:"skills"`
	Projects []Project `yaml:"projects"`
	Contact  Contact   `yaml:"contact"`
}

// ParseContent decodes a YAML content document.
func ParseContent(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("site: parse content: %w", err)
	}
	if c.Profile.Name == "" {
		return nil, ErrMissingProfileName
	}
	return &c, nil
}

// DefaultContent returns the content embedded in the binary.
func DefaultContent() (*Content, error) {
	return ParseContent(defaultContent)
}

// SkillGroups groups skills by category, keeping the order in which each
// category first appears.
func (c *Content) SkillGroups() []SkillGroup {
	var groups []SkillGroup
	index := map[string]int{}
	for _, s := range c.Skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}
