package dialogue

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Program is a set of named dialogue nodes.
type Program struct {
	Nodes map[string]*Node
}

type Node struct {
	Name  string
	Steps []Step
}

// Step is one instruction of a node. Exactly one action field is set; When,
// if present, is a condition evaluated right before the step runs.
type Step struct {
	When    string       `yaml:"when"`
	Speaker string       `yaml:"speaker"`
	Line    string       `yaml:"line"`
	Command string       `yaml:"command"`
	Set     *Assignment  `yaml:"set"`
	Jump    string       `yaml:"jump"`
	Options []OptionSpec `yaml:"options"`
	Stop    bool         `yaml:"stop"`
}

type Assignment struct {
	Var   string `yaml:"var"`
	Value string `yaml:"value"`
}

type OptionSpec struct {
	Text string `yaml:"text"`
	Jump string `yaml:"jump"`
	When string `yaml:"when"`
}

type programFile struct {
	Nodes map[string][]Step `yaml:"nodes"`
}

// ParseProgram merges one or more YAML sources into a program and validates
// step shapes and jump targets.
func ParseProgram(sources ...[]byte) (*Program, error) {
	p := &Program{Nodes: make(map[string]*Node)}
	for i, src := range sources {
		var f programFile
		if err := yaml.Unmarshal(src, &f); err != nil {
			return nil, fmt.Errorf("dialogue: parse source %d: %w", i, err)
		}
		for name, steps := range f.Nodes {
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, fmt.Errorf("dialogue: source %d: empty node name", i)
			}
			if _, dup := p.Nodes[name]; dup {
				return nil, fmt.Errorf("dialogue: node %q defined twice", name)
			}
			p.Nodes[name] = &Node{Name: name, Steps: steps}
		}
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NodeNames returns the node names in sorted order.
func (p *Program) NodeNames() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.Nodes))
	for name := range p.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Program) HasNode(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.Nodes[name]
	return ok
}

func (p *Program) validate() error {
	for _, name := range p.NodeNames() {
		node := p.Nodes[name]
		for i, step := range node.Steps {
			if n := step.actionCount(); n != 1 {
				return fmt.Errorf("dialogue: node %q step %d: want exactly one action, got %d", name, i, n)
			}
			if step.Set != nil && strings.TrimSpace(step.Set.Var) == "" {
				return fmt.Errorf("dialogue: node %q step %d: set without var", name, i)
			}
			if step.Jump != "" && !p.HasNode(step.Jump) {
				return fmt.Errorf("dialogue: node %q step %d: jump to unknown node %q", name, i, step.Jump)
			}
			for j, opt := range step.Options {
				if opt.Jump == "" || !p.HasNode(opt.Jump) {
					return fmt.Errorf("dialogue: node %q step %d option %d: jump to unknown node %q", name, i, j, opt.Jump)
				}
			}
		}
	}
	return nil
}

func (s Step) actionCount() int {
	n := 0
	if s.Line != "" {
		n++
	}
	if s.Command != "" {
		n++
	}
	if s.Set != nil {
		n++
	}
	if s.Jump != "" {
		n++
	}
	if len(s.Options) > 0 {
		n++
	}
	if s.Stop {
		n++
	}
	return n
}
