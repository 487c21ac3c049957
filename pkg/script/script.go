// Package script runs YAML-described scenarios against registries and
// records which listener received what.
package script

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/redist/pkg/component"
	"github.com/arthur-debert/redist/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Step operations
const (
	OpSubscribe   = "subscribe"
	OpUnsubscribe = "unsubscribe"
	OpEmit        = "emit"
	OpConnect     = "connect"
	OpSetState    = "set_state"
)

// Document is a parsed scenario
type Document struct {
	Registries []RegistrySpec  `yaml:"registries"`
	Components []ComponentSpec `yaml:"components"`
	Steps      []Step          `yaml:"steps"`
}

// RegistrySpec declares a registry handle. Handles with the same key and
// global scope share one store.
type RegistrySpec struct {
	Name  string `yaml:"name"`
	Key   string `yaml:"key"`
	Scope string `yaml:"scope"`
}

// ComponentSpec declares a component and its initial state
type ComponentSpec struct {
	Name  string          `yaml:"name"`
	State component.State `yaml:"state"`
}

// Step is one operation. Which fields apply depends on Op.
type Step struct {
	Op        string          `yaml:"op"`
	Registry  string          `yaml:"registry"`
	Action    string          `yaml:"action"`
	Listener  string          `yaml:"listener"`
	Panic     bool            `yaml:"panic"`
	Args      []any           `yaml:"args"`
	Component string          `yaml:"component"`
	State     component.State `yaml:"state"`
}

// Parse decodes and validates a scenario
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.ErrScriptParse, "failed to decode script")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseFile reads and parses the scenario at path
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptParse, "failed to read script %s", path).
			WithDetail("path", path)
	}
	return Parse(bytes.NewReader(data))
}

// Validate checks that every step names declared registries and components
// and carries the fields its op needs.
func (d *Document) Validate() error {
	registries := make(map[string]bool, len(d.Registries))
	for i, spec := range d.Registries {
		if spec.Name == "" {
			return errors.Newf(errors.ErrScriptInvalid, "registry %d has no name", i)
		}
		if registries[spec.Name] {
			return errors.Newf(errors.ErrScriptInvalid, "registry %q declared twice", spec.Name)
		}
		if spec.Scope != "" && spec.Scope != "global" && spec.Scope != "local" {
			return errors.Newf(errors.ErrScriptInvalid, "registry %q: unknown scope %q", spec.Name, spec.Scope)
		}
		registries[spec.Name] = true
	}

	components := make(map[string]bool, len(d.Components))
	for i, spec := range d.Components {
		if spec.Name == "" {
			return errors.Newf(errors.ErrScriptInvalid, "component %d has no name", i)
		}
		if components[spec.Name] {
			return errors.Newf(errors.ErrScriptInvalid, "component %q declared twice", spec.Name)
		}
		components[spec.Name] = true
	}

	for i, step := range d.Steps {
		if err := step.validate(registries, components); err != nil {
			return errors.Wrapf(err, errors.ErrScriptInvalid, "step %d (%s)", i, step.Op).
				WithDetail("step", i)
		}
	}
	return nil
}

func (s Step) validate(registries, components map[string]bool) error {
	needRegistry := func() error {
		if !registries[s.Registry] {
			return fmt.Errorf("unknown registry %q", s.Registry)
		}
		return nil
	}
	needComponent := func() error {
		if !components[s.Component] {
			return fmt.Errorf("unknown component %q", s.Component)
		}
		return nil
	}

	switch s.Op {
	case OpSubscribe, OpUnsubscribe:
		if s.Listener == "" {
			return fmt.Errorf("listener name required")
		}
		return needRegistry()
	case OpEmit:
		return needRegistry()
	case OpConnect:
		if err := needRegistry(); err != nil {
			return err
		}
		return needComponent()
	case OpSetState:
		return needComponent()
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
}
