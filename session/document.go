// Package session persists an Ellex REPL session to disk: variables,
// functions (by source text), history, config, and turtle state,
// round-tripped through YAML with an integrity checksum (spec.md §6
// "Session Persistence"). It is new relative to the teacher — gosh has no
// persistence layer — built in the teacher's own atomic-write idiom from
// cmd/shfmt/main.go's maybeio.WriteFile call (see DESIGN.md).
package session

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ellex-lang/ellex/config"
)

// SchemaVersion is bumped whenever Document's on-disk shape changes.
// Documents missing a turtle section (schema version 1) restore with a
// fresh turtle rather than failing (spec.md §6 "Session Persistence").
const SchemaVersion = 2

// TurtleDoc is the persisted subset of turtle.Turtle: pose and pen state.
// The command log itself is not persisted — it is a derived render
// artifact, not session state.
type TurtleDoc struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Heading  float64 `yaml:"heading"`
	PenDown  bool    `yaml:"pen_down"`
	Color    string  `yaml:"color"`
	PenWidth float64 `yaml:"pen_width"`
}

// VarDoc is a persisted session variable: a kind tag plus the payload for
// that kind, so a restored variable round-trips through eval.Value.Kind()
// instead of collapsing to a string (spec.md §6 "variables: name -> tagged
// value").
type VarDoc struct {
	Kind string   `yaml:"kind"`           // "string", "number", or "list"
	Str  string   `yaml:"str,omitempty"`  // valid when Kind == "string"
	Num  float64  `yaml:"num,omitempty"`  // valid when Kind == "number"
	List []VarDoc `yaml:"list,omitempty"` // valid when Kind == "list"
}

// Document is the full persisted shape of a session (spec.md §6).
type Document struct {
	SchemaVersion  int               `yaml:"schema_version"`
	ID             string            `yaml:"id"`
	Variables      map[string]VarDoc `yaml:"variables"`
	FunctionSource map[string]string `yaml:"function_source"`
	History        []string          `yaml:"history"`
	Config         config.Config     `yaml:"config"`
	ExecutionCount int64             `yaml:"execution_count"`
	Turtle         *TurtleDoc        `yaml:"turtle,omitempty"`
	Checksum       string            `yaml:"checksum"`
}

// New returns a Document stamped with a fresh session ID.
func New(cfg config.Config) *Document {
	return &Document{
		SchemaVersion:  SchemaVersion,
		ID:             uuid.NewString(),
		Variables:      map[string]VarDoc{},
		FunctionSource: map[string]string{},
		Config:         cfg,
	}
}

// checksum computes the integrity digest over everything but the Checksum
// field itself.
func (d *Document) checksum() (string, error) {
	cp := *d
	cp.Checksum = ""
	b, err := yaml.Marshal(&cp)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b)), nil
}

// Save writes d to path atomically (rename-on-write, per the teacher's
// cmd/shfmt maybeio.WriteFile idiom), stamping a fresh checksum first.
func (d *Document) Save(path string) error {
	sum, err := d.checksum()
	if err != nil {
		return err
	}
	d.Checksum = sum
	b, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, b, 0o644)
}

// Load reads and validates a Document from path. A checksum mismatch
// returns an error rather than silently loading corrupted state.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	want := d.Checksum
	got, err := d.checksum()
	if err != nil {
		return nil, err
	}
	if want != got {
		return nil, fmt.Errorf("session: checksum mismatch loading %s (file may be corrupted)", path)
	}
	if d.Variables == nil {
		d.Variables = map[string]VarDoc{}
	}
	if d.FunctionSource == nil {
		d.FunctionSource = map[string]string{}
	}
	return &d, nil
}
