// Package awsdata loads the command index that drives completion and the
// documentation panel. The index is a JSON tree of services, subcommands,
// and options. A trimmed-down index ships embedded in the binary; a full one
// generated from the AWS CLI model can be dropped into the shell's data
// directory and takes precedence.
package awsdata

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//go:embed data/index.json
var embedded embed.FS

// Command is one node in the command tree. Leaf commands carry options;
// service-level commands carry subcommands.
type Command struct {
	Description string              `json:"description,omitempty"`
	Subcommands map[string]*Command `json:"subcommands,omitempty"`
	Options     map[string]string   `json:"options,omitempty"`
}

// Index is the root of the command tree plus the options every command
// accepts (--region, --profile, ...).
type Index struct {
	Commands      map[string]*Command `json:"commands"`
	GlobalOptions map[string]string   `json:"global_options"`
}

// Load reads an index from path.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return parse(data)
}

// LoadOrDefault reads the index at path, falling back to the embedded index
// when path is empty or missing.
func LoadOrDefault(path string) (*Index, error) {
	if path != "" {
		idx, err := Load(path)
		if err == nil {
			return idx, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return Default()
}

// Default returns the embedded index.
func Default() (*Index, error) {
	data, err := embedded.ReadFile("data/index.json")
	if err != nil {
		return nil, fmt.Errorf("embedded index: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	if idx.Commands == nil {
		idx.Commands = map[string]*Command{}
	}
	if idx.GlobalOptions == nil {
		idx.GlobalOptions = map[string]string{}
	}
	return &idx, nil
}
