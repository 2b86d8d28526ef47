// Package docs extracts the text shown in the documentation side panel from
// the command index: a command's description, or the help for one of its
// options. Output is lightweight markdown; the panel decides how to render
// it.
package docs

import (
	"fmt"
	"sort"
	"strings"

	"awsshell/internal/awsdata"
)

// Provider serves documentation lookups against a command index.
type Provider struct {
	index *awsdata.Index
}

// New creates a provider over the given index.
func New(index *awsdata.Index) *Provider {
	return &Provider{index: index}
}

// ExtractDescription returns the description of the deepest recognized
// command on the given path, e.g. "ec2 describe-instances". Unknown commands
// yield "".
func (p *Provider) ExtractDescription(command string) string {
	node, path := p.resolve(command)
	if node == nil || node.Description == "" {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", strings.Join(path, " "), node.Description)
	if len(node.Options) > 0 {
		b.WriteString("\n## Options\n\n")
		for _, name := range sortedKeys(node.Options) {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
	}
	return b.String()
}

// ExtractParam returns the help text for one option of the given command.
// Global options resolve for every command. Unknown options yield "".
func (p *Provider) ExtractParam(command, option string) string {
	node, path := p.resolve(command)
	doc := ""
	if node != nil {
		doc = node.Options[option]
	}
	if doc == "" {
		doc = p.index.GlobalOptions[option]
	}
	if doc == "" {
		return ""
	}
	title := option
	if len(path) > 0 {
		title = fmt.Sprintf("%s %s", strings.Join(path, " "), option)
	}
	return fmt.Sprintf("# %s\n\n%s\n", title, doc)
}

// resolve walks the index along the command path and returns the deepest
// node reached plus the tokens that matched.
func (p *Provider) resolve(command string) (*awsdata.Command, []string) {
	level := p.index.Commands
	var node *awsdata.Command
	var path []string
	for _, tok := range strings.Fields(command) {
		if level == nil {
			break
		}
		next, ok := level[tok]
		if !ok {
			break
		}
		node = next
		path = append(path, tok)
		level = next.Subcommands
	}
	return node, path
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
