// Package completer turns a partially typed line into completion candidates
// by walking the command index. It also tracks what the line means so far:
// the recognized command path and the last recognized option flag, which the
// documentation panel uses to pick what to display.
package completer

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"awsshell/internal/awsdata"
)

// Completer matches partial input against the command index. It is stateful:
// each Complete call re-parses the line and updates CurrentCommand and
// LastOption. Not safe for concurrent use; the shell is single-threaded.
type Completer struct {
	index      *awsdata.Index
	matchFuzzy bool

	currentCommand string
	lastOption     string
}

// New creates a completer over the given index.
func New(index *awsdata.Index) *Completer {
	return &Completer{index: index}
}

// SetMatchFuzzy switches between prefix and fuzzy candidate matching. Takes
// effect on the next Complete call, no rebuild required.
func (c *Completer) SetMatchFuzzy(v bool) { c.matchFuzzy = v }

// MatchFuzzy reports whether fuzzy matching is active.
func (c *Completer) MatchFuzzy() bool { return c.matchFuzzy }

// CurrentCommand returns the recognized command path of the last parsed
// line, e.g. "ec2 describe-instances".
func (c *Completer) CurrentCommand() string { return c.currentCommand }

// LastOption returns the last recognized option flag of the last parsed
// line, or "" when none was seen. A partial option token counts once it
// unambiguously resolves, so "--filt" reports "--filters".
func (c *Completer) LastOption() string { return c.lastOption }

// Complete parses text and returns candidates for its final token. A line
// ending in whitespace completes a fresh token.
func (c *Completer) Complete(text string) []string {
	complete, partial := tokenize(text)

	level := c.index.Commands
	var cmdPath []string
	var leaf *awsdata.Command
	lastOption := ""

	for _, tok := range complete {
		if strings.HasPrefix(tok, "-") {
			if c.knownOption(leaf, tok) {
				lastOption = tok
			}
			continue
		}
		if level != nil {
			if node, ok := level[tok]; ok {
				cmdPath = append(cmdPath, tok)
				leaf = node
				level = node.Subcommands
				continue
			}
			// Unknown token: stop descending, everything after is an
			// argument to the wrapped CLI.
			level = nil
		}
	}

	var candidates []string
	switch {
	case strings.HasPrefix(partial, "-"):
		candidates = c.match(partial, c.optionNames(leaf))
		if len(candidates) > 0 {
			lastOption = candidates[0]
		}
	case level != nil:
		candidates = c.match(partial, names(level))
		if partial != "" {
			// While a command token is being typed there is no option
			// context to document.
			lastOption = ""
		}
	}

	c.currentCommand = strings.Join(cmdPath, " ")
	c.lastOption = lastOption
	return candidates
}

// Reset clears the parsed state, as if no line had been typed.
func (c *Completer) Reset() {
	c.currentCommand = ""
	c.lastOption = ""
}

func (c *Completer) knownOption(leaf *awsdata.Command, tok string) bool {
	if leaf != nil {
		if _, ok := leaf.Options[tok]; ok {
			return true
		}
	}
	_, ok := c.index.GlobalOptions[tok]
	return ok
}

func (c *Completer) optionNames(leaf *awsdata.Command) []string {
	seen := map[string]bool{}
	var out []string
	if leaf != nil {
		for name := range leaf.Options {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	for name := range c.index.GlobalOptions {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (c *Completer) match(pattern string, items []string) []string {
	if pattern == "" {
		return items
	}
	if c.matchFuzzy {
		matches := fuzzy.Find(pattern, items)
		out := make([]string, len(matches))
		for i, m := range matches {
			out[i] = m.Str
		}
		return out
	}
	var out []string
	for _, item := range items {
		if strings.HasPrefix(item, pattern) {
			out = append(out, item)
		}
	}
	return out
}

func names(level map[string]*awsdata.Command) []string {
	out := make([]string, 0, len(level))
	for name := range level {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func tokenize(text string) (complete []string, partial string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, ""
	}
	if strings.HasSuffix(text, " ") || strings.HasSuffix(text, "\t") {
		return fields, ""
	}
	return fields[:len(fields)-1], fields[len(fields)-1]
}
