package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	command string
	option  string
}

func (s stubCompleter) CurrentCommand() string { return s.command }
func (s stubCompleter) LastOption() string     { return s.option }

type stubDocs struct {
	descCalls  []string
	paramCalls [][2]string
}

func (s *stubDocs) ExtractDescription(command string) string {
	s.descCalls = append(s.descCalls, command)
	return "description of " + command
}

func (s *stubDocs) ExtractParam(command, option string) string {
	s.paramCalls = append(s.paramCalls, [2]string{command, option})
	return "param doc for " + command + " " + option
}

func TestRefreshHelpDisabled(t *testing.T) {
	docs := &stubDocs{}
	u := NewDocPanelUpdater(stubCompleter{command: "ec2", option: "--filters"}, docs, func() bool { return false })

	for _, buffer := range []string{"", "   ", "ec2 describe-instances --filt"} {
		content, ok := u.Refresh(buffer)
		assert.False(t, ok, "help off must never touch the panel (buffer %q)", buffer)
		assert.Empty(t, content)
	}
	assert.Empty(t, docs.descCalls)
	assert.Empty(t, docs.paramCalls)
}

func TestRefreshEmptyBufferClearsPanel(t *testing.T) {
	docs := &stubDocs{}
	u := NewDocPanelUpdater(stubCompleter{command: "ec2"}, docs, func() bool { return true })

	for _, buffer := range []string{"", "   ", "\t"} {
		content, ok := u.Refresh(buffer)
		assert.True(t, ok)
		assert.Equal(t, "", content)
	}
	assert.Empty(t, docs.descCalls, "empty buffer short-circuits the providers")
}

func TestRefreshOptionDocsWin(t *testing.T) {
	docs := &stubDocs{}
	c := stubCompleter{command: "ec2 describe-instances", option: "--filters"}
	u := NewDocPanelUpdater(c, docs, func() bool { return true })

	content, ok := u.Refresh("ec2 describe-instances --filt")
	require.True(t, ok)
	assert.Equal(t, "param doc for ec2 describe-instances --filters", content,
		"content must be the exact ExtractParam return value")
	assert.Equal(t, [][2]string{{"ec2 describe-instances", "--filters"}}, docs.paramCalls)
	assert.Empty(t, docs.descCalls)
}

func TestRefreshFallsBackToDescription(t *testing.T) {
	docs := &stubDocs{}
	u := NewDocPanelUpdater(stubCompleter{command: "s3 ls"}, docs, func() bool { return true })

	content, ok := u.Refresh("s3 ls")
	require.True(t, ok)
	assert.Equal(t, "description of s3 ls", content)
}

func TestRefreshIsNotShortCircuited(t *testing.T) {
	docs := &stubDocs{}
	u := NewDocPanelUpdater(stubCompleter{command: "s3"}, docs, func() bool { return true })

	first, _ := u.Refresh("s3")
	second, _ := u.Refresh("s3")
	assert.Equal(t, first, second)
	assert.Len(t, docs.descCalls, 2, "unchanged content is still recomputed")
}
