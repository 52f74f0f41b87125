package cmdsubst

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sniperrifle2004/fish-shell/expand/sentinel"
)

type fakeExecutor struct {
	lines []string
	err   error
}

func (f fakeExecutor) Exec(ctx context.Context, source string, applyExitStatus bool) ([]string, error) {
	return f.lines, f.err
}

func TestExpandNoParenPassesThrough(t *testing.T) {
	t.Parallel()

	out, err := Expand(context.Background(), "plain", false, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"plain"}, out)
}

func TestExpandSingleLine(t *testing.T) {
	t.Parallel()

	exec := fakeExecutor{lines: []string{"out"}}
	out, err := Expand(context.Background(), "pre(cmd)post", false, false, exec, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "pre"+string(sentinel.InternalSep)+"out"+string(sentinel.InternalSep)+"post", out[0])
}

func TestExpandCartesianOverLines(t *testing.T) {
	t.Parallel()

	exec := fakeExecutor{lines: []string{"a", "b"}}
	out, err := Expand(context.Background(), "(cmd)", false, false, exec, nil)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestExpandSkipCmdsubstIsError(t *testing.T) {
	t.Parallel()

	_, err := Expand(context.Background(), "(cmd)", true, false, nil, nil)
	require.Error(t, err)

	var cmdErr *CmdsubstError
	require.ErrorAs(t, err, &cmdErr)
}

func TestExpandUnclosedParenIsSyntaxError(t *testing.T) {
	t.Parallel()

	exec := fakeExecutor{lines: []string{"x"}}
	_, err := Expand(context.Background(), "pre(cmd", false, false, exec, nil)
	require.Error(t, err)

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestExpandEscapesMetacharactersInOutput(t *testing.T) {
	t.Parallel()

	exec := fakeExecutor{lines: []string{"a$b"}}
	out, err := Expand(context.Background(), "(cmd)", false, false, exec, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Contains(t, out[0], `a\$b`)
}
