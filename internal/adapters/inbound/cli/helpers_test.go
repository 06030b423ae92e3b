package cli_test

import (
	"bytes"
	"testing"

	"github.com/a11yaudit/a11yaudit/internal/adapters/inbound/cli"
)

const fixtureDir = "../../../../testdata/project"

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
