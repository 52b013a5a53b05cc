package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	errs "github.com/matzehuels/matrixrain/pkg/errors"
)

// newTestCLI returns a CLI whose streams are temp files and buffers, with
// no config file in reach.
func newTestCLI(t *testing.T, stdin string) (*CLI, *os.File, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	in := filepath.Join(dir, "stdin")
	if err := os.WriteFile(in, []byte(stdin), 0o644); err != nil {
		t.Fatal(err)
	}
	inFile, err := os.Open(in)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { inFile.Close() })

	outFile, err := os.Create(filepath.Join(dir, "stdout"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { outFile.Close() })

	var stderr bytes.Buffer
	c := New(&stderr, LogInfo)
	c.Stdin = inFile
	c.Stdout = outFile
	return c, outFile, &stderr
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return root.ExecuteContext(ctx)
}

func TestRootCommandSubcommands(t *testing.T) {
	c, _, _ := newTestCLI(t, "")
	root := c.RootCommand()

	for _, name := range []string{"run", "pipe", "completion"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{name})
			if err != nil || cmd.Name() != name {
				t.Errorf("subcommand %q not registered", name)
			}
		})
	}

	for _, flag := range []string{"verbose", "config", "width", "height", "seed", "log-file"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	c, _, _ := newTestCLI(t, "")
	path := writeConfig(t, "width = 40\nheight = 12\nseed = 9\n")

	if err := execute(t, c, "--config", path, "--width", "20", "completion", "bash"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if c.config.Width != 20 {
		t.Errorf("width = %d, want flag value 20", c.config.Width)
	}
	if c.config.Height != 12 || c.config.Seed != 9 {
		t.Errorf("config values lost: %+v", c.config)
	}
}

func TestPipeCommand(t *testing.T) {
	c, out, stderr := newTestCLI(t, "hi\nthere\n")
	path := writeConfig(t, "width = 10\nheight = 5\ninterval = \"1ms\"\nseed = 1\n")

	if err := execute(t, c, "--config", path, "pipe"); err != nil {
		t.Fatalf("pipe: %v (stderr %q)", err, stderr.String())
	}

	data, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"\x1b[2J", "\x1b[?25l", "i", "r", "\x1b[?25h"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.Contains(stderr.String(), "2 lines rained") {
		t.Errorf("summary missing from stderr: %q", stderr.String())
	}
}

func TestRunCommandScriptFailure(t *testing.T) {
	c, _, stderr := newTestCLI(t, "")
	config := writeConfig(t, "width = 10\nheight = 5\ninterval = \"1ms\"\n")
	script := filepath.Join(t.TempDir(), "fail.sh")
	if err := os.WriteFile(script, []byte("echo nope\nexit 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := execute(t, c, "--config", config, "run", script)
	if !errs.Is(err, errs.ErrCodeProcessFailed) {
		t.Fatalf("run error = %v, want PROCESS_FAILED", err)
	}
	if !IsReported(err) {
		t.Error("error was not reported to the user")
	}
	if code := errs.ExitCode(err); code != 3 {
		t.Errorf("ExitCode = %d, want 3", code)
	}
	if !strings.Contains(stderr.String(), "exit code") {
		t.Errorf("stderr = %q, want exit code detail", stderr.String())
	}
}

func TestRunCommandMissingScript(t *testing.T) {
	c, out, _ := newTestCLI(t, "")

	err := execute(t, c, "run", filepath.Join(t.TempDir(), "missing.sh"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Fatalf("run error = %v, want FILE_NOT_FOUND", err)
	}
	if info, _ := out.Stat(); info.Size() != 0 {
		t.Error("screen was taken over for a script that does not exist")
	}
}

func TestRunCommandNoScript(t *testing.T) {
	c, out, stderr := newTestCLI(t, "")
	config := writeConfig(t, "pause_on_error = true\n")

	err := execute(t, c, "--config", config, "run")
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Fatalf("run error = %v, want INVALID_INPUT", err)
	}
	if !IsReported(err) {
		t.Error("missing script was not reported through the error path")
	}
	if !strings.Contains(stderr.String(), "no script path given") {
		t.Errorf("stderr = %q, want the missing-script message", stderr.String())
	}
	if info, _ := out.Stat(); info.Size() != 0 {
		t.Error("screen was taken over without a script")
	}
}

func TestRunCommandPassesArgs(t *testing.T) {
	c, _, _ := newTestCLI(t, "")
	cmd, args, err := c.RootCommand().Find([]string{"run", "job.sh", "-x", "--fast"})
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("script flags were parsed as ours: %v", err)
	}
	if got := cmd.Flags().Args(); strings.Join(got, " ") != "job.sh -x --fast" {
		t.Errorf("args = %q", got)
	}
}

func TestLogFileReceivesHookLogs(t *testing.T) {
	c, _, _ := newTestCLI(t, "a\n")
	logFile := filepath.Join(t.TempDir(), "rain.log")
	config := writeConfig(t, "width = 10\nheight = 5\ninterval = \"1ms\"\n")

	if err := execute(t, c, "-v", "--config", config, "--log-file", logFile, "pipe"); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "line placed") {
		t.Errorf("log file = %q, want engine debug logs", data)
	}
}
