package cli

import (
	"bytes"
	"context"
	stdErrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
)

// runCLI parses args like the filescope binary does and runs the selected
// command.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var app struct {
		Commands
	}
	var stdout, stderr bytes.Buffer

	parser, err := kong.New(&app,
		kong.Name("filescope"),
		kong.Writers(&stdout, &stderr),
		kong.Bind(&app.Globals),
		kong.Exit(func(int) {}),
	)
	assert.NoError(t, err)

	ctx, err := parser.Parse(args)
	assert.NoError(t, err)

	err = ctx.Run()
	return stdout.String(), stderr.String(), err
}

func exitCode(err error) int {
	var cmdErr *CommandError
	if stdErrors.As(err, &cmdErr) {
		return cmdErr.ExitCode()
	}
	return -1
}

func writeScopes(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCmd(t *testing.T) {
	stdout, stderr, err := runCLI(t, "parse", "(file:a || file[ m ]:b)&&!file:c")
	assert.NoError(t, err)
	assert.Equal(t, "", stderr)
	assert.Equal(t, "(file:a || file[m]:b) && !file:c\n", stdout)
}

func TestParseCmdError(t *testing.T) {
	stdout, stderr, err := runCLI(t, "parse", "file:")
	assert.Equal(t, 1, exitCode(err))
	assert.Equal(t, "", stdout)
	assert.Contains(t, stderr, "Pattern expected at position 6")
	assert.Contains(t, stderr, "   file:\n        ^")
}

func TestParseCmdGerman(t *testing.T) {
	_, stderr, err := runCLI(t, "--lang", "de", "parse", "file:1a")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stderr, "a unerwartet an Position 7")
}

func TestParseCmdTree(t *testing.T) {
	stdout, _, err := runCLI(t, "parse", "--tree", "file:x")
	assert.NoError(t, err)
	assert.Contains(t, stdout, "ast.FilePattern{")
	assert.Contains(t, stdout, `Pattern: "x"`)
}

func TestParseCmdTelemetry(t *testing.T) {
	_, stderr, err := runCLI(t, "--telemetry", "parse", "file:x")
	assert.NoError(t, err)
	assert.Contains(t, stderr, "parse")
	assert.Contains(t, stderr, "parser.lex")
	assert.Contains(t, stderr, "parser.parse")
}

func TestTokensCmd(t *testing.T) {
	stdout, _, err := runCLI(t, "tokens", "file:a b")
	assert.NoError(t, err)

	expected := `IDENT      1:1    "file"
:          1:5    ":"
IDENT      1:6    "a"
WHITESPACE 1:7    " "
IDENT      1:8    "b"
`
	assert.Equal(t, expected, stdout)
}

func TestGrammarCmd(t *testing.T) {
	stdout, _, err := runCLI(t, "grammar")
	assert.NoError(t, err)
	assert.Contains(t, stdout, "Term          = \"!\" Term | \"(\" Union \")\" | Fragment .")

	stdout, _, err = runCLI(t, "grammar", "--productions")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Scope\nUnion\nIntersection\n"))
}

func TestCheckCmd(t *testing.T) {
	path := writeScopes(t, "main.scopes", "Sources = file:src/*.go\nTests = file:test/*\n")

	stdout, stderr, err := runCLI(t, "check", path)
	assert.NoError(t, err)
	assert.Equal(t, "", stderr)
	assert.Contains(t, stdout, "2 scope(s) in main.scopes")
}

func TestCheckCmdError(t *testing.T) {
	path := writeScopes(t, "main.scopes", "A = file:a\nB = file:1x\n")

	_, stderr, err := runCLI(t, "check", path)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stderr, ":2:11: x unexpected at position 7")
	assert.Contains(t, stderr, "   B = file:1x\n             ^")
	assert.Contains(t, stderr, "check failed")
}

func TestCheckCmdJSON(t *testing.T) {
	path := writeScopes(t, "main.scopes", "A = file:\n")

	stdout, _, err := runCLI(t, "check", "--format", "json", path)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stdout, `"key": "error.packageset.pattern.expectations"`)
	assert.Contains(t, stdout, `"message": "Pattern expected"`)

	valid := writeScopes(t, "ok.scopes", "A = file:a\n")
	stdout, _, err = runCLI(t, "check", "--format", "json", valid)
	assert.NoError(t, err)
	assert.Equal(t, "[]\n", stdout)
}

func TestCheckCmdFollowIncludes(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "shared.scopes"), []byte("Shared = file:shared/*\n"), 0o644))
	mainFile := filepath.Join(dir, "main.scopes")
	assert.NoError(t, os.WriteFile(mainFile, []byte("include shared.scopes\nMain = file:main/*\n"), 0o644))

	stdout, _, err := runCLI(t, "check", mainFile)
	assert.NoError(t, err)
	assert.Contains(t, stdout, "1 scope(s)")

	stdout, _, err = runCLI(t, "check", "--follow-includes", mainFile)
	assert.NoError(t, err)
	assert.Contains(t, stdout, "2 scope(s)")
}

func TestFmtCmd(t *testing.T) {
	path := writeScopes(t, "main.scopes", "# sources\nSources=file:src/*.go\nT = file:a||file:b\n")

	stdout, _, err := runCLI(t, "fmt", path)
	assert.NoError(t, err)
	assert.Equal(t, "# sources\nSources = file:src/*.go\nT       = file:a|| file:b\n", stdout)
}

func TestFmtCmdWrite(t *testing.T) {
	path := writeScopes(t, "main.scopes", "A=file:a\n")

	_, _, err := runCLI(t, "fmt", "--write", "--yes", path)
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "A = file:a\n", string(data))

	stdout, _, err := runCLI(t, "fmt", "--write", path)
	assert.NoError(t, err)
	assert.Contains(t, stdout, "already formatted")
}

func TestFmtCmdWriteDeclined(t *testing.T) {
	path := writeScopes(t, "main.scopes", "A=file:a\n")

	cmd := &FmtCmd{File: FileOrStdin{Filename: path}, Write: true}
	var stdout, stderr bytes.Buffer
	var asked string
	err := cmd.run(context.Background(), &Globals{}, &stdout, &stderr, func(q string) (bool, error) {
		asked = q
		return false, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "Overwrite "+path+"?", asked)
	assert.Contains(t, stdout.String(), "left")

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "A=file:a\n", string(data))
}

func TestFmtCmdStdin(t *testing.T) {
	cmd := &FmtCmd{File: FileOrStdin{Filename: stdinFilename, Contents: []byte("X=file:x\n")}}
	var stdout, stderr bytes.Buffer
	err := cmd.run(context.Background(), &Globals{}, &stdout, &stderr, nil)
	assert.NoError(t, err)
	assert.Equal(t, "X = file:x\n", stdout.String())

	cmd.Write = true
	err = cmd.run(context.Background(), &Globals{}, &stdout, &stderr, nil)
	assert.Error(t, err)
}

func TestCheckWatchStopsOnCancel(t *testing.T) {
	path := writeScopes(t, "main.scopes", "A = file:a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := &CheckCmd{File: FileOrStdin{Filename: path}, Watch: true}
	var stdout, stderr bytes.Buffer
	err := cmd.watch(ctx, &Globals{}, &stdout, &stderr)
	assert.NoError(t, err)
	assert.Contains(t, stdout.String(), "watching main.scopes")
}

func TestCheckOnceReportsCheckFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		failed  bool
	}{
		{"valid file", "A = file:a\n", false},
		{"invalid file", "A = file:\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScopes(t, "main.scopes", tt.content)

			cmd := &CheckCmd{File: FileOrStdin{Filename: path}}
			var stdout, stderr bytes.Buffer
			failed, err := cmd.checkOnce(context.Background(), &Globals{}, &stdout, &stderr)
			assert.NoError(t, err)
			assert.Equal(t, tt.failed, failed != nil)
			if tt.failed {
				assert.Equal(t, 1, failed.ExitCode())
				assert.Contains(t, failed.Error(), "Pattern expected at position 6")
				assert.Contains(t, stderr.String(), "Pattern expected")
			}
		})
	}
}

// lockedBuffer is a bytes.Buffer safe for use by a running command and the
// test goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCheckWatchReturnsLastFailureOnCancel(t *testing.T) {
	path := writeScopes(t, "main.scopes", "A = file:\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := &CheckCmd{File: FileOrStdin{Filename: path}, Watch: true}
	var stdout, stderr lockedBuffer
	done := make(chan error, 1)
	go func() { done <- cmd.watch(ctx, &Globals{}, &stdout, &stderr) }()

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(stdout.String(), "watching main.scopes") {
		if time.Now().After(deadline) {
			t.Fatal("watch did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	err := <-done
	var cmdErr *CommandError
	assert.True(t, stdErrors.As(err, &cmdErr), "expected *CommandError, got %v", err)
	assert.Equal(t, 1, cmdErr.ExitCode())
	assert.Contains(t, stderr.String(), "Pattern expected")
}
