package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[platform]\nstrategy = \"unsupported\"\n\n[log]\nlevel = \"error\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--config", writeConfig(t)}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCommandsListsAllFour(t *testing.T) {
	stdout, _, err := run(t, "commands")
	if err != nil {
		t.Fatalf("commands error = %v", err)
	}
	want := "auto_copy_selection\nclear_other_selections\ncopy_to_clipboard\nread_clipboard\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestInvokeClearOnUnsupportedSucceeds(t *testing.T) {
	stdout, _, err := run(t, "invoke", "clear_other_selections")
	if err != nil {
		t.Fatalf("invoke error = %v", err)
	}
	if strings.TrimSpace(stdout) != "Selection clearing unavailable on this platform" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestInvokeAutoCopyOnUnsupportedFails(t *testing.T) {
	_, stderr, err := run(t, "invoke", "auto_copy_selection")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(stderr, "auto-copy unavailable on this platform") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestInvokeRejectsStrayText(t *testing.T) {
	if _, _, err := run(t, "invoke", "read_clipboard", "extra"); err == nil {
		t.Fatalf("expected error for text on read_clipboard")
	}
}

func TestInvokeUnknownCommand(t *testing.T) {
	_, stderr, err := run(t, "invoke", "paste_everywhere")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(stderr, "unknown command: paste_everywhere") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestCopyText(t *testing.T) {
	got, err := copyText([]string{"héllo"}, false, nil)
	if err != nil || got != "héllo" {
		t.Fatalf("copyText(arg) = %q, %v", got, err)
	}

	got, err = copyText(nil, true, strings.NewReader("from stdin\n"))
	if err != nil || got != "from stdin\n" {
		t.Fatalf("copyText(stdin) = %q, %v", got, err)
	}

	if _, err := copyText(nil, false, nil); err == nil {
		t.Fatalf("expected error without text")
	}
	if _, err := copyText([]string{"x"}, true, strings.NewReader("y")); err == nil {
		t.Fatalf("expected error with both argument and --stdin")
	}
}

func TestBadConfigFailsStartup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[platform]\nstrategy = \"robot\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"--config", path, "commands"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected startup error")
	}
	if !strings.Contains(stderr.String(), "unknown platform strategy") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}
