package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/creack/pty"
)

// buildBinary compiles the editor into the calling test's temp dir; each
// test that calls it builds its own binary.
func buildBinary(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "badred")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build: %v\n%s", err, out)
	}
	return bin
}

func startInPty(t *testing.T, bin string, args ...string) (*os.File, *exec.Cmd) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"BADRED_CONFIG_HOME="+t.TempDir(),
	)
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("pty start: %v", err)
	}
	t.Cleanup(func() {
		f.Close()
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	})

	// Wait for the first paint so keys land after init.
	ready := make(chan struct{})
	go func() {
		buf := make([]byte, 8192)
		if _, err := f.Read(buf); err == nil {
			close(ready)
		}
		for {
			if _, err := f.Read(buf); err != nil {
				return
			}
		}
	}()
	select {
	case <-ready:
	case <-time.After(10 * time.Second):
		t.Fatalf("editor never painted")
	}
	return f, cmd
}

func waitExit(t *testing.T, cmd *exec.Cmd) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("editor exited with error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("editor did not exit")
	}
}

func TestEditorStartsAndQuits(t *testing.T) {
	if testing.Short() {
		t.Skip("pty smoke test")
	}
	bin := buildBinary(t)
	f, cmd := startInPty(t, bin)

	// Ctrl+Q quits on the default keymap.
	if _, err := f.Write([]byte{0x11}); err != nil {
		t.Fatalf("send quit: %v", err)
	}
	waitExit(t, cmd)
}

func TestEditorStartupLinkPreservesFile(t *testing.T) {
	if testing.Short() {
		t.Skip("pty smoke test")
	}
	bin := buildBinary(t)
	path := filepath.Join(t.TempDir(), "note.txt")
	if err := os.WriteFile(path, []byte("seed"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	f, cmd := startInPty(t, bin, path)

	time.Sleep(300 * time.Millisecond)
	if _, err := f.Write([]byte{0x11}); err != nil {
		t.Fatalf("send quit: %v", err)
	}
	waitExit(t, cmd)

	// The startup link must not clobber the file.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "seed" {
		t.Fatalf("file = %q, want untouched %q", data, "seed")
	}
}
