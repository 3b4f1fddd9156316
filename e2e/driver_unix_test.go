//go:build e2e && unix

package main

import (
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

const scrollbackSize = 1 << 20 // 1 MiB

var binPath = "libcatalog_e2e"

const (
	KeyEnter    = "\r"
	KeyEsc      = "\x1b"
	KeyCtrlC    = "\x03"
	KeyQuit     = "q"
	KeySearch   = "/"
	KeyCategory = "c"
	KeyOrder    = "o"
	KeyNext     = "l"
	KeyPrev     = "h"
	KeyPager    = "v"
	KeyHelp     = "?"
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

func plain(s string) string { return ansiRe.ReplaceAllString(s, "") }

// scrollback keeps the last scrollbackSize bytes the app wrote to the terminal.
// written counts every byte ever written so callers can ask for output after a mark.
type scrollback struct {
	mu      sync.Mutex
	buf     []byte
	written int
}

func (s *scrollback) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, p...)
	if over := len(s.buf) - scrollbackSize; over > 0 {
		s.buf = append(s.buf[:0], s.buf[over:]...)
	}
	s.written += len(p)
	return len(p), nil
}

func (s *scrollback) since(mark int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	skip := len(s.buf) - (s.written - mark)
	if skip < 0 {
		skip = 0
	}
	return string(s.buf[skip:])
}

func (s *scrollback) mark() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}

// TUITestFramework drives the built binary through a pseudo terminal
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	out       *scrollback
	readDone  chan struct{}
	workspace string
	endpoint  string
	server    *httptest.Server
}

func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t, out: &scrollback{}}
}

// StartApp launches libcatalog in a 120x40 PTY against the workspace catalog
// server. Config and log file live in the workspace.
func (tf *TUITestFramework) StartApp(args ...string) error {
	if tf.workspace == "" || tf.endpoint == "" {
		return fmt.Errorf("workspace and catalog server must be set up before StartApp")
	}

	cmdArgs := append([]string{
		"-config", filepath.Join(tf.workspace, "libcatalog.toml"),
		"-endpoint", tf.endpoint,
	}, args...)
	tf.cmd = exec.Command(binPath, cmdArgs...)
	tf.cmd.Dir = tf.workspace
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+tf.workspace,
		"LIBCATALOG_LOG_LEVEL=debug",
	)

	f, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("failed to start in pty: %w", err)
	}
	tf.pty = f

	tf.readDone = make(chan struct{})
	go func() {
		defer close(tf.readDone)
		_, _ = io.Copy(tf.out, f)
	}()
	return nil
}

// SendKeys writes raw bytes to the terminal
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

func (tf *TUITestFramework) SendEnter() error { return tf.SendKeys(KeyEnter) }
func (tf *TUITestFramework) SendCtrlC() error { return tf.SendKeys(KeyCtrlC) }
func (tf *TUITestFramework) Escape() error    { return tf.SendKeys(KeyEsc) }
func (tf *TUITestFramework) Quit() error      { return tf.SendKeys(KeyQuit) }

// Type sends text one key at a time, the way a user types it
func (tf *TUITestFramework) Type(text string) error {
	tf.t.Helper()
	for _, r := range text {
		if err := tf.SendKeys(string(r)); err != nil {
			return err
		}
		time.Sleep(30 * time.Millisecond)
	}
	return nil
}

// Search opens the search prompt, types term and submits it
func (tf *TUITestFramework) Search(term string) error {
	tf.t.Helper()
	if err := tf.SendKeys(KeySearch); err != nil {
		return err
	}
	if err := tf.Type(term); err != nil {
		return err
	}
	return tf.SendEnter()
}

// Ready waits for the catalog to settle, loaded or failed
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		p := plain(s)
		return strings.Contains(p, "Total Books found") || strings.Contains(p, "Could not load the catalog")
	}, 5*time.Second)
}

// SeePlain waits up to 3s for text in the normalised output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

func (tf *TUITestFramework) WaitForStatusMessage(message string, timeout time.Duration) bool {
	return tf.OutputContainsPlain(message, timeout)
}

func (tf *TUITestFramework) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool { return strings.Contains(plain(s), text) }, timeout)
}

// WaitFor polls the whole scrollback until pred holds or timeout passes
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.waitSince(0, pred, timeout)
}

// SeeAfter waits for text written after mark. Use it when the text may
// already be in the scrollback from an earlier frame.
func (tf *TUITestFramework) SeeAfter(mark int, text string) bool {
	tf.t.Helper()
	return tf.waitSince(mark, func(s string) bool { return strings.Contains(plain(s), text) }, 3*time.Second)
}

// Mark returns a position in the output stream for SeeAfter and PlainSince
func (tf *TUITestFramework) Mark() int {
	return tf.out.mark()
}

// PlainSince returns the normalised output written after mark
func (tf *TUITestFramework) PlainSince(mark int) string {
	return plain(tf.out.since(mark))
}

func (tf *TUITestFramework) waitSince(mark int, pred func(string) bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.out.since(mark)) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

func (tf *TUITestFramework) Snapshot() string {
	return tf.out.since(0)
}

func (tf *TUITestFramework) SnapshotPlain() string {
	return plain(tf.Snapshot())
}

// DumpTailOnFail saves the last n bytes of normalised output for debugging
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	s := tf.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(s), 0644)
	t.Logf("Saved tail to %s", p)
}

// Cleanup closes the PTY, kills the app and stops the catalog server
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close() // delivers SIGHUP
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
	if tf.readDone != nil {
		<-tf.readDone
	}
	if tf.server != nil {
		tf.server.Close()
		tf.server = nil
	}
}
