package ssh

import (
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession satisfies gossh.Session; only the methods used here are
// implemented.
type fakeSession struct {
	gossh.Session
	written []byte
	hasPty  bool
}

func (f *fakeSession) Write(b []byte) (int, error) {
	f.written = append(f.written, b...)
	return len(b), nil
}

func (f *fakeSession) Pty() (gossh.Pty, <-chan gossh.Window, bool) {
	return gossh.Pty{}, nil, f.hasPty
}

func TestSessionTtyResize(t *testing.T) {
	winCh := make(chan gossh.Window, 1)
	tty := NewSessionTty(&fakeSession{}, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, winCh)

	ws, err := tty.WindowSize()
	require.NoError(t, err)
	assert.Equal(t, 80, ws.Width)
	assert.Equal(t, 24, ws.Height)

	called := make(chan struct{}, 4)
	tty.NotifyResize(func() { called <- struct{}{} })
	tty.NotifyResize(func() { called <- struct{}{} }) // re-registering replaces the callback

	winCh <- gossh.Window{Width: 120, Height: 40}
	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("resize callback not called")
	}
	ws, _ = tty.WindowSize()
	assert.Equal(t, 120, ws.Width)
	assert.Equal(t, 40, ws.Height)
	close(winCh)
}

func TestSessionTtyWrite(t *testing.T) {
	fs := &fakeSession{}
	tty := NewSessionTty(fs, gossh.Pty{}, nil)
	n, err := tty.Write([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "hi", string(fs.written))
	assert.NoError(t, tty.Start())
	assert.NoError(t, tty.Drain())
	assert.NoError(t, tty.Stop())
}

func TestNewScreenRequiresPTY(t *testing.T) {
	_, err := NewScreen(&fakeSession{})
	assert.ErrorIs(t, err, ErrNoPTY)
}

func TestTermOf(t *testing.T) {
	assert.Equal(t, "tmux", TermOf([]string{"LANG=C", "TERM=tmux"}))
	assert.Equal(t, DefaultTerm, TermOf([]string{"TERM=../../../etc/passwd"}))
	assert.Equal(t, DefaultTerm, TermOf(nil))
}

func TestAllowedTerms(t *testing.T) {
	cases := map[string]bool{
		"xterm-256color":        true,
		"tmux":                  true,
		"linux":                 true,
		"vt100":                 true,
		"screen":                true,
		"rxvt-unicode-256color": true,
		"evil-term":             false,
		"../../../etc/passwd":   false,
		"":                      false,
		"xterm-kitty":           false,
	}
	for term, want := range cases {
		assert.Equal(t, want, AllowedTerms[term], "term %q", term)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"normal short name", "Alice", "Alice"},
		{"exactly 16 bytes", "1234567890123456", "1234567890123456"},
		{"long name truncated", "ThisIsAVeryLongUsername", "ThisIsAVeryLongU"},
		{"control chars stripped", "he\x00ll\x1bo", "hello"},
		{"ansi escape partial", "he\x1b[31mllo", "he[31mllo"},
		{"empty", "", ""},
		{"pure control chars", "\x00\x01\x02\x1b", ""},
		{"multi-byte runes kept whole", "日本語のテストです", "日本語のテ"},
		{"emoji kept whole", "🎮Player🎮Name🎮", "🎮Player🎮Na"},
		{"tabs and newlines stripped", "a\tb\nc", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeName(tc.in))
		})
	}
}
