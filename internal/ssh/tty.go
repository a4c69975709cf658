// Package ssh adapts a gliderlabs SSH session to the tcell.Tty interface so
// each connection can drive its own game screen.
package ssh

import (
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Session is the part of gossh.Session the tty needs.
type Session interface {
	io.ReadWriteCloser
}

// SessionTty implements tcell.Tty on top of an SSH channel.
type SessionTty struct {
	session Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	cb     func() // resize callback registered by tcell
	watch  sync.Once
	done   chan struct{}
	closed sync.Once
}

// NewSessionTty wraps s. pty holds the initial window size; winCh delivers
// later resizes and may be nil.
func NewSessionTty(s Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
		done:    make(chan struct{}),
	}
}

func (t *SessionTty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close stops resize tracking and closes the SSH channel.
func (t *SessionTty) Close() error {
	t.closed.Do(func() { close(t.done) })
	return t.session.Close()
}

// Start is a no-op; the channel is already open.
func (t *SessionTty) Start() error { return nil }

// Stop detaches the resize callback. The channel stays open so a later
// Start can resume.
func (t *SessionTty) Stop() error {
	t.mu.Lock()
	t.cb = nil
	t.mu.Unlock()
	return nil
}

// Drain is a no-op; SSH writes are not buffered here.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the last size the client reported.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb for window changes. The first call starts the
// goroutine that drains winCh until the channel ends or the tty closes.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()
	if t.winCh == nil {
		return
	}
	t.watch.Do(func() { go t.watchResize() })
}

func (t *SessionTty) watchResize() {
	for {
		select {
		case <-t.done:
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.mu.Lock()
			t.window = win
			cb := t.cb
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}

var _ tcell.Tty = (*SessionTty)(nil)
