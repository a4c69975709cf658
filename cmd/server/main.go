// tilequest-server serves the game over SSH. Every connection plays its own
// world, saved under the connecting user's name. Build:
//
//	go build -o tilequest-server ./cmd/server
//
// Usage:
//
//	./tilequest-server [--port 2222] [--key server_host_key] [--saves saves.json]
//
// Connect with:
//
//	ssh -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"go.uber.org/zap"
	xssh "golang.org/x/crypto/ssh"

	"tilequest/internal/game"
	"tilequest/internal/grid"
	"tilequest/internal/logging"
	"tilequest/internal/save"
	"tilequest/internal/spectate"
	internalssh "tilequest/internal/ssh"
	"tilequest/internal/world"
)

// maxNameBytes bounds a save key derived from an SSH user name.
const maxNameBytes = 16

// allowedTerms are the TERM values handed to terminfo; anything else falls
// back to defaultTerm.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

const defaultTerm = "xterm-256color"

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	seed := flag.Int64("seed", 0, "World seed for new sessions (0 picks one per session)")
	logPath := flag.String("log", "tilequest-server.log", "Log file; empty disables logging")
	level := flag.String("level", "info", "Log level")
	savePath := flag.String("saves", "saves.json", "JSON file holding saved sessions")
	dsn := flag.String("pg", "", "PostgreSQL DSN for saved sessions (overrides --saves)")
	watch := flag.String("spectate", "", "Address to serve spectators on, e.g. :8080")
	flag.Parse()

	log, err := logging.New(*logPath, *level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := save.Open(*savePath, *dsn)
	if err != nil {
		log.Fatal("open save store", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	h := &host{log: log, store: store, seed: *seed}
	if *watch != "" {
		h.hub = spectate.NewHub(log.Named("spectate"))
		defer h.hub.Close()
		go func() {
			if err := http.ListenAndServe(*watch, h.hub); err != nil {
				log.Error("spectator server stopped", zap.Error(err))
			}
		}()
		log.Info("spectators welcome", zap.String("addr", *watch))
	}

	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{loadOrCreateHostKey(*keyFile, log)},
	}

	log.Info("ssh server listening", zap.Int("port", *port))
	fmt.Printf("tilequest listening on :%d  (ssh -p %d localhost)\n", *port, *port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("ssh server stopped", zap.Error(err))
	}
}

// host runs one game per SSH session.
type host struct {
	log   *zap.Logger
	store save.Storage
	hub   *spectate.Hub
	seed  int64
}

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks for the duration of the game so the SSH session stays open.
func (h *host) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	name := saveKey(s.User())
	log := h.log.With(zap.String("user", name), zap.String("remote", s.RemoteAddr().String()))

	screen, err := newSessionScreen(s, pty, winCh)
	if err != nil {
		log.Warn("terminal setup failed", zap.Error(err))
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}

	opts := game.Options{Seed: h.seed, Log: log, Store: h.store, SaveKey: name}
	if h.hub != nil {
		opts.OnFrame = func(w *world.World, view grid.Bounds) {
			if err := h.hub.Broadcast(spectate.NewFrame(name, w, view)); err != nil {
				log.Warn("broadcast failed", zap.Error(err))
			}
		}
	}
	g, err := game.NewWithScreen(screen, opts)
	if err != nil {
		screen.Fini()
		log.Error("game setup failed", zap.Error(err))
		fmt.Fprintf(s, "Game setup failed: %v\n", err)
		return
	}

	log.Info("session started")
	if err := g.Run(); err != nil {
		log.Error("session ended with error", zap.Error(err))
		return
	}
	log.Info("session ended")
}

// newSessionScreen creates a tcell screen backed by the SSH session.
// TERM must be set in the process environment before NewTerminfoScreenFromTty.
func newSessionScreen(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) (tcell.Screen, error) {
	term := defaultTerm
	if allowedTerms[pty.Term] {
		term = pty.Term
	}
	tty := internalssh.NewSessionTty(s, pty, winCh)

	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// saveKey turns an SSH user name into the key its session is saved under.
func saveKey(user string) string {
	if name := sanitizeName(user); name != "" {
		return name
	}
	return "guest"
}

// sanitizeName strips control characters and truncates to maxNameBytes
// without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *zap.Logger) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", zap.String("path", path))
			return signer
		}
	}

	log.Info("generating ed25519 host key", zap.String("path", path))
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatal("generate host key", zap.Error(err))
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Fatal("create signer", zap.Error(err))
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "tilequest server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0600)
	}
	return signer
}
