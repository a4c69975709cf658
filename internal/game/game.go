// Package game turns decoded terminal input into validated turns against a
// world.World and drives the tcell front end around them.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"tilequest/internal/boss"
	"tilequest/internal/grid"
	"tilequest/internal/render"
	"tilequest/internal/save"
	"tilequest/internal/system"
	"tilequest/internal/world"
)

// GameState tracks the main state machine.
type GameState uint8

const (
	StatePlaying GameState = iota
	StateDead
	StateQuit
)

const maxMessages = 50

// Options configure a Game. The zero value plays a fresh default world
// seeded from the clock, without persistence or spectators.
type Options struct {
	Seed    int64
	Layout  Layout
	Log     *zap.Logger
	Store   save.Storage // optional snapshot store
	SaveKey string       // key under which the session is saved
	// OnFrame, when set, receives the world and visible viewport after
	// every accepted turn.
	OnFrame func(w *world.World, view grid.Bounds)
}

// Game is the top-level orchestrator.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	world    *world.World
	opts     Options
	log      *zap.Logger
	state    GameState
	messages []string
	runLog   RunLog
}

// New creates a Game on the controlling terminal.
func New(opts Options) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	g, err := NewWithScreen(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a Game on an already-initialised screen. The world
// is restored from opts.Store when a snapshot exists under opts.SaveKey and
// generated otherwise.
func NewWithScreen(screen tcell.Screen, opts Options) (*Game, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Layout == (Layout{}) {
		opts.Layout = DefaultLayout()
	}
	screen.EnableMouse()

	g := &Game{
		screen: screen,
		opts:   opts,
		log:    opts.Log,
	}
	restored, err := g.loadWorld(true)
	if err != nil {
		return nil, err
	}
	g.renderer = render.NewRenderer(screen)
	if restored {
		g.addMessage(fmt.Sprintf("Welcome back. Turn %d.", g.world.Turn))
	} else {
		g.addMessage("Arrows move, wasd turn. m melee, space shoot, click to target.")
	}
	return g, nil
}

// loadWorld restores the saved session when allowed and one exists, or
// generates a new world. It reports whether it restored.
func (g *Game) loadWorld(restore bool) (bool, error) {
	rng := rand.New(rand.NewSource(g.opts.Seed))
	g.runLog = RunLog{Seed: g.opts.Seed, RoomsVisited: 1}
	g.state = StatePlaying

	if restore && g.opts.Store != nil && g.opts.SaveKey != "" {
		snap, err := g.opts.Store.Load(g.opts.SaveKey)
		switch {
		case err == nil && !snap.Player.Alive:
			g.log.Info("saved session ended in death, starting over", zap.String("key", g.opts.SaveKey))
		case err == nil:
			w, err := world.Restore(snap, rng, g.log)
			if err != nil {
				return false, fmt.Errorf("restore %q: %w", g.opts.SaveKey, err)
			}
			attachBoss(w)
			g.world = w
			g.log.Info("session restored", zap.String("key", g.opts.SaveKey), zap.Int("turn", w.Turn))
			return true, nil
		case !errors.Is(err, save.ErrNotFound):
			return false, fmt.Errorf("load session: %w", err)
		}
	}

	w, err := NewWorld(g.opts.Layout, rng, g.log)
	if err != nil {
		return false, err
	}
	g.world = w
	return false, nil
}

// World exposes the simulation state.
func (g *Game) World() *world.World { return g.world }

// State returns the current state of the state machine.
func (g *Game) State() GameState { return g.state }

// Turn performs a and, when it is accepted, runs the end-of-turn update.
// A rejected action only adds its reason to the message log.
func (g *Game) Turn(a Action) (Outcome, error) {
	out, err := Perform(g.world, a)
	if err != nil {
		if !errors.Is(err, ErrNoAction) {
			g.addMessage(capitalize(err.Error()) + ".")
		}
		return out, err
	}
	g.describe(out)

	res := system.Update(g.world)
	g.runLog.TurnsPlayed++
	g.runLog.EnemiesKilled += res.Swept
	for _, h := range res.Hits {
		g.runLog.DamageTaken += h.Damage
		g.addMessage(fmt.Sprintf("An enemy hits you for %d.", h.Damage))
	}
	if res.Swept > 0 {
		g.addMessage(fmt.Sprintf("%d enemies fall.", res.Swept))
	}
	if gol, ok := g.world.Boss.(*boss.Golem); ok && gol.Dead() && !g.runLog.BossDefeated {
		g.runLog.BossDefeated = true
		g.addMessage("The golem crumbles to gravel.")
	}
	if !g.world.Player.Alive {
		g.state = StateDead
		g.runLog.Died = true
		g.runLog.CauseOfDeath = "enemy"
	}
	g.publish()
	return out, nil
}

// describe turns an accepted outcome into a log line.
func (g *Game) describe(out Outcome) {
	switch {
	case out.RoomChange:
		g.runLog.RoomsVisited++
		g.addMessage(fmt.Sprintf("You enter room %v.", g.world.Rooms.ActiveCoord()))
	case out.Move == system.MoveStunned:
		g.addMessage("You are stunned.")
	case out.Move == system.MoveBossBlocked:
		g.addMessage("The golem bars the way.")
	case out.Attack.Hit():
		msg := fmt.Sprintf("You hit for %d.", out.Attack.Damage)
		if out.Attack.Boss {
			msg = fmt.Sprintf("You hit the golem for %d.", out.Attack.Damage)
		}
		g.addMessage(msg)
	case out.Action == ActionBuild && out.Built:
		g.addMessage("You raise a wall of logs.")
	case out.Action == ActionBuild:
		g.addMessage("You tear the logs down.")
	case out.Action == ActionInvisibility:
		g.addMessage("You fade from sight.")
	}
}

// publish hands the freshly updated world to the spectator hook.
func (g *Game) publish() {
	if g.opts.OnFrame == nil {
		return
	}
	g.opts.OnFrame(g.world, g.renderer.Camera().Viewport(g.world.ActiveRoom().Board))
}

// Run is the main game loop. Supports multiple consecutive runs via Try Again.
func (g *Game) Run() error {
	defer g.screen.Fini()

	for {
		for g.state == StatePlaying {
			g.draw()
			ev := g.screen.PollEvent()
			if ev == nil {
				g.state = StateQuit
				break
			}
			g.handleEvent(ev)
		}

		g.finishRun()
		if g.state == StateQuit || !g.showEndScreen() {
			return nil
		}
		g.opts.Seed++
		g.messages = nil
		if _, err := g.loadWorld(false); err != nil {
			return err
		}
		g.addMessage("A new world takes shape.")
	}
}

func (g *Game) draw() {
	p := g.world.Player
	g.renderer.CenterOn(p.Pos, g.world.ActiveRoom().Board)
	g.renderer.DrawFrame(g.world)
	g.renderer.DrawHUD(g.world, g.messages)
}

// handleEvent routes one tcell event.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
	case *tcell.EventKey:
		action := keyToAction(ev)
		if action == ActionQuit {
			g.state = StateQuit
			return
		}
		g.Turn(action)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return
		}
		x, y := ev.Position()
		target := g.renderer.Camera().ScreenToWorld(x, y)
		if !g.world.ActiveRoom().Board.Contains(target) {
			return
		}
		g.world.Player.QueueTarget(target)
		g.addMessage(fmt.Sprintf("Target set to %v.", target))
	}
}

// finishRun persists a living session and logs a finished one.
func (g *Game) finishRun() {
	if g.opts.Store != nil && g.opts.SaveKey != "" && g.world.Player.Alive {
		if err := g.opts.Store.Save(g.opts.SaveKey, g.world.Snapshot()); err != nil {
			g.log.Warn("save failed", zap.String("key", g.opts.SaveKey), zap.Error(err))
		} else {
			g.log.Info("session saved", zap.String("key", g.opts.SaveKey), zap.Int("turn", g.world.Turn))
		}
	}
	if g.state != StateDead {
		return
	}
	if err := saveRunLog(g.runLog); err != nil {
		g.log.Warn("run log not written", zap.Error(err))
	}
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// putText writes a string to the screen at (x, y), one column per rune.
func (g *Game) putText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// showEndScreen renders the run summary and returns true if the player
// wants to try again, false to quit.
func (g *Game) showEndScreen() bool {
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	for {
		g.screen.Clear()
		sw, _ := g.screen.Size()

		sep := func(y int) {
			for x := 0; x < sw; x++ {
				g.screen.SetContent(x, y, '─', nil, gray)
			}
		}
		// label prints a left-aligned key at column 2 and value at column 22.
		label := func(y int, l, v string) {
			g.putText(2, y, l, dim)
			g.putText(22, y, v, white)
		}

		y := 1
		sep(y)
		y += 2
		g.putText(2, y, "YOU HAVE FALLEN", gold)
		badge := "[DEFEAT]"
		g.putText(sw-len(badge)-1, y, badge, red)
		y += 2

		label(y, "Seed:", fmt.Sprintf("%d", g.runLog.Seed))
		y++
		label(y, "Turns Survived:", fmt.Sprintf("%d", g.runLog.TurnsPlayed))
		y++
		label(y, "Rooms Visited:", fmt.Sprintf("%d", g.runLog.RoomsVisited))
		y++
		label(y, "Enemies Slain:", fmt.Sprintf("%d", g.runLog.EnemiesKilled))
		y++
		label(y, "Damage Taken:", fmt.Sprintf("%d", g.runLog.DamageTaken))
		y++
		if g.runLog.BossDefeated {
			g.putText(2, y, "The golem fell before you did.", green)
		}
		y += 2
		sep(y)
		y += 2

		g.putText(2, y, "[R] Try Again", green)
		g.putText(18, y, "[Q] Quit", red)
		g.screen.Show()

		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return false
		case *tcell.EventResize:
			g.screen.Sync()
			continue // redraw on resize
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'r', 'R':
					return true
				case 'q', 'Q':
					return false
				}
			case tcell.KeyEscape:
				return false
			}
		}
	}
}
