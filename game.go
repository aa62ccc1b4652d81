package main

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/tokenduel/combat"
	"github.com/milk9111/tokenduel/common"
	"github.com/milk9111/tokenduel/config"
	"github.com/milk9111/tokenduel/policy"
	"github.com/milk9111/tokenduel/prefabs"
	"github.com/milk9111/tokenduel/roll"
)

const (
	// aiDelayFrames keeps opponent moves readable at 60 TPS.
	aiDelayFrames = 45
	historyLen    = 14
)

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

type Game struct {
	frames int

	cfg      config.Config
	log      *zap.Logger
	seed     int64
	rng      *rand.Rand
	tables   prefabs.Tables
	combat   *combat.Combat
	opponent policy.Policy
	watcher  *prefabs.Watcher

	ui      *ebitenui.UI
	uiKey   string
	offers  []combat.Offer
	history []string
	aiWait  int
	bars    [2]float32
}

func NewGame(cfg config.Config, log *zap.Logger) (*Game, error) {
	seed := cfg.Seed
	if seed == 0 {
		s, err := roll.NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}

	tables, err := prefabs.LoadTables()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		log:    log,
		seed:   seed,
		rng:    roll.New(seed),
		tables: tables,
	}
	if g.opponent, err = policy.Parse(g.opponentSpec(), g.rng, log); err != nil {
		return nil, err
	}
	if err := g.restart(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Warn("prefab hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	log.Info("duel ready", zap.Int64("seed", seed), zap.String("combat_id", g.combat.ID()))
	return g, nil
}

// Close stops the prefab watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) opponentSpec() string {
	if g.cfg.Opponent != "" {
		return g.cfg.Opponent
	}
	return g.tables.Duel.Opponent
}

func (g *Game) actionsPerRound() int {
	if g.cfg.ActionsPerRound > 0 {
		return g.cfg.ActionsPerRound
	}
	return g.tables.Duel.ActionsPerRound
}

func (g *Game) restart() error {
	first, second, err := g.tables.Combatants()
	if err != nil {
		return err
	}
	cat, err := g.tables.Catalog()
	if err != nil {
		return err
	}

	g.combat = combat.New(first, second, cat, g.rng, g.actionsPerRound(), combat.WithLogger(g.log))
	g.combat.Events().Subscribe(func(evt combat.Event) {
		if line := evt.String(); line != "" {
			g.pushHistory(line)
		}
	})
	g.history = nil
	g.uiKey = ""
	g.aiWait = 0
	g.bars = [2]float32{1, 1}
	return nil
}

func (g *Game) pushHistory(line string) {
	g.history = append(g.history, line)
	if len(g.history) > historyLen {
		g.history = g.history[len(g.history)-historyLen:]
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(); err != nil {
			g.log.Error("restart failed", zap.Error(err))
		}
	}

	g.offers = g.combat.Offers()
	if !g.combat.Finished() {
		if g.combat.State().Side == combat.Second {
			g.updateOpponent()
		} else {
			g.updatePlayer()
		}
	}

	g.refreshPanel()
	if g.ui != nil {
		g.ui.Update()
	}
	g.animateBars()
	return nil
}

func (g *Game) updatePlayer() {
	for i, key := range digitKeys {
		if i < len(g.offers) && inpututil.IsKeyJustPressed(key) {
			g.perform(g.offers[i].Name)
			return
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.pass()
	}
}

func (g *Game) updateOpponent() {
	g.aiWait++
	if g.aiWait < aiDelayFrames {
		return
	}
	g.aiWait = 0
	if _, err := policy.Step(g.combat, g.opponent); err != nil {
		g.log.Warn("opponent step failed", zap.Error(err))
	}
}

func (g *Game) perform(name string) {
	if g.combat.Finished() || g.combat.State().Side != combat.First {
		return
	}
	if _, err := g.combat.Perform(name); err != nil {
		g.log.Warn("action rejected", zap.String("action", name), zap.Error(err))
	}
}

func (g *Game) pass() {
	if g.combat.Finished() || g.combat.State().Side != combat.First {
		return
	}
	if _, err := g.combat.Pass(); err != nil {
		g.log.Warn("pass rejected", zap.Error(err))
	}
}

// refreshPanel rebuilds the action panel when the offers or turn change.
func (g *Game) refreshPanel() {
	enabled := !g.combat.Finished() && g.combat.State().Side == combat.First
	key := fmt.Sprintf("%v|%d|%v|%v", g.combat.State(), g.combat.Round(), enabled, g.offers)
	if key == g.uiKey && g.ui != nil {
		return
	}
	g.uiKey = key
	g.ui = NewActionPanel(g.offers, enabled, g.perform, g.pass)
}

func (g *Game) animateBars() {
	snap := g.combat.Snapshot()
	for _, side := range combat.Sides {
		target := healthFraction(snap.Actors[side])
		g.bars[side] = common.Lerp(g.bars[side], target, 0.15)
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("prefab watcher", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	switch change.Kind {
	case prefabs.TableChange:
		tables, err := prefabs.LoadTables()
		if err != nil {
			g.log.Warn("reload tables", zap.String("path", change.Path), zap.Error(err))
			return
		}
		cat, err := tables.Catalog()
		if err != nil {
			g.log.Warn("reload catalog", zap.Error(err))
			return
		}
		g.tables = tables
		g.combat.SetCatalog(cat)
		g.pushHistory("Reloaded " + filepath.Base(change.Path))
	case prefabs.ScriptChange:
		p, err := policy.Parse(g.opponentSpec(), g.rng, g.log)
		if err != nil {
			g.log.Warn("reload opponent", zap.String("path", change.Path), zap.Error(err))
			return
		}
		g.opponent = p
		g.pushHistory("Reloaded " + filepath.Base(change.Path))
	}
	g.uiKey = ""
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawHUD(screen, g.combat.Snapshot(), g.bars, g.history)
	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
