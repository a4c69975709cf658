package system

import (
	"go.uber.org/zap"

	"tilequest/internal/world"
)

// UpdateResult summarises one end-of-turn update.
type UpdateResult struct {
	Resolved int // projectiles spent
	Hits     []EnemyHitResult
	Swept    int // dead enemies removed
}

// Update runs the end-of-turn tick for the active room: projectiles fly,
// enemies act, then dead enemies are swept in one batch.
func Update(w *world.World) UpdateResult {
	var res UpdateResult
	res.Resolved = StepProjectiles(w)
	res.Hits = ProcessAI(w)
	res.Swept = SweepDead(w)
	w.Turn++
	w.Log.Debug("turn",
		zap.Int("turn", w.Turn), zap.Int("projectiles", w.Projectiles.Len()),
		zap.Int("hits", len(res.Hits)), zap.Int("health", w.Player.Health.Current))
	return res
}
