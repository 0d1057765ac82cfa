package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestAdjustCombatRollSkipsWithNoScript(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	o := e.AdjustCombatRoll(CombatTuning{BaseAttackRate: 5})
	if !o.Skip {
		t.Fatalf("expected Skip with no loaded script, got %+v", o)
	}
}

func TestAdjustCombatRollAppliesLoadedHook(t *testing.T) {
	dir := t.TempDir()
	script := `
function adjust_combat_roll(ctx)
  return { bonus_adjustment = 3 }
end
`
	if err := os.WriteFile(filepath.Join(dir, "tuning.lua"), []byte(script), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	o := e.AdjustCombatRoll(CombatTuning{BaseAttackRate: 5})
	if o.Skip {
		t.Fatalf("expected hook to run, got Skip=true")
	}
	if o.BonusAdjustment != 3 {
		t.Fatalf("bonus_adjustment = %d, want 3", o.BonusAdjustment)
	}
}

func TestDecideActionSkipsWithNoScript(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	d := e.DecideAction(AITuning{HasTarget: true, TargetDist: 3})
	if !d.Skip {
		t.Fatalf("expected Skip with no loaded script, got %+v", d)
	}
}
