// Package scripting wraps a single gopher-lua VM used to let server
// operators tune combat math and monster behavior without a rebuild,
// grounded on the teacher's internal/scripting/engine.go NewEngine/loadDir
// bridge pattern. Scope is cut down to the two hooks SPEC_FULL.md names:
// combat roll tuning and monster targeting overrides; the teacher's skill,
// potion, enchant and PK bridges have no equivalent module here and were
// dropped rather than adapted (see DESIGN.md).
package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. AdjustCombatRoll is reached through
// world.Router.ResolveAttack from every monster AI goroutine, so calls into
// the VM from AdjustCombatRoll and DecideAction are serialized by mu.
type Engine struct {
	mu  sync.Mutex
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file under dir.
// A missing directory is not an error: scripting is an optional tuning
// layer, and the built-in Go formulas apply when no script overrides them.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// CombatTuning holds the per-roll inputs a Lua hook may adjust before the
// Go resolver runs the fixed attack-roll formula (spec §9).
type CombatTuning struct {
	AttackerKind   int
	DefenderKind   int
	BaseAttackRate int
	ArmorClass     int
}

// CombatOverride is what a Lua adjust_combat_roll hook returns. Skip means
// let the Go formula run unmodified.
type CombatOverride struct {
	Skip            bool
	BonusAdjustment int
}

// AdjustCombatRoll calls the optional Lua adjust_combat_roll(ctx) hook. If
// no such function was loaded, it returns Skip: true and combat.Resolve
// runs the unmodified built-in formula.
func (e *Engine) AdjustCombatRoll(t CombatTuning) CombatOverride {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn := e.vm.GetGlobal("adjust_combat_roll")
	if fn == lua.LNil {
		return CombatOverride{Skip: true}
	}

	ctx := e.vm.NewTable()
	ctx.RawSetString("attacker_kind", lua.LNumber(t.AttackerKind))
	ctx.RawSetString("defender_kind", lua.LNumber(t.DefenderKind))
	ctx.RawSetString("base_attack_rate", lua.LNumber(t.BaseAttackRate))
	ctx.RawSetString("armor_class", lua.LNumber(t.ArmorClass))

	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, ctx); err != nil {
		e.log.Error("lua adjust_combat_roll error", zap.Error(err))
		return CombatOverride{Skip: true}
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return CombatOverride{Skip: true}
	}
	return CombatOverride{
		BonusAdjustment: int(lua.LVAsNumber(rt.RawGetString("bonus_adjustment"))),
	}
}

// AITuning holds the inputs a Lua hook may use to override a monster's
// per-step decision (spec §4.7).
type AITuning struct {
	MonsterDefID int
	HasTarget    bool
	TargetDist   float64
}

// AIDecision is what a Lua npc_decide hook returns.
type AIDecision struct {
	Skip   bool
	Action string // "attack", "wander", "idle"
}

// DecideAction calls the optional Lua npc_decide(ctx) hook, letting
// operators script per-definition monster behavior without recompiling.
func (e *Engine) DecideAction(t AITuning) AIDecision {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn := e.vm.GetGlobal("npc_decide")
	if fn == lua.LNil {
		return AIDecision{Skip: true}
	}

	ctx := e.vm.NewTable()
	ctx.RawSetString("def_id", lua.LNumber(t.MonsterDefID))
	if t.HasTarget {
		ctx.RawSetString("has_target", lua.LTrue)
	} else {
		ctx.RawSetString("has_target", lua.LFalse)
	}
	ctx.RawSetString("target_dist", lua.LNumber(t.TargetDist))

	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, ctx); err != nil {
		e.log.Error("lua npc_decide error", zap.Error(err))
		return AIDecision{Skip: true}
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return AIDecision{Skip: true}
	}
	return AIDecision{Action: lua.LVAsString(rt.RawGetString("action"))}
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
