// Package combat implements the pure damage-resolution function used by
// the World router and the monster AI tasks (spec §4.6). It has no
// dependency on internal/world: callers extract snapshots from a
// world.Object and pass them in as plain values, keeping the resolver a
// pure function of its inputs, grounded on original_source's
// Damage::new / should_hit (server/src/world/object.rs).
package combat

import "math/rand"

// AttackKind mirrors world.AttackType without importing internal/world.
type AttackKind int

const (
	AttackOther AttackKind = iota
	AttackPlayer
	AttackNpc
	AttackMonster
)

// AttackerSnapshot is the subset of an attacking Object's capabilities the
// resolver needs.
type AttackerSnapshot struct {
	Kind               AttackKind
	BaseAttackRate     int
	StrHitBonus        int
	DexHitBonus        int
	HitRateBonus       int
	RangedHitRateBonus int
	HasWeapon          bool
	Ranged             bool
	WeaponHitBonus     int
	WeaponDmgSmall     int
	WeaponDmgMax       int
	WeightPercentage   float64

	// ExtraBonus carries an operator-scripted adjustment (spec's scripting
	// hook); zero when no Lua override applies.
	ExtraBonus int
}

// DefenderSnapshot is the subset of a defending Object's capabilities the
// resolver needs.
type DefenderSnapshot struct {
	Kind       AttackKind
	ArmorClass int8
}

// SpecialClass is the attack-roll classification (spec §4.6).
type SpecialClass int

const (
	Normal SpecialClass = iota
	CriticalMiss
	CriticalHit
)

// Result is the outcome of one compute_damage call.
type Result struct {
	Special SpecialClass
	Hit     bool
	Damage  uint16 // 0 when Hit is false
}

// encumbrancePenalty implements the weight-bracket table pinned in spec
// §4.6 exactly as written, off-by-one boundaries included.
func encumbrancePenalty(weightPct float64) int {
	switch {
	case weightPct <= 1.0/3.0:
		return 0
	case weightPct < 1.0/2.0:
		return -1
	case weightPct < 2.0/3.0:
		return -3
	case weightPct < 5.0/6.0:
		return -5
	default:
		return -5
	}
}

// Resolve runs one attack: attack roll, special classification, hit test,
// and (on hit) a damage roll. It is the sole entry point the World router
// and monster AI tasks call (spec §4.6's compute_damage).
func Resolve(attacker AttackerSnapshot, defender DefenderSnapshot) Result {
	return resolve(attacker, defender, rand.Intn)
}

// ResolveWithIntn is Resolve parameterized by the Intn-shaped source of
// randomness, letting tests pin the attack/hit/damage rolls exactly
// (e.g. spec §8's S6 forces roll=1 via a stub Intn).
func ResolveWithIntn(attacker AttackerSnapshot, defender DefenderSnapshot, intn func(int) int) Result {
	return resolve(attacker, defender, intn)
}

func resolve(attacker AttackerSnapshot, defender DefenderSnapshot, intn func(int) int) Result {
	bonus := attacker.BaseAttackRate + attacker.StrHitBonus + attacker.DexHitBonus
	if attacker.HasWeapon {
		bonus += attacker.WeaponHitBonus
		if attacker.Ranged {
			bonus += attacker.RangedHitRateBonus
		} else {
			bonus += attacker.HitRateBonus
		}
		bonus += encumbrancePenalty(attacker.WeightPercentage)
	}
	bonus += attacker.ExtraBonus

	roll := intn(20) + 1 + bonus - 10

	var special SpecialClass
	switch {
	case roll <= bonus-9:
		special = CriticalMiss
	case roll >= bonus+10:
		special = CriticalHit
	default:
		special = Normal
	}

	hit := shouldHit(special, roll, defender.ArmorClass, intn)
	if !hit {
		return Result{Special: special, Hit: false}
	}

	dmg := rollDamage(attacker, intn)
	return Result{Special: special, Hit: true, Damage: dmg}
}

// shouldHit applies spec §4.6's hit test, following the AC<0 branch's
// pinned off-by-one exactly (spec §9: "the spec pins the formulas as
// written and delegates final balance tuning to the implementer").
func shouldHit(special SpecialClass, roll int, ac int8, intn func(int) int) bool {
	switch special {
	case CriticalMiss:
		return false
	case CriticalHit:
		return true
	}

	var threshold int
	if ac >= 0 {
		threshold = 10 - int(ac)
	} else {
		maxRoll := int(roundHalfAwayFromZero(float64(ac) * -1.5))
		if maxRoll <= 0 {
			maxRoll = 1
		}
		threshold = 10 - intn(maxRoll) + 1
	}
	return roll > threshold
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int64(v + 0.5))
	}
	return float64(int64(v - 0.5))
}

func rollDamage(attacker AttackerSnapshot, intn func(int) int) uint16 {
	lo, hi := 1, 2
	if attacker.HasWeapon {
		lo, hi = attacker.WeaponDmgSmall, attacker.WeaponDmgMax
		if hi < lo {
			hi = lo
		}
	}
	span := hi - lo + 1
	if span <= 0 {
		span = 1
	}
	return uint16(lo + intn(span))
}
