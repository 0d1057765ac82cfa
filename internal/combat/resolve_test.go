package combat

import "testing"

// always returns 0 regardless of n, the minimum roll Intn(n) can produce.
func zeroIntn(n int) int { return 0 }

// TestCriticalMissIgnoresAC pins spec §8's S6: attacker bonus 0, forced
// die roll of 1 (Intn(20) -> 0, so roll = 0+1+0-10 = -9), classifies as
// CriticalMiss and produces no damage regardless of defender AC.
func TestCriticalMissIgnoresAC(t *testing.T) {
	attacker := AttackerSnapshot{Kind: AttackPlayer}
	defender := DefenderSnapshot{Kind: AttackPlayer, ArmorClass: 5}

	got := ResolveWithIntn(attacker, defender, zeroIntn)

	if got.Special != CriticalMiss {
		t.Fatalf("Special = %v, want CriticalMiss", got.Special)
	}
	if got.Hit {
		t.Fatalf("Hit = true, want false on critical miss")
	}
	if got.Damage != 0 {
		t.Fatalf("Damage = %d, want 0", got.Damage)
	}
}

// TestCriticalHitAlwaysConnects forces the maximum die roll (Intn(20) -> 19,
// die 20), so roll = 20+bonus-10 reaches bonus+10 and classifies as
// CriticalHit, which hits whatever the defender's AC.
func TestCriticalHitAlwaysConnects(t *testing.T) {
	maxIntn := func(n int) int { return n - 1 }
	attacker := AttackerSnapshot{Kind: AttackPlayer, BaseAttackRate: 30}
	defender := DefenderSnapshot{Kind: AttackPlayer, ArmorClass: 9}

	got := ResolveWithIntn(attacker, defender, maxIntn)

	if got.Special != CriticalHit {
		t.Fatalf("Special = %v, want CriticalHit", got.Special)
	}
	if !got.Hit {
		t.Fatalf("Hit = false, want true on critical hit")
	}
}

func TestEncumbrancePenaltyBrackets(t *testing.T) {
	cases := []struct {
		pct  float64
		want int
	}{
		{0, 0},
		{1.0 / 3.0, 0},
		{0.4, -1},
		{0.5, -3},
		{2.0 / 3.0, -5},
		{0.8, -5},
		{5.0 / 6.0, -5},
		{1.0, -5},
	}
	for _, c := range cases {
		if got := encumbrancePenalty(c.pct); got != c.want {
			t.Errorf("encumbrancePenalty(%v) = %d, want %d", c.pct, got, c.want)
		}
	}
}

// TestNormalHitThresholdNonNegativeAC pins the AC>=0 branch: hit iff
// roll > 10-AC, with no randomness involved beyond the attack roll.
func TestNormalHitThresholdNonNegativeAC(t *testing.T) {
	// bonus = 0, AC = 0 -> threshold 10. Intn forced to 15 -> roll =
	// 15+1+0-10 = 6, which is Normal (CriticalMiss needs roll <= -9,
	// CriticalHit needs roll >= 10) and does not exceed threshold 10, so
	// the attack misses.
	attacker := AttackerSnapshot{Kind: AttackPlayer}
	defender := DefenderSnapshot{Kind: AttackPlayer, ArmorClass: 0}

	got := ResolveWithIntn(attacker, defender, func(n int) int { return 15 })

	if got.Special != Normal {
		t.Fatalf("Special = %v, want Normal", got.Special)
	}
	if got.Hit {
		t.Fatalf("Hit = true, want false (roll 6 does not exceed threshold 10)")
	}
}
