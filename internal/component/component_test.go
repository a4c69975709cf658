package component

import "testing"

func TestHealthDamage(t *testing.T) {
	cases := []struct {
		name      string
		start     int
		dmg       int
		wantHP    int
		wantDeath bool
	}{
		{"partial", 60, 30, 30, false},
		{"exact", 30, 30, 0, true},
		{"overkill", 10, 50, 0, true},
		{"zero damage", 10, 0, 10, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := Health{Current: tc.start, Max: 100}
			killed := h.Damage(tc.dmg)
			if killed != tc.wantDeath || h.Current != tc.wantHP {
				t.Errorf("Damage(%d) from %d = killed %v hp %d; want %v %d",
					tc.dmg, tc.start, killed, h.Current, tc.wantDeath, tc.wantHP)
			}
		})
	}
}

func TestHealthHealCapped(t *testing.T) {
	h := Health{Current: 95, Max: 100}
	h.Heal(10)
	if h.Current != 100 {
		t.Fatalf("Heal overshoot: got %d, want 100", h.Current)
	}
}

// TestEnergyClampProperty applies a long mixed sequence of deltas and checks
// the bounds after each one.
func TestEnergyClampProperty(t *testing.T) {
	e := Energy{Current: 50, Max: 100}
	deltas := []int{-10, 75, 300, -1, -500, 2, 99, -98, 1 << 30, -(1 << 30), 0, 37}
	for i, d := range deltas {
		e.Change(d)
		if e.Current < 0 || e.Current > e.Max {
			t.Fatalf("step %d (delta %d): energy %d outside [0,%d]", i, d, e.Current, e.Max)
		}
	}
	e.Current = 3
	e.Change(-5)
	if e.Current != 0 {
		t.Fatalf("underflow not clamped: %d", e.Current)
	}
	e.Change(250)
	if e.Current != 100 {
		t.Fatalf("overflow not clamped: %d", e.Current)
	}
}

func TestCooldownAdvanceSkipsUsedAbility(t *testing.T) {
	var c Cooldowns
	c.Start(AbilitySlam, 10)
	c.Start(AbilityFire, 3)
	c.Advance(AbilitySlam)

	if got := c.Remaining(AbilitySlam); got != 10 {
		t.Errorf("slam = %d; want 10 (just used)", got)
	}
	if got := c.Remaining(AbilityFire); got != 2 {
		t.Errorf("fire = %d; want 2", got)
	}
}

func TestCooldownFloorsAtZero(t *testing.T) {
	var c Cooldowns
	c.Start(AbilityTeleport, 1)
	for i := 0; i < 5; i++ {
		c.Advance(AbilityNone)
	}
	if got := c.Remaining(AbilityTeleport); got != 0 {
		t.Fatalf("teleport = %d; want 0", got)
	}
	if !c.Ready(AbilityTeleport) {
		t.Fatal("teleport should be ready")
	}
}

func TestCooldownNoneIsIgnored(t *testing.T) {
	var c Cooldowns
	c.Start(AbilityNone, 5)
	if c.Remaining(AbilityNone) != 0 {
		t.Fatal("AbilityNone must never carry a cooldown")
	}
}
