package pressure_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"

	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/player"
	"github.com/okian/aav/internal/domain/pressure"
)

func ctxFor(ownerPhil owner.Philosophy, teamPhil owner.TeamPhilosophy, js owner.JobSecurity) *owner.Context {
	return &owner.Context{
		DynastyID:        "dyn",
		TeamID:           "team",
		JobSecurity:      js,
		OwnerPhilosophy:  ownerPhil,
		TeamPhilosophy:   teamPhil,
		MaxContractYears: 5,
		MaxGuaranteedPct: 0.75,
	}
}

var (
	secure  = owner.JobSecurity{TenureYears: 8, PlayoffAppearances: 4, RecentWinPct: 1, OwnerPatience: 1}
	hotSeat = owner.JobSecurity{TenureYears: 1, RecentWinPct: 0.25, OwnerPatience: 0.1}
)

func TestApplyChain(t *testing.T) {
	Convey("Given the owner-pressure chain", t, func() {
		Convey("When the list is empty", func() {
			final, total, steps := pressure.ApplyChain(1_000_000, ctxFor(owner.Balanced, owner.Maintain, secure), nil, nil)

			Convey("Then it is a no-op", func() {
				So(final, ShouldEqual, 1_000_000.0)
				So(total, ShouldEqual, 0.0)
				So(steps, ShouldBeEmpty)
			})
		})

		Convey("When every stage runs", func() {
			ctx := ctxFor(owner.Aggressive, owner.WinNow, hotSeat)
			ctx.WinNowMode = true
			chain := append(pressure.DefaultChain(), pressure.DefaultChain()...)
			final, total, steps := pressure.ApplyChain(20_000_000, ctx, chain, player.Int(32))

			Convey("Then each input is the previous output", func() {
				So(len(steps), ShouldEqual, len(chain))
				So(steps[0].InputAAV, ShouldEqual, 20_000_000.0)
				for i := 1; i < len(steps); i++ {
					So(steps[i].InputAAV, ShouldEqual, steps[i-1].OutputAAV)
				}
				So(final, ShouldEqual, steps[len(steps)-1].OutputAAV)
				So(total, ShouldAlmostEqual, final/20_000_000-1, 1e-12)
			})

			Convey("Then every step explains itself", func() {
				for _, s := range steps {
					So(s.Description, ShouldNotBeEmpty)
					So(s.PressureLevel, ShouldBeBetweenOrEqual, 0, 1)
				}
			})
		})

		Convey("When the owner context is missing", func() {
			final, _, steps := pressure.ApplyChain(5_000_000, nil, pressure.DefaultChain(), player.Int(27))

			Convey("Then nothing moves", func() {
				So(final, ShouldEqual, 5_000_000.0)
				for _, s := range steps {
					So(s.AdjustmentPct, ShouldEqual, 0.0)
				}
			})
		})
	})
}

func TestJobSecurityModifier(t *testing.T) {
	m := pressure.NewJobSecurityModifier()

	Convey("Given the job security modifier", t, func() {
		Convey("Then the curve is zero at zero and monotonic up to the cap", func() {
			So(m.Adjustment(0), ShouldEqual, 0.0)
			prev := 0.0
			for p := 0.0; p <= 1.0001; p += 0.05 {
				adj := m.Adjustment(p)
				So(adj, ShouldBeGreaterThanOrEqualTo, prev)
				So(adj, ShouldBeLessThanOrEqualTo, 0.20)
				prev = adj
			}
			So(m.Adjustment(1), ShouldAlmostEqual, 0.20, 1e-12)
			So(m.Adjustment(0.3), ShouldAlmostEqual, 0.02, 1e-12)
			So(m.Adjustment(0.45), ShouldAlmostEqual, 0.05, 1e-12)
		})

		Convey("Then a tighter cap clamps the premium", func() {
			capped := pressure.NewJobSecurityModifier(pressure.WithMaxAdjustment(0.05))
			So(capped.Adjustment(1), ShouldAlmostEqual, 0.05, 1e-12)
		})

		Convey("Then a fully secure GM pays nothing", func() {
			ctx := ctxFor(owner.Balanced, owner.Maintain, secure)
			So(m.PressureLevel(ctx, nil), ShouldAlmostEqual, 0, 1e-12)
			out, desc := m.Apply(10_000_000, ctx, nil)
			So(out, ShouldAlmostEqual, 10_000_000, 1e-6)
			So(desc, ShouldNotBeEmpty)
		})

		Convey("Then a hot seat pays a premium", func() {
			ctx := ctxFor(owner.Balanced, owner.Maintain, hotSeat)
			out, _ := m.Apply(10_000_000, ctx, nil)
			So(out, ShouldBeGreaterThan, 10_000_000)
			So(m.Breakdown(10_000_000, ctx, nil), ShouldContainKey, "security_score")
		})
	})
}

func TestWinNowModifier(t *testing.T) {
	m := pressure.NewWinNowModifier()
	tests := []struct {
		team owner.TeamPhilosophy
		age  int
		want float64
	}{
		{team: owner.WinNow, age: 33, want: 0.12},
		{team: owner.WinNow, age: 28, want: 0.05},
		{team: owner.WinNow, age: 22, want: -0.05},
		{team: owner.Rebuild, age: 31, want: -0.10},
		{team: owner.Rebuild, age: 26, want: 0},
		{team: owner.Rebuild, age: 25, want: 0.08},
		{team: owner.Maintain, age: 35, want: -0.03},
		{team: owner.Maintain, age: 30, want: 0},
		{team: owner.Maintain, age: 21, want: 0.03},
	}
	for _, tt := range tests {
		ctx := ctxFor(owner.Balanced, tt.team, secure)
		out, desc := m.Apply(1_000_000, ctx, player.Int(tt.age))
		assert.InDelta(t, 1_000_000*(1+tt.want), out, 1e-6, "%s age %d", tt.team, tt.age)
		assert.NotEmpty(t, desc)
	}

	ctx := ctxFor(owner.Balanced, owner.WinNow, secure)
	out, desc := m.Apply(1_000_000, ctx, nil)
	assert.Equal(t, 1_000_000.0, out)
	assert.Contains(t, desc, "age unknown")

	assert.InDelta(t, 0.8, m.PressureLevel(ctx, nil), 1e-12)
	ctx.WinNowMode = true
	assert.InDelta(t, 0.9, m.PressureLevel(ctx, nil), 1e-12)
	out, _ = m.Apply(1_000_000, ctx, player.Int(33))
	assert.InDelta(t, 1_120_000, out, 1e-6, "win-now mode must not change the table")

	rebuild := ctxFor(owner.Balanced, owner.Rebuild, secure)
	assert.InDelta(t, 0.3, m.PressureLevel(rebuild, nil), 1e-12)

	shifted := pressure.NewWinNowModifier(pressure.WithThresholds(player.Thresholds{Young: 24, Veteran: 29}))
	out, _ = shifted.Apply(1_000_000, rebuild, player.Int(25))
	assert.InDelta(t, 1_000_000, out, 1e-6)
}

func TestBudgetStanceModifier(t *testing.T) {
	m := pressure.NewBudgetStanceModifier()

	Convey("Given the budget stance modifier", t, func() {
		Convey("Then each philosophy scales and reports fixed pressure", func() {
			cases := map[owner.Philosophy][2]float64{
				owner.Aggressive:   {1.15, 0.8},
				owner.Balanced:     {1.00, 0.5},
				owner.Conservative: {0.90, 0.2},
			}
			for phil, want := range cases {
				ctx := ctxFor(phil, owner.Maintain, secure)
				out, _ := m.Apply(10_000_000, ctx, nil)
				So(out, ShouldAlmostEqual, 10_000_000*want[0], 1e-6)
				So(m.PressureLevel(ctx, nil), ShouldEqual, want[1])
			}
		})

		Convey("When the proposal breaks both limits", func() {
			ctx := ctxFor(owner.Balanced, owner.Maintain, secure)
			ctx.MaxContractYears = 4
			ctx.MaxGuaranteedPct = 0.50
			r := m.ValidateConstraints(6, 0.70, ctx)

			Convey("Then both flags are false and both violations are listed", func() {
				So(r.YearsValid, ShouldBeFalse)
				So(r.GuaranteedValid, ShouldBeFalse)
				So(r.IsValid, ShouldBeFalse)
				So(len(r.Violations), ShouldEqual, 2)
				So(r.Violations[0], ShouldContainSubstring, "6 years")
				So(r.Violations[1], ShouldContainSubstring, "70%")
			})

			Convey("Then a compliant proposal passes", func() {
				ok := m.ValidateConstraints(4, 0.50, ctx)
				So(ok.IsValid, ShouldBeTrue)
				So(ok.Violations, ShouldBeEmpty)
			})

			Convey("Then the limits are exposed", func() {
				So(m.MaxYears(ctx), ShouldEqual, 4)
				So(m.MaxGuaranteedPct(ctx), ShouldEqual, 0.50)
			})
		})

		Convey("Then a missing context falls back to default limits", func() {
			So(m.MaxYears(nil), ShouldEqual, owner.DefaultMaxContractYears)
			So(m.MaxGuaranteedPct(nil), ShouldEqual, owner.DefaultMaxGuaranteedPct)
		})
	})
}
