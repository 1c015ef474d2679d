package owner_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"

	"github.com/okian/aav/internal/domain/owner"
)

func patience(v float64) *float64 { return &v }

func TestSecurityScore(t *testing.T) {
	Convey("Given GM job security records", t, func() {
		Convey("Then a fresh, losing GM with an impatient owner scores zero", func() {
			So(owner.JobSecurity{}.SecurityScore(), ShouldEqual, 0.0)
		})

		Convey("Then a long-tenured winner with a patient owner scores one", func() {
			js := owner.JobSecurity{TenureYears: 9, PlayoffAppearances: 6, RecentWinPct: 1, OwnerPatience: 1}
			So(js.SecurityScore(), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Then components saturate and blend by weight", func() {
			js := owner.JobSecurity{TenureYears: 6, PlayoffAppearances: 3, RecentWinPct: 0.65, OwnerPatience: 0.8}
			So(js.SecurityScore(), ShouldAlmostEqual, 0.25+0.25+0.195+0.16, 1e-9)
		})

		Convey("Then out-of-range inputs stay inside [0,1]", func() {
			js := owner.JobSecurity{TenureYears: -4, PlayoffAppearances: -1, RecentWinPct: 3, OwnerPatience: -2}
			score := js.SecurityScore()
			So(score, ShouldBeBetweenOrEqual, 0, 1)
		})
	})
}

func TestFromDirectives(t *testing.T) {
	Convey("Given owner directives", t, func() {
		Convey("When fields are left empty", func() {
			ctx, err := owner.FromDirectives(owner.Directives{}, "dyn-1", "team-7")

			Convey("Then documented defaults are applied", func() {
				So(err, ShouldBeNil)
				So(ctx.DynastyID, ShouldEqual, "dyn-1")
				So(ctx.TeamID, ShouldEqual, "team-7")
				So(ctx.OwnerPhilosophy, ShouldEqual, owner.Balanced)
				So(ctx.TeamPhilosophy, ShouldEqual, owner.Maintain)
				So(ctx.MaxContractYears, ShouldEqual, owner.DefaultMaxContractYears)
				So(ctx.MaxGuaranteedPct, ShouldEqual, owner.DefaultMaxGuaranteedPct)
				So(ctx.JobSecurity.OwnerPatience, ShouldEqual, owner.DefaultOwnerPatience)
			})
		})

		Convey("When every field is supplied", func() {
			ctx, err := owner.FromDirectives(owner.Directives{
				OwnerPhilosophy:    "Aggressive",
				TeamPhilosophy:     "win-now",
				WinNowMode:         true,
				MaxContractYears:   4,
				MaxGuaranteedPct:   0.5,
				GMTenureYears:      2,
				PlayoffAppearances: 1,
				RecentWinPct:       0.41,
				OwnerPatience:      patience(0),
			}, "dyn-2", "team-1")

			Convey("Then they are carried into the context", func() {
				So(err, ShouldBeNil)
				So(ctx.OwnerPhilosophy, ShouldEqual, owner.Aggressive)
				So(ctx.TeamPhilosophy, ShouldEqual, owner.WinNow)
				So(ctx.WinNowMode, ShouldBeTrue)
				So(ctx.MaxContractYears, ShouldEqual, 4)
				So(ctx.MaxGuaranteedPct, ShouldEqual, 0.5)
				So(ctx.JobSecurity.TenureYears, ShouldEqual, 2)
				So(ctx.JobSecurity.OwnerPatience, ShouldEqual, 0.0)
			})
		})

		Convey("When directives are invalid", func() {
			bad := []owner.Directives{
				{OwnerPhilosophy: "reckless"},
				{TeamPhilosophy: "tank"},
				{MaxContractYears: 9},
				{MaxContractYears: -1},
				{MaxGuaranteedPct: 1.5},
				{RecentWinPct: 1.2},
				{GMTenureYears: -1},
				{OwnerPatience: patience(2)},
			}

			Convey("Then each is rejected with ErrInvalidDirective", func() {
				for _, d := range bad {
					ctx, err := owner.FromDirectives(d, "dyn", "team")
					So(ctx, ShouldBeNil)
					So(errors.Is(err, owner.ErrInvalidDirective), ShouldBeTrue)
				}
			})
		})
	})
}

func TestParsePhilosophies(t *testing.T) {
	tests := []struct {
		in   string
		want owner.TeamPhilosophy
	}{
		{in: "win now", want: owner.WinNow},
		{in: "WIN_NOW", want: owner.WinNow},
		{in: " rebuild ", want: owner.Rebuild},
		{in: "", want: owner.Maintain},
	}
	for _, tt := range tests {
		got, err := owner.ParseTeamPhilosophy(tt.in)
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	p, err := owner.ParsePhilosophy("CONSERVATIVE")
	assert.NoError(t, err)
	assert.Equal(t, owner.Conservative, p)
}

func TestNeedBonus(t *testing.T) {
	assert.Equal(t, 15, owner.NeedBonus(owner.NeedCritical))
	assert.Equal(t, 8, owner.NeedBonus(owner.NeedHigh))
	assert.Equal(t, 3, owner.NeedBonus("medium"))
	assert.Equal(t, 0, owner.NeedBonus(owner.NeedLow))
	assert.Equal(t, -5, owner.ReachPenalty)
}
