package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	service "github.com/okian/aav/internal/app"
	"github.com/okian/aav/internal/domain/engine"
)

//nolint:gochecknoglobals // console palette
var (
	headlineColor = color.New(color.FgCyan, color.Bold)
	premiumColor  = color.New(color.FgGreen)
	discountColor = color.New(color.FgRed)
	failColor     = color.New(color.FgRed, color.Bold)
	dimColor      = color.New(color.FgHiBlack)
)

// Confidence below this is flagged in the tables.
const lowConfidence = 0.5

func money(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.2fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func percent(v float64) string {
	s := fmt.Sprintf("%+.1f%%", v*100)
	switch {
	case v > 0:
		return premiumColor.Sprint(s)
	case v < 0:
		return discountColor.Sprint(s)
	default:
		return s
	}
}

func confidence(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if v < lowConfidence {
		return dimColor.Sprint(s)
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeRecommendation prints a headline, the factor breakdown and the
// pressure trail.
func writeRecommendation(w io.Writer, rec *engine.Recommendation) error {
	name := rec.PlayerID
	if name == "" {
		name = "player"
	}
	if _, err := headlineColor.Fprintf(w, "%s (%s): %s per year\n", name, rec.Position, money(rec.FinalAAV)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "baseline %s, confidence %.2f, max %d years, max %.0f%% guaranteed\n\n",
		money(rec.BaseAAV), rec.Confidence, rec.MaxYears, rec.MaxGuaranteedPct*100); err != nil {
		return err
	}

	factors := tablewriter.NewWriter(w)
	factors.Header([]string{"Factor", "Value", "Confidence", "Rationale"})
	factors.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	var rows [][]string
	for _, f := range rec.Factors {
		rows = append(rows, []string{f.Name, money(f.RawValue), confidence(f.Confidence), f.Rationale})
	}
	if err := factors.Bulk(rows); err != nil {
		return err
	}
	if err := factors.Render(); err != nil {
		return err
	}

	trail := tablewriter.NewWriter(w)
	trail.Header([]string{"Modifier", "In", "Out", "Adjustment", "Pressure", "Description"})
	trail.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	rows = nil
	for _, s := range rec.Trail {
		rows = append(rows, []string{
			s.ModifierName,
			money(s.InputAAV),
			money(s.OutputAAV),
			percent(s.AdjustmentPct),
			strconv.FormatFloat(s.PressureLevel, 'f', 2, 64),
			s.Description,
		})
	}
	if err := trail.Bulk(rows); err != nil {
		return err
	}
	if err := trail.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "total adjustment %s\n", percent(rec.TotalAdjustmentPct))
	return err
}

// rankPool orders successful results by final AAV, highest first, with
// failures last in input order.
func rankPool(results []service.PoolResult) []service.PoolResult {
	out := append([]service.PoolResult(nil), results...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Recommendation, out[j].Recommendation
		switch {
		case a == nil || b == nil:
			return a != nil && b == nil
		case a.FinalAAV != b.FinalAAV:
			return a.FinalAAV > b.FinalAAV
		default:
			return a.PlayerID < b.PlayerID
		}
	})
	return out
}

// writePoolTable prints up to top ranked results (all when top < 1).
func writePoolTable(w io.Writer, results []service.PoolResult, top int) error {
	ranked := rankPool(results)
	var valued, failed int
	var total float64
	for _, r := range ranked {
		if r.Recommendation == nil {
			failed++
			continue
		}
		valued++
		total += r.Recommendation.FinalAAV
	}
	if top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Player", "Pos", "Final AAV", "Baseline", "Conf", "Years", "Gtd"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for i, r := range ranked {
		rec := r.Recommendation
		if rec == nil {
			data = append(data, []string{"-", fmt.Sprintf("#%d", r.Index), "", failColor.Sprint("error"), r.Error, "", "", ""})
			continue
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			rec.PlayerID,
			rec.Position,
			money(rec.FinalAAV),
			money(rec.BaseAAV),
			confidence(rec.Confidence),
			strconv.Itoa(rec.MaxYears),
			fmt.Sprintf("%.0f%%", rec.MaxGuaranteedPct*100),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Valued %d players (%d failed), combined AAV %s\n", valued, failed, money(total))
	return err
}
