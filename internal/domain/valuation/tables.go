package valuation

// Default league tables. Dollar amounts are per season.

const million = 1_000_000

// DefaultSalaryCap is the league cap used when no override is supplied.
const DefaultSalaryCap = 279_200_000

func rates(elite, quality, starter, backup float64) TierRates {
	return TierRates{
		TierElite:   elite * million,
		TierQuality: quality * million,
		TierStarter: starter * million,
		TierBackup:  backup * million,
	}
}

func defaultCapPct() TierRates {
	return TierRates{
		TierElite:   0.10,
		TierQuality: 0.065,
		TierStarter: 0.035,
		TierBackup:  0.01,
	}
}

func defaultRatingRates() map[string]TierRates {
	ol := rates(20, 14, 8, 2)
	edge := rates(28, 19, 11, 2.5)
	olb := rates(26, 18, 10, 2.2)
	return map[string]TierRates{
		"QB":   rates(52, 35, 22, 4),
		"RB":   rates(14, 9, 5, 1.5),
		"HB":   rates(14, 9, 5, 1.5),
		"FB":   rates(4, 2.5, 1.5, 1),
		"WR":   rates(28, 20, 12, 2.5),
		"TE":   rates(16, 11, 6, 1.8),
		"LT":   rates(26, 18, 11, 2.5),
		"RT":   rates(22, 15, 9, 2.2),
		"OT":   rates(22, 15, 9, 2.2),
		"LG":   ol,
		"RG":   ol,
		"OG":   ol,
		"C":    rates(18, 12, 7, 2),
		"DE":   edge,
		"EDGE": edge,
		"LOLB": olb,
		"ROLB": olb,
		"OLB":  olb,
		"DT":   rates(24, 16, 9, 2.2),
		"NT":   rates(20, 13, 7, 2),
		"MLB":  rates(18, 12, 7, 1.8),
		"ILB":  rates(18, 12, 7, 1.8),
		"LB":   rates(18, 12, 7, 1.8),
		"CB":   rates(22, 15, 9, 2),
		"FS":   rates(17, 11, 6, 1.8),
		"SS":   rates(16, 10, 6, 1.8),
		"S":    rates(16, 10, 6, 1.8),
		"K":    rates(6, 4, 2.5, 1.2),
		"P":    rates(4, 3, 2, 1.1),
		"LS":   rates(1.5, 1.3, 1.2, 1.0),
	}
}

func defaultPositionGroups() map[string]string {
	return map[string]string{
		"QB": "QB",
		"RB": "RB", "HB": "RB", "FB": "RB",
		"WR": "WR",
		"TE": "TE",
		"LT": "OT", "RT": "OT", "OT": "OT",
		"LG": "IOL", "RG": "IOL", "OG": "IOL", "C": "IOL",
		"DE": "EDGE", "LOLB": "EDGE", "ROLB": "EDGE", "OLB": "EDGE", "EDGE": "EDGE",
		"DT": "DT", "NT": "DT",
		"MLB": "LB", "ILB": "LB", "LB": "LB",
		"CB": "CB",
		"FS": "S", "SS": "S", "S": "S",
		"K": "ST", "P": "ST", "LS": "ST",
	}
}

func defaultMarketRates() map[string]TierRates {
	return map[string]TierRates{
		"QB":   rates(45, 30, 19, 3.5),
		"RB":   rates(12, 8, 4.5, 1.3),
		"WR":   rates(25, 18, 11, 2.3),
		"TE":   rates(14, 10, 5.5, 1.6),
		"OT":   rates(22, 15, 9, 2.2),
		"IOL":  rates(19, 13, 7.5, 1.9),
		"EDGE": rates(24, 16, 9.5, 2.2),
		"DT":   rates(21, 14, 8, 2),
		"LB":   rates(17, 11, 6.5, 1.7),
		"CB":   rates(20, 14, 8, 1.9),
		"S":    rates(16, 10, 5.8, 1.7),
		"ST":   rates(4, 3, 2, 1.1),
	}
}

func defaultMarketHeat() map[string]float64 {
	return map[string]float64{
		"QB":   1.20,
		"RB":   1.00,
		"WR":   1.10,
		"TE":   1.00,
		"OT":   1.10,
		"IOL":  0.95,
		"EDGE": 1.18,
		"DT":   1.05,
		"LB":   0.95,
		"CB":   1.08,
		"S":    0.95,
		"ST":   0.80,
	}
}

func defaultPeakAges() map[string]AgeRange {
	ol := AgeRange{Start: 26, End: 31}
	edge := AgeRange{Start: 25, End: 29}
	st := AgeRange{Start: 26, End: 36}
	return map[string]AgeRange{
		"QB": {Start: 27, End: 33},
		"RB": {Start: 23, End: 27}, "HB": {Start: 23, End: 27},
		"FB": {Start: 24, End: 28},
		"WR": {Start: 25, End: 29},
		"TE": {Start: 25, End: 30},
		"LT": ol, "RT": ol, "OT": ol, "LG": ol, "RG": ol, "OG": ol, "C": ol,
		"DE": edge, "EDGE": edge, "LOLB": edge, "ROLB": edge, "OLB": edge,
		"DT": {Start: 25, End: 30}, "NT": {Start: 25, End: 30},
		"MLB": {Start: 25, End: 29}, "ILB": {Start: 25, End: 29}, "LB": {Start: 25, End: 29},
		"CB": {Start: 24, End: 28},
		"FS": {Start: 25, End: 29}, "SS": {Start: 25, End: 29}, "S": {Start: 25, End: 29},
		"K": st, "P": st, "LS": st,
	}
}

// Archetype peaks are keyed by position group, then archetype name.
func defaultArchetypePeaks() map[string]map[string]AgeRange {
	return map[string]map[string]AgeRange{
		"QB": {
			"pocket passer": {Start: 28, End: 34},
			"field general": {Start: 28, End: 34},
			"scrambler":     {Start: 26, End: 30},
			"improviser":    {Start: 26, End: 31},
		},
		"RB": {
			"power back":     {Start: 23, End: 26},
			"elusive back":   {Start: 23, End: 26},
			"receiving back": {Start: 24, End: 28},
		},
		"WR": {
			"deep threat": {Start: 24, End: 28},
			"slot":        {Start: 25, End: 30},
			"possession":  {Start: 26, End: 31},
		},
		"TE": {
			"blocking":        {Start: 26, End: 31},
			"vertical threat": {Start: 25, End: 29},
		},
		"EDGE": {
			"speed rusher": {Start: 24, End: 28},
			"power rusher": {Start: 25, End: 30},
		},
		"LB": {
			"run stopper":   {Start: 25, End: 30},
			"pass coverage": {Start: 24, End: 28},
		},
		"CB": {
			"man to man": {Start: 24, End: 27},
			"zone":       {Start: 25, End: 30},
		},
		"S": {
			"run support": {Start: 25, End: 30},
			"zone":        {Start: 25, End: 30},
		},
	}
}

// Breakpoints are the league values at p0, p10, p25, p50, p75, p90 and p100.
func defaultBenchmarks() map[string][]Benchmark {
	interceptionsThrown := Benchmark{Stat: "interceptions", PerGame: true, Inverted: true, Required: true,
		Breakpoints: [7]float64{0, 0.30, 0.45, 0.60, 0.75, 0.95, 1.60}}
	drops := Benchmark{Stat: "drops", PerGame: true, Inverted: true,
		Breakpoints: [7]float64{0, 0.10, 0.20, 0.30, 0.40, 0.55, 0.90}}
	olLine := []Benchmark{
		{Stat: "sacks_allowed", PerGame: true, Inverted: true, Required: true,
			Breakpoints: [7]float64{0, 0.05, 0.10, 0.18, 0.28, 0.40, 0.70}},
		{Stat: "penalties", PerGame: true, Inverted: true, Required: true,
			Breakpoints: [7]float64{0, 0.10, 0.20, 0.30, 0.42, 0.55, 0.90}},
		{Stat: "pass_block_win_rate",
			Breakpoints: [7]float64{70, 80, 84, 88, 91, 93, 97}},
	}
	defInterceptions := Benchmark{Stat: "def_interceptions", PerGame: true, Required: true,
		Breakpoints: [7]float64{0, 0.02, 0.05, 0.10, 0.17, 0.25, 0.45}}
	passesDefended := Benchmark{Stat: "passes_defended", PerGame: true,
		Breakpoints: [7]float64{0, 0.20, 0.40, 0.60, 0.85, 1.10, 1.60}}

	return map[string][]Benchmark{
		"QB": {
			{Stat: "passing_yards", PerGame: true, Required: true,
				Breakpoints: [7]float64{120, 170, 205, 240, 270, 295, 340}},
			{Stat: "passing_tds", PerGame: true, Required: true,
				Breakpoints: [7]float64{0.3, 0.8, 1.1, 1.5, 1.85, 2.2, 2.8}},
			interceptionsThrown,
			{Stat: "completion_pct", Required: true,
				Breakpoints: [7]float64{52, 58, 62, 65, 67.5, 69.5, 74}},
			{Stat: "yards_per_attempt",
				Breakpoints: [7]float64{5.0, 6.0, 6.6, 7.1, 7.6, 8.1, 9.2}},
			{Stat: "passer_rating",
				Breakpoints: [7]float64{65, 78, 85, 92, 99, 105, 118}},
		},
		"RB": {
			{Stat: "rushing_yards", PerGame: true, Required: true,
				Breakpoints: [7]float64{15, 30, 45, 60, 75, 90, 120}},
			{Stat: "rushing_tds", PerGame: true, Required: true,
				Breakpoints: [7]float64{0, 0.1, 0.2, 0.35, 0.5, 0.7, 1.1}},
			{Stat: "yards_per_carry", Required: true,
				Breakpoints: [7]float64{3.0, 3.6, 3.9, 4.3, 4.7, 5.1, 6.0}},
			{Stat: "receiving_yards", PerGame: true,
				Breakpoints: [7]float64{0, 5, 10, 18, 28, 38, 60}},
			{Stat: "fumbles", PerGame: true, Inverted: true,
				Breakpoints: [7]float64{0, 0.02, 0.05, 0.08, 0.12, 0.18, 0.35}},
		},
		"WR": {
			{Stat: "receptions", PerGame: true, Required: true,
				Breakpoints: [7]float64{1, 2, 3, 4.3, 5.5, 6.5, 8.5}},
			{Stat: "receiving_yards", PerGame: true, Required: true,
				Breakpoints: [7]float64{10, 25, 38, 55, 72, 88, 115}},
			{Stat: "receiving_tds", PerGame: true, Required: true,
				Breakpoints: [7]float64{0, 0.1, 0.2, 0.3, 0.45, 0.6, 0.9}},
			drops,
		},
		"TE": {
			{Stat: "receptions", PerGame: true, Required: true,
				Breakpoints: [7]float64{0.5, 1.2, 2, 3, 4.2, 5.3, 7.5}},
			{Stat: "receiving_yards", PerGame: true, Required: true,
				Breakpoints: [7]float64{5, 12, 22, 33, 48, 62, 90}},
			{Stat: "receiving_tds", PerGame: true,
				Breakpoints: [7]float64{0, 0.05, 0.12, 0.2, 0.32, 0.45, 0.75}},
			drops,
		},
		"OT":  olLine,
		"IOL": olLine,
		"EDGE": {
			{Stat: "sacks", PerGame: true, Required: true,
				Breakpoints: [7]float64{0, 0.1, 0.2, 0.35, 0.55, 0.75, 1.2}},
			{Stat: "tackles_for_loss", PerGame: true, Required: true,
				Breakpoints: [7]float64{0, 0.15, 0.3, 0.45, 0.65, 0.85, 1.3}},
			{Stat: "qb_hits", PerGame: true,
				Breakpoints: [7]float64{0, 0.3, 0.6, 0.9, 1.3, 1.7, 2.5}},
			{Stat: "tackles", PerGame: true,
				Breakpoints: [7]float64{0.5, 1.5, 2.2, 3, 3.8, 4.6, 6}},
		},
		"DT": {
			{Stat: "sacks", PerGame: true, Required: true,
				Breakpoints: [7]float64{0, 0.05, 0.12, 0.22, 0.35, 0.55, 1.0}},
			{Stat: "tackles_for_loss", PerGame: true, Required: true,
				Breakpoints: [7]float64{0, 0.1, 0.2, 0.35, 0.5, 0.7, 1.1}},
			{Stat: "qb_hits", PerGame: true,
				Breakpoints: [7]float64{0, 0.2, 0.4, 0.65, 0.95, 1.3, 2.0}},
			{Stat: "tackles", PerGame: true,
				Breakpoints: [7]float64{0.5, 1.2, 1.8, 2.5, 3.2, 4, 5.5}},
		},
		"LB": {
			{Stat: "tackles", PerGame: true, Required: true,
				Breakpoints: [7]float64{1, 3, 4.5, 6, 7.5, 9, 12}},
			{Stat: "tackles_for_loss", PerGame: true, Required: true,
				Breakpoints: [7]float64{0, 0.1, 0.2, 0.35, 0.5, 0.7, 1.1}},
			{Stat: "sacks", PerGame: true,
				Breakpoints: [7]float64{0, 0.02, 0.05, 0.12, 0.22, 0.35, 0.7}},
			{Stat: "passes_defended", PerGame: true,
				Breakpoints: [7]float64{0, 0.05, 0.12, 0.25, 0.38, 0.5, 0.8}},
		},
		"CB": {
			{Stat: "passes_defended", PerGame: true, Required: true,
				Breakpoints: passesDefended.Breakpoints},
			defInterceptions,
			{Stat: "tackles", PerGame: true,
				Breakpoints: [7]float64{1, 2, 3, 4, 4.8, 5.5, 7}},
			{Stat: "completion_pct_allowed", Inverted: true,
				Breakpoints: [7]float64{48, 55, 59, 63, 67, 70, 78}},
		},
		"S": {
			{Stat: "tackles", PerGame: true, Required: true,
				Breakpoints: [7]float64{1.5, 3, 4, 5, 6, 7, 9}},
			defInterceptions,
			passesDefended,
		},
		"K": {
			{Stat: "fg_pct", Required: true,
				Breakpoints: [7]float64{70, 78, 82, 86, 89, 92, 97}},
			{Stat: "xp_pct",
				Breakpoints: [7]float64{88, 92, 94, 96, 98, 99, 100}},
		},
		"P": {
			{Stat: "punt_avg", Required: true,
				Breakpoints: [7]float64{40, 43, 44.5, 46, 47.5, 48.5, 51}},
			{Stat: "net_punt_avg",
				Breakpoints: [7]float64{36, 38.5, 40, 41.5, 43, 44, 46}},
		},
	}
}

// Key attribute weights per position group. Each set sums to one.
func defaultKeyAttributes() map[string]map[string]float64 {
	line := map[string]float64{"pass_block": 0.30, "run_block": 0.30, "strength": 0.20, "awareness": 0.20}
	return map[string]map[string]float64{
		"QB": {
			"throw_power": 0.15, "throw_accuracy_short": 0.20, "throw_accuracy_mid": 0.20,
			"throw_accuracy_deep": 0.15, "awareness": 0.20, "play_action": 0.10,
		},
		"RB": {
			"speed": 0.20, "acceleration": 0.15, "agility": 0.15,
			"carrying": 0.15, "break_tackle": 0.15, "ball_carrier_vision": 0.20,
		},
		"WR": {
			"speed": 0.20, "catching": 0.20, "route_running": 0.25,
			"release": 0.15, "catch_in_traffic": 0.10, "spectacular_catch": 0.10,
		},
		"TE": {
			"catching": 0.25, "route_running": 0.15, "run_block": 0.20,
			"pass_block": 0.10, "speed": 0.15, "strength": 0.15,
		},
		"OT":  line,
		"IOL": line,
		"EDGE": {
			"power_moves": 0.20, "finesse_moves": 0.20, "block_shedding": 0.20, "speed": 0.20, "pursuit": 0.20,
		},
		"DT": {
			"power_moves": 0.25, "block_shedding": 0.25, "strength": 0.25, "finesse_moves": 0.10, "pursuit": 0.15,
		},
		"LB": {
			"tackle": 0.20, "pursuit": 0.20, "play_recognition": 0.20,
			"zone_coverage": 0.15, "block_shedding": 0.10, "speed": 0.15,
		},
		"CB": {
			"man_coverage": 0.25, "zone_coverage": 0.25, "speed": 0.20, "press": 0.10, "play_recognition": 0.20,
		},
		"S": {
			"zone_coverage": 0.25, "speed": 0.15, "play_recognition": 0.25, "tackle": 0.15, "man_coverage": 0.20,
		},
		"ST": {"kick_power": 0.50, "kick_accuracy": 0.50},
	}
}

// Archetype attribute weights override the group's key attributes.
func defaultArchetypeAttributes() map[string]map[string]map[string]float64 {
	return map[string]map[string]map[string]float64{
		"QB": {
			"scrambler": {
				"speed": 0.20, "throw_on_run": 0.20, "throw_accuracy_short": 0.20,
				"throw_accuracy_mid": 0.15, "awareness": 0.15, "agility": 0.10,
			},
		},
		"RB": {
			"receiving back": {
				"catching": 0.25, "route_running": 0.20, "speed": 0.20, "agility": 0.15, "ball_carrier_vision": 0.20,
			},
		},
		"EDGE": {
			"speed rusher": {"speed": 0.30, "finesse_moves": 0.30, "acceleration": 0.20, "pursuit": 0.20},
		},
		"CB": {
			"man to man": {"man_coverage": 0.40, "press": 0.20, "speed": 0.25, "play_recognition": 0.15},
		},
	}
}
