// Package reward computes what a finished fight pays out and what it
// costs. Everything here is a pure function over the final CombatState
// and the balance table, called only once a winner is set; nothing in
// this package mutates combat state.
package reward

import (
	"github.com/LachyC123/bloodline-arena-sub002/internal/balance"
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

// Rewards is the payout for one finished fight. HypeBonusGold is the
// crowd's share of the purse and is already included in Gold.
type Rewards struct {
	Gold          int `json:"gold"`
	XP            int `json:"xp"`
	Renown        int `json:"renown"`
	HypeBonusGold int `json:"hype_bonus_gold"`
}

// InjuryRoll is the outcome of the loser's post-fight injury check. A
// fatal roll means the fighter dies of the wound.
type InjuryRoll struct {
	Injured bool        `json:"injured"`
	Fatal   bool        `json:"fatal"`
	Injury  game.Injury `json:"injury"`
}

// CalculateRewards returns the player's payout for a decided fight.
// Winners take the league's victory row plus the crowd bonus scaled by
// the fight's hype peak; losers take the flat consolation row. A state
// with no winner pays nothing.
func CalculateRewards(st *game.CombatState, league string, tun *balance.Tuning) Rewards {
	if st == nil || st.Winner == game.SideNone {
		return Rewards{}
	}
	row := tun.Rewards.League(league)
	if st.Winner != game.SidePlayer {
		return Rewards{Gold: row.LossGold, XP: row.LossXP, Renown: row.LossRenown}
	}
	bonus := st.HypePeak / tun.Rewards.HypeGoldDivisor
	return Rewards{
		Gold:          row.WinGold + bonus,
		XP:            row.WinXP,
		Renown:        row.WinRenown + st.HypePeak/tun.Rewards.HypeRenownDivisor,
		HypeBonusGold: bonus,
	}
}

// RollForInjury rolls the loser's injury for a decided fight. The
// winner never rolls. Draw order is fixed: injury chance, severity
// pick, then the death roll for severe wounds.
func RollForInjury(st *game.CombatState, r *rng.RNG, tun *balance.Tuning) InjuryRoll {
	if st == nil || st.Winner == game.SideNone {
		return InjuryRoll{}
	}
	if !r.Chance(tun.Injury.Chance) {
		return InjuryRoll{}
	}

	rows := tun.Injury.Rows
	weights := make([]float64, len(rows))
	for i, row := range rows {
		weights[i] = row.Weight
	}
	row := rows[r.WeightedPick(weights)]

	zone := woundZone(st)
	roll := InjuryRoll{
		Injured: true,
		Injury: game.Injury{
			Name:           injuryNames[zone][row.Severity],
			Zone:           zone,
			Severity:       row.Severity,
			PenaltyPercent: row.PenaltyPercent,
			FightsToHeal:   row.FightsToHeal,
		},
	}
	if row.Severity == game.InjurySevere && r.Chance(tun.Injury.DeathChance) {
		roll.Fatal = true
		roll.Injury.Name = fatalWounds[zone]
	}
	return roll
}

// GrantExperience adds xp to a fighter and applies any level-ups per
// the progression table. Gains land on both base and current stats so
// injury penalties keep applying on top. Returns levels gained.
func GrantExperience(f *game.Fighter, xp int, prog balance.ProgressTuning) int {
	f.Experience += xp
	if prog.XPPerLevel <= 0 {
		return 0
	}
	levels := 0
	for f.Experience >= prog.XPPerLevel {
		f.Experience -= prog.XPPerLevel
		f.Level++
		levels++
		f.Base.MaxHP += prog.HPPerLevel
		f.Current.MaxHP += prog.HPPerLevel
		if prog.AttackEvery > 0 && f.Level%prog.AttackEvery == 0 {
			f.Base.Attack++
			f.Current.Attack++
		}
		if prog.DefenseEvery > 0 && f.Level%prog.DefenseEvery == 0 {
			f.Base.Defense++
			f.Current.Defense++
		}
	}
	return levels
}

// woundZone is where the loser took the last damaging hit. The injury
// grows out of the blow that decided the fight; a fight decided
// without one, a forfeit or a pure bleed-out, wounds the body.
func woundZone(st *game.CombatState) game.TargetZone {
	for i := len(st.Log) - 1; i >= 0; i-- {
		e := st.Log[i]
		if e.Actor == st.Winner && e.Hit && e.Damage > 0 && e.Zone.Valid() {
			return e.Zone
		}
	}
	return game.ZoneBody
}

var injuryNames = map[game.TargetZone]map[game.InjurySeverity]string{
	game.ZoneHead: {
		game.InjuryMinor:   "Cracked Brow",
		game.InjurySerious: "Shattered Jaw",
		game.InjurySevere:  "Fractured Skull",
	},
	game.ZoneBody: {
		game.InjuryMinor:   "Bruised Ribs",
		game.InjurySerious: "Broken Ribs",
		game.InjurySevere:  "Pierced Lung",
	},
	game.ZoneLegs: {
		game.InjuryMinor:   "Twisted Ankle",
		game.InjurySerious: "Torn Knee",
		game.InjurySevere:  "Shattered Femur",
	},
}

var fatalWounds = map[game.TargetZone]string{
	game.ZoneHead: "Caved-In Skull",
	game.ZoneBody: "Run Through",
	game.ZoneLegs: "Severed Artery",
}
