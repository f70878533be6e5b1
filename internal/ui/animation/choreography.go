package animation

import (
	"image"
	"time"

	"pomodungeon/internal/scene"
)

const (
	// AttackCooldown is the minimum length of one attack exchange.
	AttackCooldown = 5 * time.Second
	// AttackDelay separates the hero's return from the monster's answer.
	AttackDelay = 200 * time.Millisecond
	// hitThreshold is the share of the hero's swing after which the monster
	// shows its hit frames.
	hitThreshold   = 0.35
	monsterRecover = 400 * time.Millisecond
)

// Roster is the set of sheets one battle needs. Any sheet may be nil.
type Roster struct {
	HeroIdle    *Sheet
	HeroRun     *Sheet
	HeroAttacks []*Sheet

	MonsterAttack *Sheet
	MonsterIdle   *Sheet
	MonsterHit    *Sheet

	Backdrop image.Image
}

// Pose computes both combatants' frames. now drives idle loops; battle is
// the time since the fight began. A cycle runs the hero out, swings one of
// its attacks (rotating each cycle), runs it back, and then lets the monster
// counter-attack.
func (roster *Roster) Pose(now, battle time.Duration, moving bool) scene.BattlePose {
	if roster == nil {
		return scene.BattlePose{}
	}
	pose := scene.BattlePose{
		Hero:    roster.HeroIdle.Loop(now),
		Monster: roster.monsterIdle().Loop(now),
	}
	attacks := roster.attacks()
	if !moving || roster.HeroRun == nil || len(attacks) == 0 || battle < 0 {
		return pose
	}

	runDuration := roster.HeroRun.Duration()
	returnDuration := runDuration
	maxAttack := time.Duration(0)
	for _, sheet := range attacks {
		if sheet.Duration() > maxAttack {
			maxAttack = sheet.Duration()
		}
	}
	monsterAttack := roster.MonsterAttack.Duration()
	period := runDuration + maxAttack + returnDuration + AttackDelay + monsterAttack + monsterRecover
	if period < AttackCooldown {
		period = AttackCooldown
	}

	cycle := int(battle / period)
	elapsed := battle - time.Duration(cycle)*period
	attack := attacks[(cycle+1)%len(attacks)]
	attackDuration := attack.Duration()
	monsterStart := runDuration + attackDuration + returnDuration + AttackDelay

	swinging := false
	switch {
	case elapsed < runDuration:
		pose.Hero = roster.HeroRun.Loop(elapsed)
		pose.HeroAdvance = float64(elapsed) / float64(runDuration)
	case elapsed < runDuration+attackDuration:
		swinging = true
		pose.Hero = attack.Loop(elapsed - runDuration)
		pose.HeroAdvance = 1
	case elapsed < runDuration+attackDuration+returnDuration:
		back := elapsed - runDuration - attackDuration
		pose.Hero = roster.HeroRun.Loop(back)
		pose.HeroAdvance = 1 - float64(back)/float64(returnDuration)
	}

	monsterElapsed := elapsed - monsterStart
	switch {
	case roster.MonsterAttack != nil && monsterElapsed >= 0 && monsterElapsed < monsterAttack:
		pose.Monster = roster.MonsterAttack.Loop(monsterElapsed)
	case swinging && float64(elapsed-runDuration)/float64(attackDuration) >= hitThreshold:
		pose.Monster = roster.monsterHit().Loop(elapsed - runDuration)
	}
	return pose
}

func (roster *Roster) attacks() []*Sheet {
	attacks := make([]*Sheet, 0, len(roster.HeroAttacks))
	for _, sheet := range roster.HeroAttacks {
		if sheet != nil {
			attacks = append(attacks, sheet)
		}
	}
	return attacks
}

func (roster *Roster) monsterIdle() *Sheet {
	if roster.MonsterIdle != nil {
		return roster.MonsterIdle
	}
	return roster.MonsterAttack
}

func (roster *Roster) monsterHit() *Sheet {
	if roster.MonsterHit != nil {
		return roster.MonsterHit
	}
	return roster.MonsterAttack
}
