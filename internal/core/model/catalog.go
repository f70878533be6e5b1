package model

import "fmt"

// StarterAvatar is unlocked for every new player.
const StarterAvatar = "knight_1"

// DungeonRoomCount is the number of battle backdrops.
const DungeonRoomCount = 6

// Avatar is a purchasable player skin. Dir is relative to the assets root and
// holds Idle.png, Run.png and Attack 1..3.png sheets.
type Avatar struct {
	ID   string
	Name string
	Cost int
	Dir  string
}

// Monster is an enemy sprite family.
type Monster struct {
	ID     string
	Name   string
	Dir    string
	Attack string
	Idle   string
	Hit    string
}

// Avatars is the shop catalog in display order.
var Avatars = []Avatar{
	{ID: "knight_1", Name: "Knight I", Cost: 0, Dir: "knight-character/Knight_1"},
	{ID: "knight_2", Name: "Knight II", Cost: 100, Dir: "knight-character/Knight_2"},
	{ID: "wizard", Name: "Wizard", Cost: 125, Dir: "characters/wizard"},
	{ID: "evil_wizard", Name: "Evil Wizard", Cost: 150, Dir: "characters/evil-wizard/Sprites"},
	{ID: "martial_hero", Name: "Martial Hero", Cost: 175, Dir: "characters/martial-hero/Sprites"},
	{ID: "fantasy_warrior", Name: "Fantasy Warrior", Cost: 200, Dir: "characters/fantasy-warrior/Sprites"},
	{ID: "knight_3", Name: "Knight III", Cost: 250, Dir: "knight-character/Knight_3"},
	{ID: "medieval_king_1", Name: "Medieval King I", Cost: 300, Dir: "characters/medieval-king-01"},
	{ID: "medieval_king_2", Name: "Medieval King II", Cost: 350, Dir: "characters/medieval-king-02/Sprites"},
}

// Monsters lists the monster sprite families.
var Monsters = []Monster{
	{ID: "goblin", Name: "Goblin", Dir: "monsters/goblin", Attack: "Attack3.png"},
	{ID: "skeleton", Name: "Skeleton", Dir: "monsters/skeleton", Attack: "Attack3.png"},
	{ID: "mushroom", Name: "Mushroom", Dir: "monsters/mushroom", Attack: "Attack3.png"},
	{ID: "flying_eye", Name: "Flying Eye", Dir: "monsters/flying-eye", Attack: "Attack3.png"},
}

// FindAvatar looks an avatar up by id.
func FindAvatar(id string) (Avatar, bool) {
	for _, avatar := range Avatars {
		if avatar.ID == id {
			return avatar, true
		}
	}
	return Avatar{}, false
}

// FindMonster looks a monster up by id, falling back to the goblin.
func FindMonster(id string) Monster {
	for _, monster := range Monsters {
		if monster.ID == id {
			return monster
		}
	}
	return Monsters[0]
}

// IdleSheet returns the idle sheet name, which defaults to the attack sheet.
func (monster Monster) IdleSheet() string {
	if monster.Idle != "" {
		return monster.Idle
	}
	return monster.Attack
}

// HitSheet returns the hit sheet name, which defaults to the attack sheet.
func (monster Monster) HitSheet() string {
	if monster.Hit != "" {
		return monster.Hit
	}
	return monster.Attack
}

// MonsterForPriority picks the monster a task of the given priority fights.
func MonsterForPriority(priority Priority) string {
	switch priority {
	case PriorityLow:
		return "mushroom"
	case PriorityHigh:
		return "skeleton"
	case PriorityUrgent:
		return "flying_eye"
	}
	return "goblin"
}

// DungeonRoomFile returns the backdrop image for a room index.
func DungeonRoomFile(room int) string {
	if room < 0 || room >= DungeonRoomCount {
		room = 0
	}
	return fmt.Sprintf("dungeon-rooms/dungeon-style-%d.jpeg", room+1)
}
