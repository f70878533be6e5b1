package animation

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sync"

	"pomodungeon/internal/core/model"
)

// heroAttackFiles are tried in order; missing ones are skipped.
var heroAttackFiles = []string{"Attack 1.png", "Attack 2.png", "Attack 3.png"}

// LoadImage decodes a PNG or JPEG file.
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadSheet decodes a sprite sheet.
func LoadSheet(path string) (*Sheet, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewSheet(img), nil
}

// LoadRoster loads every sheet of a battle concurrently. Missing files leave
// the matching sheet nil and are logged; only cancellation is an error.
func LoadRoster(ctx context.Context, assetsDir string, avatar model.Avatar, monster model.Monster, room int) (*Roster, error) {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		cache = make(map[string]*Sheet)
	)
	load := func(path string, assign func(*Sheet)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			sheet, err := LoadSheet(path)
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					log.Printf("[animation] %v", err)
				}
				return
			}
			mu.Lock()
			assign(sheet)
			mu.Unlock()
		}()
	}

	roster := &Roster{HeroAttacks: make([]*Sheet, len(heroAttackFiles))}
	heroDir := filepath.Join(assetsDir, filepath.FromSlash(avatar.Dir))
	load(filepath.Join(heroDir, "Idle.png"), func(sheet *Sheet) { roster.HeroIdle = sheet })
	load(filepath.Join(heroDir, "Run.png"), func(sheet *Sheet) { roster.HeroRun = sheet })
	for index, name := range heroAttackFiles {
		index := index
		load(filepath.Join(heroDir, name), func(sheet *Sheet) { roster.HeroAttacks[index] = sheet })
	}

	monsterDir := filepath.Join(assetsDir, filepath.FromSlash(monster.Dir))
	for _, name := range uniqueNames(monster.Attack, monster.IdleSheet(), monster.HitSheet()) {
		name := name
		load(filepath.Join(monsterDir, name), func(sheet *Sheet) { cache[name] = sheet })
	}

	var backdrop image.Image
	wg.Add(1)
	go func() {
		defer wg.Done()
		img, err := LoadImage(filepath.Join(assetsDir, filepath.FromSlash(model.DungeonRoomFile(room))))
		if err != nil {
			return
		}
		mu.Lock()
		backdrop = img
		mu.Unlock()
	}()

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	roster.MonsterAttack = cache[monster.Attack]
	roster.MonsterIdle = cache[monster.IdleSheet()]
	roster.MonsterHit = cache[monster.HitSheet()]
	roster.Backdrop = backdrop
	if roster.HeroIdle == nil {
		log.Printf("[animation] no idle sheet for %s in %s", avatar.ID, heroDir)
	}
	return roster, nil
}

func uniqueNames(names ...string) []string {
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	return unique
}
