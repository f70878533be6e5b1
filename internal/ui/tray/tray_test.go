package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBattleStateDrivesMenu(t *testing.T) {
	fled := 0
	manager := New(nil, Callbacks{OnFlee: func() { fled++ }})

	assert.Equal(t, "Status: resting", manager.statusItem.Label)
	assert.True(t, manager.fleeItem.Disabled)

	manager.SetInBattle(true)
	manager.SetStatus("Essay 12:00")
	manager.SetPaused(true)
	assert.False(t, manager.fleeItem.Disabled)
	assert.Equal(t, "Resume battle", manager.pauseItem.Label)
	assert.Equal(t, "Status: Essay 12:00 (paused)", manager.statusItem.Label)

	manager.fleeItem.Action()
	assert.Equal(t, 1, fled)

	manager.SetInBattle(false)
	assert.True(t, manager.pauseItem.Disabled)
	assert.Equal(t, "Pause battle", manager.pauseItem.Label)

	manager.SetCoins(35)
	assert.Equal(t, "Coins: 35", manager.coinsItem.Label)
	assert.Len(t, manager.Menu().Items, 10)
}

func TestNilCallbacksAreIgnored(t *testing.T) {
	manager := New(nil, Callbacks{})
	assert.NotPanics(t, func() {
		for _, item := range manager.Menu().Items {
			if item.Action != nil {
				item.Action()
			}
		}
	})
}
