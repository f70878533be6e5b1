package scene

import (
	"image/color"
	"math"
	"time"

	"pomodungeon/internal/scene/geom"
	"pomodungeon/internal/scene/signal"
)

func rect(x, y, w, h float64) geom.Rect {
	return geom.Rect{X: x, Y: y, W: w, H: h}
}

func dot(surface Surface, x, y float64, fill color.NRGBA) {
	surface.FillRect(rect(x, y, 1, 1), fill)
}

func (scene *Scene) randi(low, high int) int {
	return low + scene.rng.Intn(high-low+1)
}

func (scene *Scene) drawBackground(surface Surface) {
	t := scene.time
	surface.FillRect(rect(0, 0, Width, Height), colorSky)

	surface.SetAlpha(0.9)
	surface.FillEllipse(256, 42, 26, 26, colorMoon)
	surface.SetAlpha(1)

	hillOffset := math.Floor(math.Mod(t*8, Width))
	for i := -1; i < 3; i++ {
		baseX := float64(i)*Width - hillOffset
		surface.FillRect(rect(baseX, 72, Width, 50), colorHills)
		for x := 0; x < Width; x += 3 {
			height := float64(10 + (x*7+i*31+310)%18)
			surface.FillRect(rect(baseX+float64(x), 72-height, 3, height), colorHills)
		}
	}

	treeOffset := math.Floor(math.Mod(t*16, Width))
	for i := -1; i < 3; i++ {
		baseX := float64(i)*Width - treeOffset
		for x := 0; x < Width; x += 10 {
			trunkX := baseX + float64(x)
			trunkHeight := float64(18 + (x*13+i*17+170)%14)
			surface.FillRect(rect(trunkX, 92, 2, trunkHeight), colorTrunk)
			surface.FillRect(rect(trunkX-4, 86, 10, 8), colorCanopy)
			surface.FillRect(rect(trunkX-2, 82, 6, 6), colorCanopy)
		}
	}

	surface.FillRect(rect(0, 132, Width, 48), colorGround)

	moundX := float64(Width/2 - 72)
	surface.FillRect(rect(moundX, 118, 144, 20), colorMound)
	for x := 0; x < 144; x++ {
		height := 8 + math.Floor(6*math.Sin(float64(x)/144*math.Pi))
		surface.FillRect(rect(moundX+float64(x), 118-height, 1, height), colorMound)
	}

	for i := 0; i < 220; i++ {
		fill := colorGrassDark
		if i%3 == 0 {
			fill = colorGrassLight
		}
		dot(surface, float64((i*17)%Width), float64(132+(i*29)%16), fill)
	}
}

func (scene *Scene) drawAmbience(surface Surface) {
	t := scene.time
	for i := 0; i < 16; i++ {
		x := float64((i*37 + int(math.Floor(t*20))) % Width)
		y := float64(70 + (i*19)%60)
		twinkle := 0.35 + 0.65*math.Sin(t*3+float64(i))
		surface.SetAlpha(0.2 + 0.2*twinkle)
		dot(surface, x, y, colorFirefly)
	}
	surface.SetAlpha(1)
}

func (scene *Scene) drawAvatar(surface Surface) {
	if scene.cast == nil {
		return
	}
	pose := scene.cast.Pose(scene.sceneDuration(), 0, false)
	bounds := scene.gate.Bounds()
	drawFrame(surface, pose.Hero, rect(bounds.X-78, bounds.Bottom()-44, 48, 48), false)
}

func (scene *Scene) drawTorches(surface Surface, intensity float64) {
	bounds := scene.gate.Bounds()
	scene.drawTorch(surface, bounds.X-18, bounds.Y+18, intensity)
	scene.drawTorch(surface, bounds.X+bounds.W+16, bounds.Y+18, intensity)
}

func (scene *Scene) drawTorch(surface Surface, tx, ty, intensity float64) {
	flicker := 0.6 + 0.4*math.Sin(scene.time*14+tx*0.03)
	hot := geom.Clamp(intensity*(0.75+0.25*flicker), 0, 1)

	surface.FillRect(rect(tx, ty+10, 3, 20), colorIron)
	surface.FillRect(rect(tx-2, ty+16, 7, 2), colorIronLight)
	surface.FillRect(rect(tx-1, ty+18, 5, 2), colorIron)
	surface.FillRect(rect(tx-1, ty+6, 5, 6), colorIronLight)
	surface.FillRect(rect(tx, ty+7, 3, 4), colorIronHigh)

	if hot > 0.05 {
		surface.SetAlpha(0.08 + 0.16*hot)
		surface.FillEllipse(tx+1, ty+4, 10, 8, colorHalo)
		surface.SetAlpha(1)
	}

	baseHeight := 6 + math.Floor(4*flicker)
	flameHeight := math.Floor(baseHeight * (0.7 + 0.6*hot))
	for y := 0; y < int(flameHeight); y++ {
		width := float64(1 + max(0, 2-y/2))
		offset := float64(y % 2)
		surface.FillRect(rect(tx-width+offset+2, ty+6-float64(y), width*2-1, 1), colorFlame)
	}

	if hot > 0.2 {
		half := math.Floor(flameHeight / 2)
		surface.FillRect(rect(tx+1, ty+3-half, 1, 2), colorFlameCore)
		surface.FillRect(rect(tx+1, ty+1-half, 1, 1), colorFlameCore)
	}

	if hot > 0.35 && scene.rng.Float64() < 0.22 {
		surface.SetAlpha(0.35)
		dot(surface, tx+float64(scene.randi(-4, 6)), ty+float64(scene.randi(-6, 4)), colorFlameCore)
		surface.SetAlpha(1)
	}
}

func (scene *Scene) drawGate(surface Surface, signals signal.Interactivity) {
	bounds := scene.gate.Bounds()
	door := scene.gate.Door()
	eased := scene.gate.Eased()
	pulse := 0.6 + 0.4*math.Sin(scene.time*7)
	halfWidth := math.Floor(door.W / 2)
	slide := scene.gate.DoorSlide()

	if signals.Glowing() {
		surface.SetAlpha(0.08 + 0.08*pulse + 0.1*eased)
		surface.FillEllipse(bounds.CenterX(), bounds.Y+bounds.H*0.62, 50, 28, colorGlow)
		surface.SetAlpha(1)
	}

	surface.FillRect(rect(bounds.X-8, bounds.Y-6, bounds.W+16, bounds.H+12), colorStoneOuter)
	surface.FillRect(rect(bounds.X-6, bounds.Y-4, bounds.W+12, bounds.H+8), colorStoneInner)

	surface.FillRect(rect(bounds.X-10, bounds.Y+16, 10, bounds.H+2), colorColumn)
	surface.FillRect(rect(bounds.X+bounds.W, bounds.Y+16, 10, bounds.H+2), colorColumn)
	surface.FillRect(rect(bounds.X-9, bounds.Y+17, 8, bounds.H), colorIronLight)
	surface.FillRect(rect(bounds.X+bounds.W+1, bounds.Y+17, 8, bounds.H), colorIronLight)

	for x := -2; x < int(bounds.W)+2; x++ {
		curve := math.Floor(7 * math.Sin(float64(x+2)/(bounds.W+4)*math.Pi))
		dot(surface, bounds.X+float64(x), bounds.Y+14-curve, colorArch)
		if x%3 == 0 {
			dot(surface, bounds.X+float64(x), bounds.Y+15-curve, colorIronLight)
		}
	}

	for i := 0; i < 220; i++ {
		bx := bounds.X - 6 + float64((i*31)%int(bounds.W+12))
		by := bounds.Y - 2 + float64((i*47)%int(bounds.H+8))
		if bx > door.X && bx < door.X+door.W && by > door.Y && by < door.Bottom() {
			continue
		}
		fill := colorBrick
		switch {
		case i%5 == 0:
			fill = colorIronHigh
		case i%9 == 0:
			fill = colorBrickDark
		}
		dot(surface, bx, by, fill)
	}

	surface.FillRect(door, colorDoorway)
	if signals.Glowing() {
		depth := 0.25 + 0.75*eased
		for i := 0; i < 7; i++ {
			inset := float64(i + 1)
			surface.SetAlpha((0.01 + float64(i)*0.006) * depth)
			surface.FillRect(door.Inset(inset, inset, inset, inset), colorInnerGlow)
		}
		surface.SetAlpha(1)
	}

	const doorPad = 2
	doorY := door.Y + 6
	doorHeight := door.H - 12
	left := rect(door.X+doorPad-slide, doorY, halfWidth-doorPad, doorHeight)
	right := rect(door.X+halfWidth+slide, doorY, halfWidth-doorPad, doorHeight)

	if eased < 0.995 {
		for _, leaf := range []geom.Rect{left, right} {
			surface.FillRect(leaf, colorWood)
			surface.FillRect(leaf.Inset(1, 1, 1, 1), colorWoodShade)
			surface.FillRect(rect(leaf.X+2, leaf.Y+2, 2, leaf.H-4), colorPlank)
			for band := 0; band < 3; band++ {
				by := leaf.Y + 6 + float64(band)*math.Floor((leaf.H-12)/2)
				surface.FillRect(rect(leaf.X, by, leaf.W, 1), colorIron)
				if band == 1 {
					for rivet := 0; rivet < 4; rivet++ {
						dot(surface, leaf.X+3+float64(rivet*6), by, colorIronHigh)
					}
				}
			}
		}
		surface.FillRect(rect(door.X+halfWidth-1-slide, doorY, 2, doorHeight), colorSeam)
		surface.FillRect(rect(door.X+halfWidth-1+slide, doorY, 2, doorHeight), colorSeam)
	}

	surface.SetAlpha(0.35)
	surface.FillEllipse(bounds.CenterX(), bounds.Bottom()+10, 44, 10, colorShadow)
	surface.SetAlpha(1)
}

func (scene *Scene) drawMist(surface Surface, signals signal.Interactivity) {
	fill := colorMistPlain
	if signals.Active() {
		fill = colorMistMagic
	}
	for _, particle := range scene.mist.Particles() {
		alpha := 0.18 * particle.Alpha() * (0.6 + 0.4*math.Sin(scene.time*3+particle.Seed))
		surface.SetAlpha(alpha)

		size := float64(particle.Size)
		surface.FillRect(rect(particle.X, particle.Y, size, 1), fill)
		surface.FillRect(rect(particle.X-1, particle.Y+1, math.Max(1, size-1), 1), fill)
		if size >= 3 {
			surface.FillRect(rect(particle.X+1, particle.Y-1, size-2, 1), fill)
		}
		if scene.rng.Float64() < 0.22 {
			dot(surface, particle.X+float64(scene.randi(-1, particle.Size)), particle.Y+float64(scene.randi(-1, 2)), fill)
		}
	}
	surface.SetAlpha(1)
}

func (scene *Scene) drawRain(surface Surface) {
	surface.SetAlpha(0.35)
	for _, drop := range scene.rain.Drops() {
		surface.FillRect(rect(drop.X, drop.Y, 1, float64(drop.Length)), colorRain)
	}
	surface.SetAlpha(1)
}

func (scene *Scene) drawBolt(surface Surface) {
	bolt := scene.lightning.Bolt()
	if len(bolt) < 2 {
		return
	}
	surface.SetAlpha(geom.Clamp(scene.lightning.Brightness()*2, 0, 1))
	for index := 1; index < len(bolt); index++ {
		from, to := bolt[index-1], bolt[index]
		steps := int(math.Max(math.Abs(to.Y-from.Y), math.Abs(to.X-from.X)))
		for step := 0; step <= steps; step++ {
			ratio := 0.0
			if steps > 0 {
				ratio = float64(step) / float64(steps)
			}
			dot(surface, geom.Lerp(from.X, to.X, ratio), geom.Lerp(from.Y, to.Y, ratio), colorBolt)
		}
	}
	surface.SetAlpha(1)
}

func (scene *Scene) drawFlash(surface Surface) {
	brightness := scene.lightning.Brightness()
	if brightness <= 0 {
		return
	}
	surface.SetAlpha(brightness)
	surface.FillRect(rect(0, 0, Width, Height), colorFlash)
	surface.SetAlpha(1)
}

func (scene *Scene) drawVignette(surface Surface) {
	surface.SetAlpha(0.35)
	surface.FillRect(rect(0, 0, Width, 6), colorShadow)
	surface.FillRect(rect(0, Height-6, Width, 6), colorShadow)
	surface.SetAlpha(1)
}

func (scene *Scene) drawBattle(surface Surface) {
	surface.FillRect(rect(0, 0, Width, Height), colorDoorway)

	var pose BattlePose
	if scene.cast != nil {
		if backdrop := scene.cast.Backdrop(); backdrop != nil {
			surface.DrawImage(backdrop, backdrop.Bounds(), rect(0, 0, Width, Height), false)
		}
		moving := scene.battle.Active && !scene.battle.Paused
		battleTime := scene.time - scene.battleStart
		pose = scene.cast.Pose(scene.sceneDuration(), durationOf(battleTime), moving)
	}

	const runOffset = 70
	drawFrame(surface, pose.Hero, rect(30+pose.HeroAdvance*runOffset, 60, 96, 96), false)
	drawFrame(surface, pose.Monster, rect(190, 60, 96, 96), true)

	monsterHealth, heroHealth := scene.health()
	drawBar(surface, rect(12, 12, 100, 6), heroHealth, colorBarHero)
	drawBar(surface, rect(Width-112, 12, 100, 6), monsterHealth, colorBarMonster)
}

// health returns the monster and hero health in [0,1].
func (scene *Scene) health() (float64, float64) {
	progress := geom.Clamp(scene.battle.Progress, 0, 1)
	if scene.battle.Break {
		return 0, 1 - progress
	}
	return 1 - progress, 1
}

func drawBar(surface Surface, bounds geom.Rect, fraction float64, fill color.NRGBA) {
	surface.FillRect(bounds.Inset(-1, -1, -1, -1), colorBarFrame)
	surface.FillRect(bounds, colorBarBack)
	width := math.Floor(bounds.W * geom.Clamp(fraction, 0, 1))
	if width > 0 {
		surface.FillRect(rect(bounds.X, bounds.Y, width, bounds.H), fill)
	}
}

func drawFrame(surface Surface, frame Frame, dst geom.Rect, flip bool) {
	if frame.Image == nil {
		return
	}
	source := frame.Source
	if source.Empty() {
		source = frame.Image.Bounds()
	}
	surface.DrawImage(frame.Image, source, dst, flip)
}

func durationOf(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
