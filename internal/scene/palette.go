package scene

import (
	"image/color"
	"strconv"
)

func hex(value string) color.NRGBA {
	parsed, err := strconv.ParseUint(value[1:], 16, 32)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: uint8(parsed >> 16), G: uint8(parsed >> 8), B: uint8(parsed), A: 255}
}

var (
	colorSky        = hex("#0b1020")
	colorMoon       = hex("#1e2b64")
	colorHills      = hex("#121a3a")
	colorTrunk      = hex("#1a2320")
	colorCanopy     = hex("#172a22")
	colorGround     = hex("#141813")
	colorMound      = hex("#121611")
	colorGrassLight = hex("#1d2b1b")
	colorGrassDark  = hex("#1a2417")
	colorFirefly    = hex("#b7ffd6")

	colorIron      = hex("#1c1f26")
	colorIronLight = hex("#242a38")
	colorIronHigh  = hex("#2e3444")
	colorHalo      = hex("#ffd7a1")
	colorFlame     = hex("#ffb85a")
	colorFlameCore = hex("#fff1d2")

	colorStoneOuter = hex("#232836")
	colorStoneInner = hex("#1e2330")
	colorColumn     = hex("#1b202b")
	colorArch       = hex("#2a3040")
	colorBrick      = hex("#23283a")
	colorBrickDark  = hex("#171b25")
	colorDoorway    = hex("#07080c")
	colorGlow       = hex("#7cffc8")
	colorInnerGlow  = hex("#64ffb6")
	colorWood       = hex("#3a2f26")
	colorWoodShade  = hex("#342a22")
	colorPlank      = hex("#4a3b2f")
	colorSeam       = hex("#1c1a17")
	colorShadow     = hex("#000000")

	colorMistMagic = hex("#b7ffd6")
	colorMistPlain = hex("#aeb6c4")
	colorRain      = hex("#6f7fa8")
	colorBolt      = hex("#e8f0ff")
	colorFlash     = hex("#dfe8ff")

	colorBarBack    = hex("#1a1016")
	colorBarHero    = hex("#4ade80")
	colorBarMonster = hex("#ef4444")
	colorBarFrame   = hex("#0b0b10")
)
