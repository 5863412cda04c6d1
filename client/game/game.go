package game

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/cbodonnell/swipeduel/client/fonts"
	"github.com/cbodonnell/swipeduel/client/input"
	gamepkg "github.com/cbodonnell/swipeduel/pkg/game"
	"github.com/cbodonnell/swipeduel/pkg/game/constants"
	"github.com/cbodonnell/swipeduel/pkg/game/types"
	"github.com/cbodonnell/swipeduel/pkg/log"
	"github.com/cbodonnell/swipeduel/pkg/state"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	backgroundColor = color.RGBA{0x1e, 0x1e, 0x2e, 0xff}
	squareColor     = color.RGBA{0x4f, 0x8f, 0xe8, 0xff}
	circleColor     = color.RGBA{0xe8, 0x5f, 0x5c, 0xff}
	weaponColor     = color.RGBA{0xf2, 0xc1, 0x4e, 0xff}
	selectedColor   = color.White
	frozenColor     = color.RGBA{0x80, 0xc8, 0xff, 0x60}
)

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// gameManager owns the game state and is ticked from Update.
	gameManager *gamepkg.GameManager
	// stateManager holds the snapshot drawn by Draw.
	stateManager state.StateManager
	// snapshot is the last snapshot drawn.
	snapshot *types.Snapshot
}

type NewGameOptions struct {
	Debug        bool
	GameManager  *gamepkg.GameManager
	StateManager state.StateManager
}

func NewGame(opts NewGameOptions) ebiten.Game {
	return &Game{
		debug:        opts.Debug,
		gameManager:  opts.GameManager,
		stateManager: opts.StateManager,
	}
}

func (g *Game) Update() error {
	if input.IsNegativeJustPressed() {
		return ebiten.Termination
	}
	if input.IsDebugJustPressed() {
		g.debug = !g.debug
	}

	now := time.Now()
	if input.IsRestartJustPressed() {
		g.gameManager.Restart(now)
	}
	g.gameManager.Tick(now)

	snapshot, err := g.stateManager.Get(context.Background())
	if err != nil {
		log.Trace("No snapshot to draw: %v", err)
		return nil
	}
	g.snapshot = snapshot
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if g.snapshot == nil {
		return
	}

	for _, token := range g.snapshot.Tokens {
		drawToken(screen, token)
	}
	g.drawHUD(screen)

	if g.snapshot.Frozen {
		vector.DrawFilledRect(screen, 0, 0, float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy()), frozenColor, false)
		drawCentered(screen, "FROZEN", fonts.TTFLargeFont, float64(screen.Bounds().Dy())/3)
	}
	if g.snapshot.ResultText != "" {
		drawCentered(screen, g.snapshot.ResultText, fonts.TTFLargeFont, float64(screen.Bounds().Dy())/2)
	}
	if g.snapshot.Notice != "" {
		drawCentered(screen, g.snapshot.Notice, fonts.TTFNormalFont, float64(screen.Bounds().Dy())/2+48)
	}

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   FPS: %0.1f  TPS: %0.1f  round: %s", ebiten.ActualFPS(), ebiten.ActualTPS(), g.snapshot.RoundID))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return int(constants.ScreenWidth), int(constants.ScreenHeight)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	hud := fmt.Sprintf("%s  %s left: %d  streak: %d  time: %.0f",
		g.snapshot.Role, g.snapshot.SendableType, g.snapshot.SendableCount, g.snapshot.SendStreak, g.snapshot.RemainingSeconds)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(12, 24)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, hud, fonts.TTFSmallFont, op)
}

func drawToken(screen *ebiten.Image, token types.TokenSnapshot) {
	x, y := float32(token.X), float32(token.Y)
	size := float32(constants.ObjectSize)

	switch token.Type {
	case types.TokenTypeSquare.String():
		vector.DrawFilledRect(screen, x, y, size, size, squareColor, true)
	case types.TokenTypeCircle.String():
		vector.DrawFilledCircle(screen, x+size/2, y+size/2, size/2, circleColor, true)
	case types.TokenTypeWeapon.String():
		var path vector.Path
		path.MoveTo(x+size/2, y)
		path.LineTo(x+size, y+size/2)
		path.LineTo(x+size/2, y+size)
		path.LineTo(x, y+size/2)
		path.Close()
		vertices, indices := path.AppendVerticesAndIndicesForFilling(nil, nil)
		for i := range vertices {
			vertices[i].ColorR = float32(weaponColor.R) / 0xff
			vertices[i].ColorG = float32(weaponColor.G) / 0xff
			vertices[i].ColorB = float32(weaponColor.B) / 0xff
			vertices[i].ColorA = 1
		}
		screen.DrawTriangles(vertices, indices, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}

	if token.Selected {
		vector.StrokeRect(screen, x-2, y-2, size+4, size+4, 2, selectedColor, false)
	}
}

var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

func drawCentered(screen *ebiten.Image, s string, f font.Face, y float64) {
	bounds, _ := font.BoundString(f, s)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx())/2-float64(bounds.Max.X>>6)/2, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, s, f, op)
}
