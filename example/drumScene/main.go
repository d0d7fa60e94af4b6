package main

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/akmonengine/drum"
	"github.com/akmonengine/drum/actor"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	ballCount       = 12
	ballRadius      = 10.0
	maxSpeed        = 120.0 // units/s, per axis at seeding
	circumradius    = 250.0
	sides           = 6
	angularVelocity = 0.4 // rad/s
	targetFrame     = time.Second / 60
)

type Scene struct {
	screen tcell.Screen
	world  *drum.World

	audioInit bool
	lastTick  time.Time
}

func NewScene() (*Scene, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}

	boundary := actor.NewBoundary(mgl64.Vec2{0, 0}, circumradius, sides, 0, angularVelocity)
	world := drum.NewWorld(boundary)

	// Seed balls inside the apothem so nothing starts in a wall
	apothem := circumradius * math.Cos(math.Pi/float64(sides))
	for i := 0; i < ballCount; i++ {
		r := (apothem - 2*ballRadius) * math.Sqrt(rand.Float64())
		angle := rand.Float64() * 2 * math.Pi
		position := mgl64.Vec2{r * math.Cos(angle), r * math.Sin(angle)}
		velocity := mgl64.Vec2{
			(rand.Float64()*2 - 1) * maxSpeed,
			(rand.Float64()*2 - 1) * maxSpeed,
		}

		world.AddBall(actor.NewBall(i, position, velocity, ballRadius))
	}

	s := &Scene{
		screen:   screen,
		world:    world,
		lastTick: time.Now(),
	}

	if err := s.initAudio(); err != nil {
		// Non-fatal, the scene can run silent
		log.Printf("audio initialization failed: %v", err)
	}

	world.Events.Subscribe(drum.WALL_HIT, func(drum.Event) {
		s.playHitSound()
	})

	return s, nil
}

func (s *Scene) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		s.audioInit = true
	}
	return err
}

func (s *Scene) playHitSound() {
	if !s.audioInit {
		return
	}

	sampleRate := beep.SampleRate(44100)
	duration := sampleRate.N(40 * time.Millisecond)
	sine, err := generators.SineTone(sampleRate, 660)
	if err != nil {
		return
	}

	speaker.Play(beep.Take(duration, sine))
}

// worldToScreen maps simulation coordinates to terminal cells. Terminal cells
// are roughly twice as tall as wide, so x gets double the scale.
func (s *Scene) worldToScreen(p mgl64.Vec2) (int, int) {
	width, height := s.screen.Size()

	scale := float64(height-2) / (2 * circumradius * 1.05)
	if horizontal := float64(width-2) / (4 * circumradius * 1.05); horizontal < scale {
		scale = horizontal
	}

	return width/2 + int(math.Round(p.X()*scale*2)),
		height/2 + int(math.Round(p.Y()*scale))
}

func (s *Scene) drawEdge(p1, p2 mgl64.Vec2, style tcell.Style) {
	x1, y1 := s.worldToScreen(p1)
	x2, y2 := s.worldToScreen(p2)

	steps := max(abs(x2-x1), abs(y2-y1))
	if steps == 0 {
		steps = 1
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x1 + int(math.Round(t*float64(x2-x1)))
		y := y1 + int(math.Round(t*float64(y2-y1)))
		s.screen.SetContent(x, y, '·', nil, style)
	}
}

func (s *Scene) draw() {
	s.screen.Clear()

	wallStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	vertices := s.world.Vertices()
	for i := range vertices {
		s.drawEdge(vertices[i], vertices[(i+1)%len(vertices)], wallStyle)
	}

	ballStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for _, ball := range s.world.Balls {
		x, y := s.worldToScreen(ball.Position)
		s.screen.SetContent(x, y, '●', nil, ballStyle)
	}

	s.screen.Show()
}

func (s *Scene) Run() {
	events := make(chan tcell.Event, 8)
	go func() {
		for {
			events <- s.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(targetFrame)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
			case *tcell.EventResize:
				s.screen.Sync()
			}
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(s.lastTick).Seconds()
			s.lastTick = now

			s.world.Step(dt)
			s.draw()
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func main() {
	scene, err := NewScene()
	if err != nil {
		log.Fatalf("scene setup failed: %v", err)
	}
	defer scene.screen.Fini()

	scene.Run()
}
