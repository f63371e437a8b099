package ecpps_test

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rogerahuntley/ecpps"
)

// Sprite carries an opaque drawable handle; the world never inspects it.
type Sprite struct {
	Texture string
}

func (Sprite) Name() string { return "sprite" }

// spriteRenderer draws every sprite at its current position.
type spriteRenderer struct{}

func (spriteRenderer) Init(_ *ecpps.World) error   { return nil }
func (spriteRenderer) Update(_ *ecpps.World) error { return nil }

func (spriteRenderer) Render(w *ecpps.World) error {
	sprites, err := ecpps.GetStore[Sprite](w)
	if err != nil {
		return err
	}
	for id, spr := range sprites.All() {
		pos, err := ecpps.GetComponent[Position](w, id)
		if err != nil {
			continue
		}
		fmt.Printf("%s at (%g, %g)\n", spr.Texture, pos.X, pos.Y)
	}
	return nil
}

// Example shows a world running a movement system and a render system over a
// small scene.
func Example() {
	w, _ := ecpps.NewWorld(ecpps.WithLogLevel(zerolog.Disabled))

	_ = w.RegisterSystem(&MovementSystem{})
	_ = w.RegisterSystem(spriteRenderer{})

	player := w.CreateEntity()
	_ = ecpps.AddComponent(w, player, Position{X: 0, Y: 0})
	_ = ecpps.AddComponent(w, player, Velocity{X: 2, Y: 1})
	_ = ecpps.AddComponent(w, player, Sprite{Texture: "player.png"})

	scenery := w.CreateEntity()
	_ = ecpps.AddComponent(w, scenery, Position{X: 5, Y: 5})
	_ = ecpps.AddComponent(w, scenery, Sprite{Texture: "rock.png"})

	for i := 0; i < 3; i++ {
		_ = w.Update()
	}
	_ = w.Render()

	// Output:
	// player.png at (6, 3)
	// rock.png at (5, 5)
}

// Example_queries shows composing membership queries with And, Or, and Not.
func Example_queries() {
	w, _ := ecpps.NewWorld(ecpps.WithLogLevel(zerolog.Disabled))

	for i := 0; i < 3; i++ {
		e := w.CreateEntity()
		_ = ecpps.AddComponent(w, e, Position{X: float64(i)})
		if i > 0 {
			_ = ecpps.AddComponent(w, e, Velocity{X: 1})
		}
	}

	q := ecpps.NewQuery()
	moving := w.EntitiesMatching(q.And(Position{}, Velocity{}))
	static := w.EntitiesMatching(q.And(Position{}, q.Not(Velocity{})))

	fmt.Println("moving:", len(moving))
	fmt.Println("static:", len(static))

	// Output:
	// moving: 2
	// static: 1
}
