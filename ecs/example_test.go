package ecs_test

import (
	"fmt"

	"github.com/plus3/tetrino/ecs"
)

func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)

	storage := ecs.NewStorage(registry)
	storage.Spawn(Position{X: 0, Y: 10}, Velocity{DX: 1, DY: -2})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		view := ecs.NewView[struct {
			*Position
			*Velocity
		}](frame.Storage)
		for item := range view.Iter() {
			item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
			item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
		}
	}))

	scheduler.Once(1)
	scheduler.Once(1)

	for item := range ecs.NewView[struct{ *Position }](storage).Iter() {
		fmt.Println(item.Position.X, item.Position.Y)
	}
	// Output: 2 6
}

func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	score := ecs.NewSingleton(storage, Score(3))
	*score.Get() += 4

	var read *Score
	storage.ReadSingleton(&read)
	fmt.Println(*read)
	// Output: 7
}

func ExampleEvents() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	ecs.NewEvents[string](storage).Send("spawn")
	ecs.NewEvents[string](storage).Send("redraw")

	for ev := range ecs.NewEvents[string](storage).Drain() {
		fmt.Println(ev)
	}
	// Output:
	// spawn
	// redraw
}
