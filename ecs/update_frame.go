package ecs

// UpdateFrame is handed to every system run during one Scheduler.Once call.
type UpdateFrame struct {
	// DeltaTime is the elapsed time since the previous frame, in seconds.
	DeltaTime float64
	// Number counts frames from zero.
	Number   int64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, number int64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Number:    number,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
