package tracker

import (
	"time"
)

type (
	// Broker connects the GUI goroutine, which owns the Model, to everything
	// else. Decode jobs and file dialogs post closures on ToModel; the GUI
	// loop runs them between frames.
	//
	// CloseGUI has room for one message so a close request never blocks; a
	// full channel means a close is already underway. FinishedGUI is never
	// sent to, only closed once the GUI loop has returned.
	Broker struct {
		ToModel chan MsgToModel

		CloseGUI    chan struct{}
		FinishedGUI chan struct{}
	}

	// MsgToModel carries work for the GUI goroutine. A func() in Data is
	// called; anything else is logged and dropped.
	MsgToModel struct {
		Data any
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:     make(chan MsgToModel, 1024),
		CloseGUI:    make(chan struct{}, 1),
		FinishedGUI: make(chan struct{}),
	}
}

// TrySend sends v on c unless c is full. It never blocks.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive waits at most t for a value on c. ok is false on timeout and
// on a closed channel.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
