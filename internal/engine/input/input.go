// Package input turns SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int
	RelY   int
	Wheel  float32
	Button uint8
}

// Action is an editing command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionRefresh
	ActionToggleLoop
	ActionFlipU
	ActionFlipV
	ActionSwapUV
	ActionRemoveLast
	ActionSave
	ActionFrame
	ActionToggleDebug
	ActionToggleLightmapUV
	ActionScreenshot
	ActionQuit
)

// bindings maps keys to actions.
var bindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_R:         ActionRefresh,
	sdl.SCANCODE_C:         ActionToggleLoop,
	sdl.SCANCODE_U:         ActionFlipU,
	sdl.SCANCODE_V:         ActionFlipV,
	sdl.SCANCODE_S:         ActionSwapUV,
	sdl.SCANCODE_BACKSPACE: ActionRemoveLast,
	sdl.SCANCODE_F5:        ActionSave,
	sdl.SCANCODE_F:         ActionFrame,
	sdl.SCANCODE_G:         ActionToggleDebug,
	sdl.SCANCODE_L:         ActionToggleLightmapUV,
	sdl.SCANCODE_F12:       ActionScreenshot,
	sdl.SCANCODE_ESCAPE:    ActionQuit,
}

// Input handles all input processing.
type Input struct {
	events  []Event
	actions []Action
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		actions: make([]Action, 0, 4),
	}
}

// Update polls SDL events for this frame.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.actions = i.actions[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			i.events = append(i.events, Event{
				Type: EventKeyDown,
				Key:  e.Keysym.Scancode,
			})
			if a, ok := bindings[e.Keysym.Scancode]; ok {
				if a == ActionQuit {
					return true
				}
				i.actions = append(i.actions, a)
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				RelX:   int(e.XRel),
				RelY:   int(e.YRel),
				Button: buttonFromState(e.State),
			})

		case *sdl.MouseButtonEvent:
			typ := EventMouseUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				typ = EventMouseDown
			}
			i.events = append(i.events, Event{
				Type:   typ,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type:  EventMouseWheel,
				Wheel: float32(e.Y),
			})
		}
	}

	return false
}

// buttonFromState returns the first held button in a motion state mask.
func buttonFromState(state uint32) uint8 {
	switch {
	case state&sdl.ButtonLMask() != 0:
		return sdl.BUTTON_LEFT
	case state&sdl.ButtonRMask() != 0:
		return sdl.BUTTON_RIGHT
	case state&sdl.ButtonMMask() != 0:
		return sdl.BUTTON_MIDDLE
	}
	return 0
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Actions returns the bound actions triggered during the last Update.
func (i *Input) Actions() []Action {
	return i.actions
}

// IsKeyDown reports whether a key is currently held.
func IsKeyDown(scancode sdl.Scancode) bool {
	return sdl.GetKeyboardState()[scancode] != 0
}
