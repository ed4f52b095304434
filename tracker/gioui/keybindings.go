package gioui

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"gioui.org/io/key"
	"github.com/wavetag/wavetag/tracker"
	"gopkg.in/yaml.v3"
)

// KeyBinding is one entry of keybindings.yml. An empty Action unbinds the
// key, so user files can remove defaults.
type KeyBinding struct {
	Key                                        string
	Shortcut, Ctrl, Command, Shift, Alt, Super bool
	Action                                     string
}

// keyMap resolves key presses to action names and remembers, for each action,
// how to describe the key that triggers it in a tooltip.
type keyMap struct {
	actions map[key.Event]string
	hints   map[string]string
}

var keys = keyMap{actions: map[key.Event]string{}, hints: map[string]string{}}

// keyBindingError is reported as an alert once the window is up.
var keyBindingError error

//go:embed keybindings.yml
var defaultKeyBindings []byte

func init() {
	bindings, err := decodeKeyBindings(defaultKeyBindings)
	if err != nil {
		panic(fmt.Errorf("default keybindings: %w", err))
	}
	if data, err := readCustomConfig("keybindings.yml"); err == nil {
		user, err := decodeKeyBindings(data)
		if err != nil {
			keyBindingError = fmt.Errorf("keybindings.yml: %w", err)
		}
		bindings = append(bindings, user...)
	}
	for _, kb := range bindings {
		keys.bind(kb)
	}
}

func decodeKeyBindings(data []byte) ([]KeyBinding, error) {
	var ret []KeyBinding
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (kb KeyBinding) modifiers() key.Modifiers {
	var mods key.Modifiers
	for _, m := range [...]struct {
		set bool
		mod key.Modifiers
	}{
		{kb.Shortcut, key.ModShortcut},
		{kb.Ctrl, key.ModCtrl},
		{kb.Command, key.ModCommand},
		{kb.Shift, key.ModShift},
		{kb.Alt, key.ModAlt},
		{kb.Super, key.ModSuper},
	} {
		if m.set {
			mods |= m.mod
		}
	}
	return mods
}

// bind applies kb on top of the earlier bindings. The hint of an action
// names the key bound last.
func (k *keyMap) bind(kb KeyBinding) {
	mods := kb.modifiers()
	ev := key.Event{Name: key.Name(kb.Key), Modifiers: mods, State: key.Press}
	if prev, ok := k.actions[ev]; ok {
		delete(k.hints, prev)
		delete(k.actions, ev)
	}
	if kb.Action == "" {
		return
	}
	k.actions[ev] = kb.Action
	hint := kb.Key
	if mods != 0 {
		hint = strings.ReplaceAll(mods.String(), "-", "+") + "+" + hint
	}
	k.hints[kb.Action] = hint
}

func (k *keyMap) lookup(e key.Event) (string, bool) {
	action, ok := k.actions[key.Event{Name: e.Name, Modifiers: e.Modifiers, State: key.Press}]
	return action, ok
}

// makeHint appends the key of action to hint using format, e.g. " (%s)".
func makeHint(hint, format, action string) string {
	if k, ok := keys.hints[action]; ok {
		return hint + fmt.Sprintf(format, k)
	}
	return hint
}

// KeyEvent runs the action bound to a key press. Keys are ignored while a
// dialog has the focus.
func (t *Tracker) KeyEvent(e key.Event) {
	if e.State != key.Press || t.Dialog() != tracker.NoDialog {
		return
	}
	action, ok := keys.lookup(e)
	if !ok {
		return
	}
	switch action {
	case "PlayingToggle":
		t.Play().Toggle().Do()
	case "StopPlaying":
		t.Play().Stop().Do()
	case "Annotate":
		t.Annotations().Annotate().Do()
	case "DeleteSelected":
		t.Annotations().DeleteSelected().Do()
	case "SaveAnnotations":
		t.SaveAnnotations().Do()
	case "LoadAnnotations":
		t.LoadAnnotations().Do()
	case "OpenAudio":
		t.OpenAudio().Do()
	case "ExportSelection":
		t.ExportSelection().Do()
	case "SelectMode":
		t.Router().Mode().SetValue(int(tracker.SelectMode))
	case "PanMode":
		t.Router().Mode().SetValue(int(tracker.PanMode))
	case "ZoomMode":
		t.Router().Mode().SetValue(int(tracker.ZoomMode))
	case "SpeedAdd":
		t.Play().Speed().Add(1)
	case "SpeedSubtract":
		t.Play().Speed().Add(-1)
	case "ZoomFull":
		t.Viewport().ZoomFull().Do()
	case "FollowToggle":
		t.Play().Follow().Toggle()
	}
}
