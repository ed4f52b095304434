package tracker

import (
	"strconv"
)

// The GUI talks to the model through the small value types below. Each wraps
// an interface implemented by a view of the Model (usually a type conversion
// like `type startPlay Play`), and guards calls so that disabled or
// out-of-range changes never reach the model. A wrapped value may implement
// Enabler; values that don't are always enabled.

// Enabler reports whether a control should accept input right now.
type Enabler interface {
	Enabled() bool
}

func enabled(v any) bool {
	if e, ok := v.(Enabler); ok {
		return e.Enabled()
	}
	return true
}

type (
	// Action is something the user can trigger: a button, a key binding or a
	// double-click. Do is a no-op while the action is disabled.
	Action struct {
		doer Doer
	}

	Doer interface {
		Do()
	}
)

func MakeAction(doer Doer) Action { return Action{doer: doer} }

func (a Action) Enabled() bool { return a.doer != nil && enabled(a.doer) }

func (a Action) Do() {
	if a.Enabled() {
		a.doer.Do()
	}
}

type (
	// Bool is an on/off setting such as following the playhead.
	Bool struct {
		value BoolValue
	}

	BoolValue interface {
		Value() bool
		SetValue(bool)
	}

	boolPtr bool
)

func MakeBoolFromPtr(value *bool) Bool { return Bool{value: (*boolPtr)(value)} }

func (v Bool) Enabled() bool { return v.value != nil && enabled(v.value) }
func (v Bool) Value() bool   { return v.value != nil && v.value.Value() }
func (v Bool) Toggle()       { v.SetValue(!v.Value()) }

// SetValue reports whether the value changed.
func (v Bool) SetValue(value bool) bool {
	if !v.Enabled() || v.Value() == value {
		return false
	}
	v.value.SetValue(value)
	return true
}

func (v *boolPtr) Value() bool         { return bool(*v) }
func (v *boolPtr) SetValue(value bool) { *v = boolPtr(value) }

type (
	// Int is a bounded integer setting, e.g. playback speed in tenths or the
	// interaction mode. Values outside Range are clamped before they reach
	// the model, and setting the current value is not a change.
	Int struct {
		value IntValue
	}

	IntValue interface {
		Value() int
		SetValue(int) (changed bool)
		Range() RangeInclusive
	}

	// StringOfer lets an IntValue format its values, like "1.0x" for speed.
	StringOfer interface {
		StringOf(value int) string
	}
)

func MakeInt(value IntValue) Int { return Int{value} }

func (v Int) Enabled() bool { return v.value != nil && enabled(v.value) }

func (v Int) Value() int {
	if v.value == nil {
		return 0
	}
	return v.value.Value()
}

func (v Int) Range() RangeInclusive {
	if v.value == nil {
		return RangeInclusive{}
	}
	return v.value.Range()
}

func (v Int) Add(delta int) (changed bool) { return v.SetValue(v.Value() + delta) }

func (v Int) SetValue(value int) (changed bool) {
	if !v.Enabled() {
		return false
	}
	value = v.Range().Clamp(value)
	if value == v.Value() {
		return false
	}
	return v.value.SetValue(value)
}

func (v Int) String() string { return v.StringOf(v.Value()) }

func (v Int) StringOf(value int) string {
	if s, ok := v.value.(StringOfer); ok {
		return s.StringOf(value)
	}
	return strconv.Itoa(value)
}

type (
	// List is a list with at most one selected row; Selected is -1 when no
	// row is selected.
	List struct {
		data ListData
	}

	ListData interface {
		Selected() int
		SetSelected(int)
		Count() int
	}
)

func MakeList(data ListData) List { return List{data} }

func (l List) Count() int {
	if l.data == nil {
		return 0
	}
	return l.data.Count()
}

func (l List) Selected() int {
	if l.data == nil {
		return -1
	}
	if s := l.data.Selected(); s >= 0 && s < l.data.Count() {
		return s
	}
	return -1
}

// SetSelected clamps value to the last row; a negative value or an empty
// list clears the selection.
func (l List) SetSelected(value int) {
	switch {
	case l.data == nil:
	case value < 0 || l.data.Count() == 0:
		l.data.SetSelected(-1)
	default:
		l.data.SetSelected(min(value, l.data.Count()-1))
	}
}

// RangeInclusive is the closed integer interval [Min, Max].
type RangeInclusive struct{ Min, Max int }

func (r RangeInclusive) Clamp(value int) int { return max(min(value, r.Max), r.Min) }
