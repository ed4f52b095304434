package tracker

import (
	"time"
)

type (
	// Alerts is the queue of transient messages shown at the bottom of the
	// window. Alerts with a name replace an existing alert of the same name
	// instead of stacking.
	Alerts struct {
		alerts []Alert
	}

	Alert struct {
		Name      string
		Priority  AlertPriority
		Message   string
		Duration  time.Duration
		FadeLevel float64
	}

	AlertPriority int
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const (
	defaultAlertDuration = 3 * time.Second
	alertFadeTime        = 150 * time.Millisecond
)

func (m *Model) Alerts() *Alerts { return &m.alerts }

// Iterate yields the alerts, oldest first.
func (m *Alerts) Iterate(yield func(index int, alert Alert) bool) {
	for i, a := range m.alerts {
		if !yield(i, a) {
			return
		}
	}
}

func (m *Alerts) Len() int { return len(m.alerts) }

// Update advances the fade animations by d and removes expired alerts. It
// returns true while something is still animating.
func (m *Alerts) Update(d time.Duration) (animating bool) {
	fade := float64(d) / float64(alertFadeTime)
	kept := m.alerts[:0]
	for _, a := range m.alerts {
		if a.Duration > 0 {
			a.Duration -= d
			if a.FadeLevel < 1 {
				a.FadeLevel = min(a.FadeLevel+fade, 1)
				animating = true
			}
		} else {
			a.FadeLevel = max(a.FadeLevel-fade, 0)
			animating = true
		}
		if a.Duration > 0 || a.FadeLevel > 0 {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(m.alerts); i++ {
		m.alerts[i] = Alert{}
	}
	m.alerts = kept
	return animating || len(m.alerts) > 0
}

func (m *Alerts) Add(message string, priority AlertPriority) {
	m.AddAlert(Alert{Priority: priority, Message: message, Duration: defaultAlertDuration})
}

func (m *Alerts) AddNamed(name, message string, priority AlertPriority) {
	m.AddAlert(Alert{Name: name, Priority: priority, Message: message, Duration: defaultAlertDuration})
}

func (m *Alerts) AddAlert(a Alert) {
	if a.Name != "" {
		for i := range m.alerts {
			if m.alerts[i].Name == a.Name {
				a.FadeLevel = m.alerts[i].FadeLevel
				m.alerts[i] = a
				return
			}
		}
	}
	m.alerts = append(m.alerts, a)
}

// ClearNamed starts fading out the alert with the given name, if any.
func (m *Alerts) ClearNamed(name string) {
	for i := range m.alerts {
		if m.alerts[i].Name == name {
			m.alerts[i].Duration = 0
		}
	}
}
