package monitor

import "time"

// Status is a snapshot of component health, keyed by component name.
type Status struct {
	Components map[string]bool `json:"components"`
	LastCheck  time.Time       `json:"last_check"`
}

func (s Status) Healthy() bool {
	for _, ok := range s.Components {
		if !ok {
			return false
		}
	}
	return true
}
