// Package signal defines the per-frame interactivity signal shared by the
// particle emitters and the gate/torch draw routines.
package signal

// Interactivity is computed once per frame from gate and session state.
type Interactivity struct {
	Hover   bool
	Opening bool
	Armed   bool
	Running bool
}

// Active reports whether any pointer/gate signal is set. Running is excluded:
// mist emission only reacts to hover, opening and armed.
func (signal Interactivity) Active() bool {
	return signal.Hover || signal.Opening || signal.Armed
}

// Glowing reports whether the gate glow should be drawn.
func (signal Interactivity) Glowing() bool {
	return signal.Active() || signal.Running
}

// EmitIntensity weights the active signals for the mist emission rate.
func (signal Interactivity) EmitIntensity() float64 {
	intensity := 0.0
	if signal.Hover {
		intensity += 1
	}
	if signal.Opening {
		intensity += 0.9
	}
	if signal.Armed {
		intensity += 0.6
	}
	return intensity
}
