// Package control binds discretized slider controls to continuous values.
//
// A [Binding] owns a [Discrete] control with a fixed resolution of
// [Resolution] steps and keeps a real value in [min, max] in sync with the
// control's integer position through [rangemap]:
//
//   - [Binding.SetRealValue], [Binding.SetRealMinimum], [Binding.SetRealMaximum]
//     and [Binding.SetLogScale] push a new position to the control
//   - [Binding.Drag] and [Binding.Nudge] move the position directly
//   - every position write, from any origin, runs the binding's single
//     position handler, which recomputes the value and notifies listeners
//
// Programmatic and user-driven writes are indistinguishable to listeners.
//
// # Usage
//
//	speed, err := control.New(control.NewSlider(), 1, 1.0/3, 3, true)
//	id := speed.AddListener(func(v float64) error {
//		bus.SetScalar("speed", v)
//		return nil
//	})
//	speed.Nudge(+5)
//
// Writes to a binding are serialized. Listeners run synchronously on the
// writing goroutine and must not call the binding's setters.
package control
