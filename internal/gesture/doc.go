// Package gesture turns motion sensor streams into control gestures.
//
// Two independent state machines consume their own sensor stream:
//
//   - [ShakeDetector] watches acceleration and reports a shake when any axis
//     jumps by at least the threshold between consecutive samples, debounced
//     so that shakes within the debounce window of the last accepted one are
//     suppressed
//   - [TiltTracker] watches orientation and converts the change of the Z and
//     Y axes into relative slider steps
//
// Both start uncalibrated. The first sample of a stream only seeds the
// previous reading and never counts as a gesture.
//
// [Controller] wires the detectors to a trigger sink and two [Nudger]s and
// manages the sensor subscriptions.
package gesture
