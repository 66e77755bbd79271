// Package remix assembles a playback session: the speed and pitch sliders,
// the parameter bus they drive and the motion gesture controller fed by a
// sensor source.
//
// A Session mirrors the lifecycle of the foreground screen. Resume starts a
// freshly calibrated gesture controller and Pause detaches it from the
// sensors. Slider values survive pause and resume.
package remix
