// Package analysis characterizes recorded sensor sessions so that gesture
// thresholds can be tuned against real data.
//
//   - [Summarize]: per-kind sample counts, rates and the largest
//     sample-to-sample jumps, which bound the shake threshold and tilt scale
//   - [Spectrum]: windowed power spectrum of a uniformly sampled signal
//   - [DominantFrequency]: strongest non-DC component, e.g. the shake rate
//
// A session whose largest acceleration jump never reaches the configured
// shake threshold will never restart playback:
//
//	r := analysis.Summarize(samples)
//	if r.Accel.MaxJump < cfg.Gesture.ShakeThreshold {
//	    // lower the threshold or shake harder
//	}
package analysis
