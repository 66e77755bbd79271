package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

type Bin struct {
	Freq  float64
	Power float64
}

// Spectrum returns the one-sided magnitude spectrum of data sampled at
// rateHz. The mean is removed and a Hann window applied before the FFT.
func Spectrum(data []float64, rateHz float64) []Bin {
	n := len(data)
	if n < 2 || rateHz <= 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(windowed)
	bins := make([]Bin, n/2+1)
	for i := range bins {
		bins[i] = Bin{
			Freq:  float64(i) * rateHz / float64(n),
			Power: cmplx.Abs(spectrum[i]),
		}
	}
	return bins
}

// DominantFrequency returns the frequency of the strongest bin above DC, or
// 0 when there is none.
func DominantFrequency(bins []Bin) float64 {
	best, freq := 0.0, 0.0
	for _, b := range bins {
		if b.Freq == 0 {
			continue
		}
		if b.Power > best {
			best, freq = b.Power, b.Freq
		}
	}
	return freq
}
