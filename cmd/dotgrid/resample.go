package dotgrid

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Window is the [Start, End) range of clock hours considered for a render.
type Window struct {
	Start int
	End   int
}

// Len returns the number of hours inside the window.
func (w Window) Len() int { return w.End - w.Start }

func (w Window) validate() error {
	if w.End <= w.Start {
		return fmt.Errorf("end hour %d must be after start hour %d", w.End, w.Start)
	}
	if w.Start < 0 || w.End > HoursPerDay {
		return fmt.Errorf("hours [%d, %d) fall outside the day", w.Start, w.End)
	}
	return nil
}

// Resample extracts one scalar from each of the 24 hourly entries, crops the
// result to the window and resamples it to exactly n values.
//
// The resampling is band limited: the cropped sequence is zero-padded or
// truncated in the frequency domain. Like any Fourier resampler it rings near
// sharp steps (a tide curve dropping to zero after the last event, say), and
// that overshoot is kept.
func Resample[T any](series []T, value func(T) float64, w Window, n int) ([]float64, error) {
	if len(series) != HoursPerDay {
		return nil, invalidInput("series has %d entries, want %d", len(series), HoursPerDay)
	}
	if err := w.validate(); err != nil {
		return nil, invalidInput("window: %v", err)
	}
	if n < 1 {
		return nil, invalidInput("target count must be at least 1, got %d", n)
	}

	cropped := make([]float64, 0, w.Len())
	for _, s := range series[w.Start:w.End] {
		cropped = append(cropped, value(s))
	}
	return fourierResample(cropped, n), nil
}

// fourierResample follows the real-input path of scipy.signal.resample: copy
// the shared positive frequencies, split or join the Nyquist bin when the
// shorter length is even, then scale by n/len(x).
func fourierResample(x []float64, n int) []float64 {
	nx := len(x)
	if nx == n {
		out := make([]float64, n)
		copy(out, x)
		return out
	}

	coeff := fourier.NewFFT(nx).Coefficients(nil, x)
	resized := make([]complex128, n/2+1)

	shared := min(n, nx)
	copy(resized, coeff[:shared/2+1])
	if shared%2 == 0 {
		if n < nx {
			resized[shared/2] *= 2
		} else {
			resized[shared/2] *= 0.5
		}
	}

	// Sequence is unnormalized: it returns n times the inverse transform, and
	// the n/nx amplitude correction cancels that down to 1/nx.
	out := fourier.NewFFT(n).Sequence(nil, resized)
	scale := 1 / float64(nx)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// mapRange is an affine map of x from [inMin, inMax] onto [outMin, outMax].
// Inputs outside the domain extrapolate linearly.
func mapRange(x, inMin, inMax, outMin, outMax float64) float64 {
	return outMin + (x-inMin)/(inMax-inMin)*(outMax-outMin)
}
