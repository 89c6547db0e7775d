// Package audio synthesizes the game's sound effects and theme loop as raw PCM.
//
// All buffers are mono float64 samples at unity gain; PCM16Stereo converts a
// buffer into the 16-bit little-endian interleaved stereo layout expected by
// ebiten's audio.Context.
package audio

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// SampleRate is the sample rate shared with the ebiten audio context.
const SampleRate = 48000

// Wave selects the oscillator waveform.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// Buffer is mono float64 samples in [-1, 1].
type Buffer []float64

// noiseSource is seeded so generated clips are reproducible.
var noiseSource = rand.New(rand.NewPCG(0x6e696e6a, 0x61667275))

// Samples converts seconds to a sample count.
func Samples(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(seconds * SampleRate)
}

// Oscillator generates a constant-frequency waveform.
func Oscillator(wave Wave, freq, seconds float64) Buffer {
	return Sweep(wave, freq, freq, seconds)
}

// Sweep generates a waveform whose frequency glides linearly from -> to.
func Sweep(wave Wave, from, to, seconds float64) Buffer {
	n := Samples(seconds)
	buf := make(Buffer, n)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(max(n, 1))
		freq := from + (to-from)*t

		switch wave {
		case WaveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case WaveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case WaveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case WaveTriangle:
			buf[i] = 1 - 4*math.Abs(phase-0.5)
		case WaveNoise:
			buf[i] = noiseSource.Float64()*2 - 1
		}

		phase += freq / SampleRate
		if phase >= 1.0 {
			phase -= math.Floor(phase)
		}
	}
	return buf
}

// Silence returns an all-zero buffer.
func Silence(seconds float64) Buffer {
	return make(Buffer, Samples(seconds))
}

// Envelope applies a linear attack/release envelope in place and returns the buffer.
func (b Buffer) Envelope(attackSec, releaseSec float64) Buffer {
	total := len(b)
	attack := Samples(attackSec)
	release := Samples(releaseSec)

	releaseStart := total - release
	if releaseStart < attack {
		releaseStart = attack
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attack && attack > 0 {
			vol = float64(i) / float64(attack)
		} else if i >= releaseStart && release > 0 {
			vol = float64(total-i) / float64(release)
		}
		b[i] *= vol
	}
	return b
}

// Decay applies an exponential decay with the given time constant.
func (b Buffer) Decay(tau float64) Buffer {
	if tau <= 0 {
		return b
	}
	for i := range b {
		b[i] *= math.Exp(-float64(i) / SampleRate / tau)
	}
	return b
}

// Gain scales the buffer in place.
func (b Buffer) Gain(g float64) Buffer {
	for i := range b {
		b[i] *= g
	}
	return b
}

// Duration returns the length of the buffer in seconds.
func (b Buffer) Duration() float64 {
	return float64(len(b)) / SampleRate
}

// Mix adds src into dst scaled by scale, growing dst when src is longer.
func Mix(dst, src Buffer, scale float64) Buffer {
	if len(src) > len(dst) {
		grown := make(Buffer, len(src))
		copy(grown, dst)
		dst = grown
	}
	for i := range src {
		dst[i] += src[i] * scale
	}
	return dst
}

// Concat joins buffers end to end.
func Concat(parts ...Buffer) Buffer {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Buffer, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// NoteFreq returns the equal-tempered frequency of a MIDI note number.
func NoteFreq(midi int) float64 {
	return 440 * math.Pow(2, float64(midi-69)/12)
}

// PCM16Stereo converts the buffer to 16-bit little-endian interleaved stereo.
// Samples outside [-1, 1] are clipped.
func (b Buffer) PCM16Stereo() []byte {
	out := make([]byte, len(b)*4)
	for i, s := range b {
		s = math.Max(-1, math.Min(1, s))
		v := uint16(int16(s * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], v)
		binary.LittleEndian.PutUint16(out[i*4+2:], v)
	}
	return out
}
