package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSamples(t *testing.T) {
	if got := Samples(0.5); got != SampleRate/2 {
		t.Errorf("Samples(0.5) = %d, want %d", got, SampleRate/2)
	}
	if got := Samples(-1); got != 0 {
		t.Errorf("Samples(-1) = %d, want 0", got)
	}
}

func TestOscillatorStaysInRange(t *testing.T) {
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveSaw, WaveTriangle, WaveNoise} {
		buf := Oscillator(wave, 440, 0.05)
		if len(buf) != Samples(0.05) {
			t.Fatalf("wave %d: len %d, want %d", wave, len(buf), Samples(0.05))
		}
		for i, s := range buf {
			if s < -1 || s > 1 {
				t.Fatalf("wave %d: sample %d out of range: %v", wave, i, s)
			}
		}
	}
}

func TestEnvelopeFadesEdges(t *testing.T) {
	buf := Oscillator(WaveSquare, 100, 0.1).Envelope(0.01, 0.01)
	if buf[0] != 0 {
		t.Errorf("first sample should be silent, got %v", buf[0])
	}
	last := buf[len(buf)-1]
	if math.Abs(last) > 0.01 {
		t.Errorf("last sample should be near silent, got %v", last)
	}
}

func TestMixGrowsDestination(t *testing.T) {
	a := Buffer{1, 1}
	b := Buffer{0.5, 0.5, 0.5}
	out := Mix(a, b, 2)
	want := Buffer{2, 2, 1}
	if len(out) != len(want) {
		t.Fatalf("len %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestPCM16StereoClipsAndDuplicates(t *testing.T) {
	pcm := Buffer{2, -2, 0}.PCM16Stereo()
	if len(pcm) != 12 {
		t.Fatalf("len %d, want 12", len(pcm))
	}
	left := int16(binary.LittleEndian.Uint16(pcm[0:]))
	right := int16(binary.LittleEndian.Uint16(pcm[2:]))
	if left != math.MaxInt16 || right != math.MaxInt16 {
		t.Errorf("clipped positive sample = (%d, %d), want MaxInt16", left, right)
	}
	neg := int16(binary.LittleEndian.Uint16(pcm[4:]))
	if neg != -math.MaxInt16 {
		t.Errorf("clipped negative sample = %d, want %d", neg, -math.MaxInt16)
	}
}

func TestNoteFreq(t *testing.T) {
	if got := NoteFreq(69); got != 440 {
		t.Errorf("NoteFreq(69) = %v, want 440", got)
	}
	if got := NoteFreq(81); math.Abs(got-880) > 1e-9 {
		t.Errorf("NoteFreq(81) = %v, want 880", got)
	}
}

func TestRecipesProduceAudio(t *testing.T) {
	recipes := map[string]func() Buffer{
		"countdown": CountdownTick,
		"start":     StartGong,
		"slice":     Slice,
		"splatter":  Splatter,
		"throw":     Throw,
		"bomb":      Bomb,
		"over":      GameOver,
		"button":    Button,
		"theme":     Theme,
	}
	for name, recipe := range recipes {
		buf := recipe()
		if len(buf) == 0 {
			t.Errorf("%s: empty buffer", name)
			continue
		}
		peak := 0.0
		for _, s := range buf {
			peak = math.Max(peak, math.Abs(s))
		}
		if peak == 0 {
			t.Errorf("%s: silent buffer", name)
		}
	}
}
