package audio

// Recipes for the game's clips. Each returns a fresh buffer.

// CountdownTick is the short beep played for each countdown number.
func CountdownTick() Buffer {
	return Oscillator(WaveSquare, 660, 0.12).Envelope(0.005, 0.06).Gain(0.35)
}

// StartGong is played when the countdown reaches zero.
func StartGong() Buffer {
	low := Oscillator(WaveSine, NoteFreq(57), 0.7).Decay(0.25)
	high := Oscillator(WaveSine, NoteFreq(69), 0.7).Decay(0.18)
	return Mix(low, high, 0.6).Envelope(0.005, 0.1).Gain(0.5)
}

// Slice is the blade swish on a successful cut.
func Slice() Buffer {
	swish := Sweep(WaveNoise, 0, 0, 0.16).Envelope(0.01, 0.12).Gain(0.3)
	tone := Sweep(WaveSaw, 1800, 500, 0.16).Envelope(0.002, 0.1).Gain(0.15)
	return Mix(swish, tone, 1)
}

// Splatter is the wet hit layered on a sliced fruit.
func Splatter() Buffer {
	return Sweep(WaveNoise, 0, 0, 0.22).Decay(0.06).Gain(0.45)
}

// Throw is the whoosh of fruit launched from the bottom edge.
func Throw() Buffer {
	return Sweep(WaveTriangle, 220, 520, 0.25).Envelope(0.05, 0.15).Gain(0.2)
}

// Bomb is the explosion when a bomb is sliced.
func Bomb() Buffer {
	rumble := Sweep(WaveSine, 120, 40, 1.1).Decay(0.4)
	crack := Sweep(WaveNoise, 0, 0, 1.1).Decay(0.2)
	return Mix(rumble, crack, 0.8).Envelope(0.003, 0.3).Gain(0.6)
}

// GameOver is a descending three-note phrase.
func GameOver() Buffer {
	return Concat(
		Oscillator(WaveTriangle, NoteFreq(67), 0.25).Envelope(0.01, 0.08),
		Oscillator(WaveTriangle, NoteFreq(63), 0.25).Envelope(0.01, 0.08),
		Oscillator(WaveTriangle, NoteFreq(60), 0.6).Envelope(0.01, 0.3),
	).Gain(0.4)
}

// Button is the click for menu buttons.
func Button() Buffer {
	return Oscillator(WaveSine, 1200, 0.05).Envelope(0.002, 0.03).Gain(0.3)
}

// themeMelody is a pentatonic phrase in MIDI notes; 0 is a rest.
var themeMelody = []int{
	69, 72, 74, 76, 74, 72, 69, 0,
	67, 69, 72, 69, 67, 64, 67, 0,
	69, 72, 74, 79, 76, 74, 72, 74,
	76, 74, 72, 69, 67, 69, 69, 0,
}

// Theme renders one bar-aligned pass of the background music.
// The music player loops it indefinitely.
func Theme() Buffer {
	const step = 0.22
	var lead Buffer
	for _, n := range themeMelody {
		if n == 0 {
			lead = Concat(lead, Silence(step))
			continue
		}
		lead = Concat(lead, Oscillator(WaveTriangle, NoteFreq(n), step).Envelope(0.01, 0.08))
	}

	bassNotes := []int{45, 43, 45, 40}
	barLen := step * float64(len(themeMelody)) / float64(len(bassNotes))
	var bass Buffer
	for _, n := range bassNotes {
		bass = Concat(bass, Oscillator(WaveSine, NoteFreq(n), barLen).Envelope(0.02, 0.1))
	}

	return Mix(lead.Gain(0.25), bass, 0.2)
}
