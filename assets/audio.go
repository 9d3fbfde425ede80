package assets

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

const (
	blipBaseHz   = 880.0
	blipDuration = 90 * time.Millisecond
	blipVolume   = 0.25
)

// Sounds plays the generated merge blips. One blip is rendered per tier the
// first time it is needed.
type Sounds struct {
	ctx   *audio.Context
	blips map[int][]byte
}

func NewSounds() *Sounds {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}
	return &Sounds{ctx: ctx, blips: map[int][]byte{}}
}

// Merge plays the blip for a merge of the given tier. Larger tiers sound lower.
func (s *Sounds) Merge(tier int) {
	if s == nil || s.ctx == nil {
		return
	}
	pcm, ok := s.blips[tier]
	if !ok {
		pcm = Blip(MergePitch(tier), blipDuration, SampleRate)
		s.blips[tier] = pcm
	}
	p := s.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(blipVolume)
	p.Play()
}

// MergePitch drops a semitone per tier.
func MergePitch(tier int) float64 {
	if tier < 0 {
		tier = 0
	}
	return blipBaseHz * math.Pow(2, -float64(tier)/12)
}

// Blip renders a sine tone with a linear fade-out as 16-bit little-endian
// stereo PCM, the format audio.Context players expect.
func Blip(freq float64, d time.Duration, sampleRate int) []byte {
	n := int(d.Seconds() * float64(sampleRate))
	if n <= 0 || freq <= 0 {
		return nil
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * env
		sample := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], sample)
		binary.LittleEndian.PutUint16(out[i*4+2:], sample)
	}
	return out
}
