// Package assets holds the embedded sound effects and plays them.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/milk9111/ninja/common"
	"github.com/milk9111/ninja/prefabs"
)

const SampleRate = 44100

//go:embed sfx/*.wav
var sfxFS embed.FS

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return sfxFS.ReadFile(cleanAssetPath(path))
}

type clip struct {
	pcm    []byte
	volume float64
}

// Mixer plays the sounds named in the world spec's audio table. Clips are
// decoded once; every Play gets its own player so sounds can overlap.
type Mixer struct {
	ctx      *audio.Context
	clips    map[string]clip
	loop     *audio.Player
	loopName string
	logger   *log.Logger
}

func NewMixer(ctx *audio.Context, sounds []prefabs.AudioSpec, logger *log.Logger) (*Mixer, error) {
	m := &Mixer{ctx: ctx, clips: make(map[string]clip, len(sounds)), logger: common.OrDiscard(logger)}
	for _, s := range sounds {
		pcm, err := m.decode(s.File)
		if err != nil {
			return nil, fmt.Errorf("assets: sound %s: %w", s.Name, err)
		}
		m.clips[s.Name] = clip{pcm: pcm, volume: s.Volume}
	}
	return m, nil
}

func (m *Mixer) decode(path string) ([]byte, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".wav") {
		// Already-decoded PCM in ebiten's native format.
		return b, nil
	}
	stream, err := wav.DecodeWithSampleRate(m.ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	return io.ReadAll(stream)
}

// Play starts the named sound. Unknown names are ignored.
func (m *Mixer) Play(name string) {
	c, ok := m.clips[name]
	if !ok || c.volume <= 0 {
		return
	}
	p := m.ctx.NewPlayerFromBytes(c.pcm)
	p.SetVolume(c.volume)
	p.Play()
}

// Loop plays the named sound forever, replacing any running loop.
func (m *Mixer) Loop(name string) {
	c, ok := m.clips[name]
	if !ok {
		m.logger.Warn("no such sound", "name", name)
		return
	}
	if m.loop != nil {
		m.loop.Close()
	}
	stream := audio.NewInfiniteLoop(bytes.NewReader(c.pcm), int64(len(c.pcm)))
	p, err := m.ctx.NewPlayer(stream)
	if err != nil {
		m.logger.Error("loop", "name", name, "err", err)
		return
	}
	p.SetVolume(c.volume)
	p.Play()
	m.loop = p
	m.loopName = name
}

// SetVolumes applies the volumes of a reloaded audio table. Files are not
// reloaded.
func (m *Mixer) SetVolumes(sounds []prefabs.AudioSpec) {
	for _, s := range sounds {
		c, ok := m.clips[s.Name]
		if !ok {
			continue
		}
		c.volume = s.Volume
		m.clips[s.Name] = c
		if s.Name == m.loopName && m.loop != nil {
			m.loop.SetVolume(s.Volume)
		}
	}
}

func (m *Mixer) Close() error {
	if m.loop != nil {
		return m.loop.Close()
	}
	return nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		return s[idx+len("/assets/"):]
	}
	return strings.TrimPrefix(s, "assets/")
}
