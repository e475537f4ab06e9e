package renderer

import (
	"log/slog"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Audio plays named sound effects from <dir>/<name>.wav, loading each file
// on first use. Names without a file are silent.
type Audio struct {
	dir    string
	volume float32
	sounds map[string]rl.Sound
	absent map[string]bool
	ready  bool
}

// NewAudio opens the audio device. volume scales every cue.
func NewAudio(dir string, volume float32) *Audio {
	rl.InitAudioDevice()
	a := &Audio{
		dir:    dir,
		volume: volume,
		sounds: make(map[string]rl.Sound),
		absent: make(map[string]bool),
		ready:  rl.IsAudioDeviceReady(),
	}
	if !a.ready {
		slog.Warn("audio_unavailable", "dir", dir)
	}
	return a
}

// PlaySound implements systems.Sounds.
func (a *Audio) PlaySound(name string, volume, pitch float32) {
	snd, ok := a.load(name)
	if !ok {
		return
	}
	rl.SetSoundVolume(snd, volume*a.volume)
	rl.SetSoundPitch(snd, pitch)
	rl.PlaySound(snd)
}

func (a *Audio) load(name string) (rl.Sound, bool) {
	if !a.ready || a.absent[name] {
		return rl.Sound{}, false
	}
	if snd, ok := a.sounds[name]; ok {
		return snd, true
	}

	path := filepath.Join(a.dir, name+".wav")
	if _, err := os.Stat(path); err != nil {
		slog.Warn("sound_missing", "name", name, "path", path)
		a.absent[name] = true
		return rl.Sound{}, false
	}
	snd := rl.LoadSound(path)
	a.sounds[name] = snd
	return snd, true
}

// Close unloads every sound and shuts the device down.
func (a *Audio) Close() {
	for name, snd := range a.sounds {
		rl.UnloadSound(snd)
		delete(a.sounds, name)
	}
	if a.ready {
		rl.CloseAudioDevice()
		a.ready = false
	}
}
