//go:build ci

package sound

// Cue names looked up by the UI.
const (
	CueVictory = "victory"
	CueError   = "error"
	CueRecycle = "recycle"
)

type SoundManager struct{}

func NewSoundManager() *SoundManager {
	return &SoundManager{}
}

func (sm *SoundManager) Init() error {
	return nil
}

func (sm *SoundManager) Play(name string) {
	// No-op
}

func (sm *SoundManager) Close() {
	// No-op
}
