package player

import (
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/ayomide-o/sportify/internal/shared"
	"github.com/charmbracelet/log"
)

// previewLength is the nominal length of a preview clip served by the
// lookup service. Clips are always cut to thirty seconds.
const previewLength = 30 * time.Second

var playerBinaries = []string{"mpv", "ffplay"}

// ExecSource returns a Source backed by an external media player binary.
//
// The first of mpv or ffplay found on PATH is used. Pause is implemented by
// killing the process and remembering the elapsed offset; resume relaunches
// the player with a start offset. This keeps the source portable and free of
// audio bindings at the cost of a short gap on resume.
func ExecSource(logger *log.Logger) (Source, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	var binary string
	for _, candidate := range playerBinaries {
		if path, err := exec.LookPath(candidate); err == nil {
			binary = path
			break
		}
	}
	if binary == "" {
		return nil, fmt.Errorf("%w: no media player found on PATH (tried mpv, ffplay)", shared.ErrResourceLoad)
	}

	return func(previewURL string) (Resource, error) {
		if previewURL == "" {
			return nil, fmt.Errorf("%w: empty preview URL", shared.ErrResourceLoad)
		}
		return &processResource{
			binary: binary,
			url:    previewURL,
			logger: logger,
		}, nil
	}, nil
}

// processResource plays a clip by running a media player process.
type processResource struct {
	binary string
	url    string
	logger *log.Logger

	mu        sync.Mutex
	cmd       *exec.Cmd
	offset    time.Duration
	startedAt time.Time
	playing   bool
	released  bool
	killed    bool
	onFinish  func()
}

func (r *processResource) args(start time.Duration) []string {
	switch {
	case isFFplay(r.binary):
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-ss", formatSeconds(start), r.url}
	default:
		return []string{"--no-video", "--really-quiet", fmt.Sprintf("--start=%.1f", start.Seconds()), r.url}
	}
}

func (r *processResource) Play() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return fmt.Errorf("%w: resource released", shared.ErrResourceLoad)
	}
	if r.playing {
		return nil
	}

	cmd := exec.Command(r.binary, r.args(r.offset)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrResourceLoad, err)
	}

	r.cmd = cmd
	r.startedAt = time.Now()
	r.playing = true
	r.killed = false

	go r.watch(cmd)
	return nil
}

// watch waits for the player process and distinguishes a natural end of
// clip from a kill issued by Pause, Seek, or Release.
func (r *processResource) watch(cmd *exec.Cmd) {
	err := cmd.Wait()

	r.mu.Lock()
	if r.cmd != cmd || r.killed || r.released {
		r.mu.Unlock()
		return
	}
	if err != nil {
		r.logger.Warn("player process exited abnormally", "error", err)
	}
	r.playing = false
	r.offset = previewLength
	fn := r.onFinish
	r.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (r *processResource) Pause() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.playing {
		return nil
	}
	r.offset += time.Since(r.startedAt)
	if r.offset > previewLength {
		r.offset = previewLength
	}
	r.playing = false
	r.killLocked()
	return nil
}

func (r *processResource) Position() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos := r.offset
	if r.playing {
		pos += time.Since(r.startedAt)
	}
	if pos > previewLength {
		pos = previewLength
	}
	return pos
}

func (r *processResource) Duration() time.Duration {
	return previewLength
}

func (r *processResource) Seek(pos time.Duration) error {
	r.mu.Lock()

	r.offset = pos
	if !r.playing {
		r.mu.Unlock()
		return nil
	}

	r.killLocked()
	r.playing = false
	r.mu.Unlock()

	return r.Play()
}

func (r *processResource) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.released = true
	r.playing = false
	r.onFinish = nil
	r.killLocked()
	return nil
}

func (r *processResource) OnFinish(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onFinish = fn
}

func (r *processResource) killLocked() {
	if r.cmd != nil && r.cmd.Process != nil {
		r.killed = true
		if err := r.cmd.Process.Kill(); err != nil {
			r.logger.Debug("failed to kill player process", "error", err)
		}
	}
	r.cmd = nil
}

func isFFplay(binary string) bool {
	base := binary
	for i := len(binary) - 1; i >= 0; i-- {
		if binary[i] == '/' || binary[i] == '\\' {
			base = binary[i+1:]
			break
		}
	}
	return base == "ffplay" || base == "ffplay.exe"
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1f", d.Seconds())
}
