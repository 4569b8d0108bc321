package measure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/akyairhashvil/notifit/internal/config"
)

var ErrUnknownFont = errors.New("font not configured")

// FontData holds the raw TrueType bytes of one catalog font.
type FontData struct {
	Regular []byte
	Bold    []byte
}

// FontSource resolves catalog font IDs to loaded font files.
type FontSource interface {
	Font(id string) (FontData, bool)
}

// FontLoader reads the configured font files in the background. Its Wait
// method is the single readiness signal shared by all measurements.
type FontLoader struct {
	ready  *Signal
	mu     sync.RWMutex
	fonts  map[string]FontData
	errs   map[string]error
	logger *zap.Logger
}

// LoadFonts starts reading files and returns immediately.
func LoadFonts(files map[string]config.FontFiles, logger *zap.Logger) *FontLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &FontLoader{
		ready:  NewSignal(),
		fonts:  make(map[string]FontData, len(files)),
		errs:   make(map[string]error),
		logger: logger,
	}
	go l.load(files)
	return l
}

func (l *FontLoader) load(files map[string]config.FontFiles) {
	defer l.ready.Fire()
	for id, f := range files {
		data, err := readFontFiles(f)
		l.mu.Lock()
		if err != nil {
			l.errs[id] = err
			l.logger.Warn("font unavailable, measuring with fallback face",
				zap.String("font", id), zap.Error(err))
		} else {
			l.fonts[id] = data
			l.logger.Debug("font loaded", zap.String("font", id),
				zap.Int("regular_bytes", len(data.Regular)), zap.Int("bold_bytes", len(data.Bold)))
		}
		l.mu.Unlock()
	}
}

func readFontFiles(f config.FontFiles) (FontData, error) {
	if f.Regular == "" {
		return FontData{}, ErrUnknownFont
	}
	regular, err := os.ReadFile(f.Regular)
	if err != nil {
		return FontData{}, fmt.Errorf("read regular face: %w", err)
	}
	bold := regular
	if f.Bold != "" && f.Bold != f.Regular {
		if bold, err = os.ReadFile(f.Bold); err != nil {
			return FontData{}, fmt.Errorf("read bold face: %w", err)
		}
	}
	return FontData{Regular: regular, Bold: bold}, nil
}

// Wait blocks until every configured file was read or failed.
func (l *FontLoader) Wait(ctx context.Context) error {
	return l.ready.Wait(ctx)
}

// Font returns the loaded data for id.
func (l *FontLoader) Font(id string) (FontData, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d, ok := l.fonts[id]
	return d, ok
}

// Status reports the load error for id: nil when loaded, ErrUnknownFont
// when the ID was never configured.
func (l *FontLoader) Status(id string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.fonts[id]; ok {
		return nil
	}
	if err, ok := l.errs[id]; ok {
		return err
	}
	return ErrUnknownFont
}
