// Package assets loads and owns the textures used by the renderer.
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // decoder registration
	_ "image/png"  // decoder registration
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/Garsondee/Soccer-Sense/internal/config"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // decoder registration
	_ "golang.org/x/image/webp" // decoder registration
	"golang.org/x/sync/errgroup"
)

//go:embed textures
var embedded embed.FS

// PitchTexture is the key of the pitch surface texture.
const PitchTexture = "pitchTexture"

// maxParallelLoads bounds concurrent decodes.
const maxParallelLoads = 4

// ErrNotInitialized is returned by lookups made before Init completed.
var ErrNotInitialized = errors.New("assets: manager not initialized")

// ColorSpace tags how a texture's pixel values should be interpreted.
type ColorSpace int

const (
	ColorSpaceLinear ColorSpace = iota
	ColorSpaceSRGB
)

func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceLinear:
		return "linear"
	case ColorSpaceSRGB:
		return "srgb"
	default:
		return "unknown"
	}
}

// Texture is a decoded image plus its load metadata.
type Texture struct {
	Key        string
	Path       string
	Format     string // decoder name reported by image.Decode
	ColorSpace ColorSpace
	Image      image.Image
}

// Size returns the texture's pixel dimensions.
func (t *Texture) Size() (int, int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

type loadRequest struct {
	key   string
	path  string
	space ColorSpace
}

// Manager owns the key -> texture map. Textures are queued, decoded in
// parallel, and a single completion signal fires once every queued load has
// finished (successfully or not).
type Manager struct {
	fsys   fs.FS
	logger *zap.Logger

	mu       sync.RWMutex
	textures map[string]*Texture
	queue    []loadRequest

	loading *LoadingManager

	initOnce sync.Once
	initErr  error
}

// New creates a manager reading from fsys. A nil fsys uses the embedded textures.
func New(fsys fs.FS, logger *zap.Logger) *Manager {
	if fsys == nil {
		fsys = embedded
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		fsys:     fsys,
		logger:   logger,
		textures: make(map[string]*Texture),
		loading:  NewLoadingManager(),
	}
}

// NewFromConfig creates a manager for the configured asset directory, falling
// back to the embedded textures when none is set.
func NewFromConfig(cfg config.Assets, logger *zap.Logger) *Manager {
	if cfg.Dir == "" {
		return New(nil, logger)
	}
	return New(os.DirFS(cfg.Dir), logger)
}

// Init queues every texture the game needs and blocks until all loads have
// finished. It returns the first load error. Calling Init again returns the
// result of the first call.
func (m *Manager) Init(ctx context.Context) error {
	m.initOnce.Do(func() {
		m.queueTextures()
		m.initErr = m.load(ctx)
	})
	return m.initErr
}

// Done is closed once all queued loads completed.
func (m *Manager) Done() <-chan struct{} {
	return m.loading.Done()
}

// Loading exposes the progress tracker, e.g. for a loading screen.
func (m *Manager) Loading() *LoadingManager {
	return m.loading
}

// Texture returns the texture stored under key.
func (m *Manager) Texture(key string) (*Texture, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.textures[key]
	return t, ok
}

// MustTexture is Texture for keys the caller knows were queued.
func (m *Manager) MustTexture(key string) (*Texture, error) {
	select {
	case <-m.Done():
	default:
		return nil, ErrNotInitialized
	}
	t, ok := m.Texture(key)
	if !ok {
		return nil, fmt.Errorf("assets: unknown texture %q", key)
	}
	return t, nil
}

// Keys lists loaded texture keys in sorted order.
func (m *Manager) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.textures))
	for k := range m.textures {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Manager) queueTextures() {
	m.queueTexture(PitchTexture, "textures/pitch_texture.png", ColorSpaceSRGB)
}

func (m *Manager) queueTexture(key, path string, space ColorSpace) {
	m.queue = append(m.queue, loadRequest{key: key, path: path, space: space})
}

func (m *Manager) load(ctx context.Context) error {
	reqs := m.queue
	m.queue = nil
	m.loading.Begin(len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for _, req := range reqs {
		g.Go(func() error {
			defer m.loading.ItemDone(req.key)
			if err := ctx.Err(); err != nil {
				return err
			}
			tex, err := decodeTexture(m.fsys, req)
			if err != nil {
				m.logger.Error("texture load failed",
					zap.String("key", req.key),
					zap.String("path", req.path),
					zap.Error(err))
				return err
			}
			m.mu.Lock()
			m.textures[req.key] = tex
			m.mu.Unlock()
			w, h := tex.Size()
			m.logger.Debug("texture loaded",
				zap.String("key", req.key),
				zap.String("format", tex.Format),
				zap.Int("width", w),
				zap.Int("height", h))
			return nil
		})
	}
	return g.Wait()
}

func decodeTexture(fsys fs.FS, req loadRequest) (*Texture, error) {
	f, err := fsys.Open(req.path)
	if err != nil {
		return nil, fmt.Errorf("open texture %s (%s): %w", req.key, req.path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s (%s): %w", req.key, req.path, err)
	}
	return &Texture{
		Key:        req.key,
		Path:       req.path,
		Format:     format,
		ColorSpace: req.space,
		Image:      img,
	}, nil
}
