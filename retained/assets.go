package retained

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/zeebo/xxh3"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Spawner runs work off the frame goroutine. Implementations request a redraw
// once the work returns.
type Spawner interface {
	Go(fn func(ctx context.Context) error)
}

// AssetState describes where an asset is in its load lifecycle.
type AssetState uint8

const (
	AssetLoading AssetState = iota
	AssetReady
	AssetFailed
)

type assetKind uint8

const (
	assetRaster assetKind = iota + 1
	assetVector
)

// Asset is a loaded image or SVG document.
type Asset struct {
	State AssetState
	Key   string
	Image image.Image    // Raster assets
	Icon  *oksvg.SvgIcon // Vector assets
	Size  Size           // Intrinsic size
	Err   error
}

type assetEntry struct {
	asset Asset
	gen   uint64
}

// AssetCache loads images and SVG documents once per source and hands the
// results to drawables. File sources load through the Spawner when one is
// set; inline data always decodes synchronously.
//
// The cache is the one structure touched from background goroutines, so it
// carries its own lock.
type AssetCache struct {
	mu      sync.Mutex
	entries map[string]*assetEntry
	gen     uint64

	spawner  Spawner
	logger   *slog.Logger
	readFile func(string) ([]byte, error)
}

// NewAssetCache creates a cache. A nil spawner loads files synchronously.
func NewAssetCache(spawner Spawner, logger *slog.Logger) *AssetCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssetCache{
		entries:  make(map[string]*assetEntry),
		spawner:  spawner,
		logger:   logger,
		readFile: os.ReadFile,
	}
}

// Image returns the raster asset for a file path, starting a load if needed.
func (c *AssetCache) Image(path string) Asset {
	return c.file("img:"+path, path, assetRaster)
}

// SVG returns the vector asset for a file path, starting a load if needed.
func (c *AssetCache) SVG(path string) Asset {
	return c.file("svg:"+path, path, assetVector)
}

// ImageData decodes an in-memory raster image.
func (c *AssetCache) ImageData(data []byte) Asset {
	return c.inline("img:mem:"+dataKey(data), data, assetRaster)
}

// SVGData parses an in-memory SVG document.
func (c *AssetCache) SVGData(data []byte) Asset {
	return c.inline("svg:mem:"+dataKey(data), data, assetVector)
}

// Invalidate drops a cached file source so the next lookup reloads it.
// Loads already in flight for the old entry are discarded when they finish.
func (c *AssetCache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, "img:"+path)
	delete(c.entries, "svg:"+path)
	c.mu.Unlock()
}

func (c *AssetCache) file(key, path string, kind assetKind) Asset {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		a := e.asset
		c.mu.Unlock()
		return a
	}
	c.gen++
	e := &assetEntry{asset: Asset{State: AssetLoading, Key: key}, gen: c.gen}
	c.entries[key] = e
	c.mu.Unlock()

	load := func(ctx context.Context) error {
		data, err := c.readFile(path)
		var a Asset
		if err != nil {
			a = failedAsset(key, fmt.Errorf("read %s: %w", path, err))
		} else {
			a = decodeAsset(key, data, kind)
		}
		c.finish(key, e.gen, a)
		return a.Err
	}

	if c.spawner == nil {
		load(context.Background())
		return c.lookup(key)
	}
	c.spawner.Go(load)
	return e.asset
}

func (c *AssetCache) inline(key string, data []byte, kind assetKind) Asset {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		a := e.asset
		c.mu.Unlock()
		return a
	}
	c.gen++
	gen := c.gen
	c.entries[key] = &assetEntry{asset: Asset{State: AssetLoading, Key: key}, gen: gen}
	c.mu.Unlock()

	c.finish(key, gen, decodeAsset(key, data, kind))
	return c.lookup(key)
}

func (c *AssetCache) lookup(key string) Asset {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.asset
	}
	return Asset{State: AssetLoading, Key: key}
}

// finish stores a load result unless the entry was invalidated meanwhile.
func (c *AssetCache) finish(key string, gen uint64, a Asset) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok || e.gen != gen {
		c.mu.Unlock()
		c.logger.Debug("dropping stale asset load", slog.String("key", key))
		return
	}
	e.asset = a
	c.mu.Unlock()

	if a.Err != nil {
		c.logger.Warn("asset load failed, drawing placeholder",
			slog.String("key", key), slog.Any("err", a.Err))
	}
}

func failedAsset(key string, err error) Asset {
	return Asset{State: AssetFailed, Key: key, Err: err}
}

func decodeAsset(key string, data []byte, kind assetKind) Asset {
	switch kind {
	case assetVector:
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
		if err != nil {
			return failedAsset(key, fmt.Errorf("parse svg: %w", err))
		}
		return Asset{
			State: AssetReady,
			Key:   key,
			Icon:  icon,
			Size:  Size{Width: float32(icon.ViewBox.W), Height: float32(icon.ViewBox.H)},
		}
	default:
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return failedAsset(key, fmt.Errorf("decode image: %w", err))
		}
		b := img.Bounds()
		return Asset{
			State: AssetReady,
			Key:   key,
			Image: img,
			Size:  Size{Width: float32(b.Dx()), Height: float32(b.Dy())},
		}
	}
}

func dataKey(data []byte) string {
	return strconv.FormatUint(xxh3.Hash(data), 16)
}

// rasterizeSVG renders an icon into a w x h RGBA image.
func rasterizeSVG(icon *oksvg.SvgIcon, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img
}
