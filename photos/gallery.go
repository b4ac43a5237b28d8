package photos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/killianmoore/web/imagemeta"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 8

// Gallery discovers photos under a public directory. Every call reads the
// filesystem again.
type Gallery struct {
	PublicDir  string
	SeriesPath string

	// Curated src values (unencoded) that lead the gallery
	Curated []string

	// Workers bounds concurrent metadata reads
	Workers int

	Log *zap.Logger
}

// candidate is a photo before source resolution
type candidate struct {
	publicURL string
	alt       string
}

// filePath maps a public URL to a path under PublicDir
func (g *Gallery) filePath(publicURL string) (string, bool) {
	segments, ok := splitPublicURL(publicURL)
	if !ok {
		return "", false
	}
	return filepath.Join(append([]string{g.PublicDir}, segments...)...), true
}

func (g *Gallery) exists(publicURL string) bool {
	p, ok := g.filePath(publicURL)
	if !ok {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}

// resolve finds the file to serve for publicURL: the _web JPEG derivative,
// then for TIFFs a JPEG sibling (or its derivative), then the file itself
func (g *Gallery) resolve(publicURL string) (string, bool) {
	if derivative := webDerivative(publicURL); g.exists(derivative) {
		return derivative, true
	}

	ext := strings.ToLower(path.Ext(publicURL))
	if ext == ".tif" || ext == ".tiff" {
		jpeg := publicURL[:len(publicURL)-len(ext)] + ".jpg"
		if derivative := webDerivative(jpeg); g.exists(derivative) {
			return derivative, true
		}
		if g.exists(jpeg) {
			return jpeg, true
		}
		return "", false
	}

	if g.exists(publicURL) {
		return publicURL, true
	}
	return "", false
}

// LoadSeries reads the series file and keeps only images present under
// PublicDir. A missing cover falls back to the first kept image; series
// without images are dropped.
func (g *Gallery) LoadSeries() ([]Series, error) {
	data, err := os.ReadFile(g.SeriesPath)
	if err != nil {
		return nil, fmt.Errorf("read series: %w", err)
	}

	var raw []Series
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode series %s: %w", g.SeriesPath, err)
	}

	series := make([]Series, 0, len(raw))
	for _, s := range raw {
		var images []Image
		for _, image := range s.Images {
			if g.exists(image.Src) {
				images = append(images, image)
			}
		}
		if len(images) == 0 {
			continue
		}
		if !g.exists(s.Cover) {
			s.Cover = images[0].Src
		}
		s.Images = images
		series = append(series, s)
	}
	return series, nil
}

// SeriesBySlug returns the series with the given slug, or nil
func (g *Gallery) SeriesBySlug(slug string) (*Series, error) {
	series, err := g.LoadSeries()
	if err != nil {
		return nil, err
	}
	for i := range series {
		if series[i].Slug == slug {
			return &series[i], nil
		}
	}
	return nil, nil
}

// AllPhotos merges series images with files discovered in series-*
// directories. Curated photos come first, then the list is split stably
// into landscape, portrait and unknown orientation.
func (g *Gallery) AllPhotos(ctx context.Context) ([]Photo, error) {
	series, err := g.LoadSeries()
	if errors.Is(err, fs.ErrNotExist) {
		g.logger().Warn("photo series file missing", zap.String("path", g.SeriesPath))
		series = nil
	} else if err != nil {
		return nil, err
	}

	var fromSeries []candidate
	for _, s := range series {
		for _, image := range s.Images {
			fromSeries = append(fromSeries, candidate{publicURL: image.Src, alt: image.Alt})
		}
	}

	discovered, err := g.discover()
	if err != nil {
		return nil, err
	}

	seriesPhotos, err := g.describe(ctx, fromSeries)
	if err != nil {
		return nil, err
	}
	discoveredPhotos, err := g.describe(ctx, discovered)
	if err != nil {
		return nil, err
	}

	all := make([]Photo, 0, len(seriesPhotos)+len(discoveredPhotos))
	seen := make(map[string]bool)
	for _, photo := range seriesPhotos {
		all = append(all, photo)
		seen[photo.Src] = true
	}
	for _, photo := range discoveredPhotos {
		if !seen[photo.Src] {
			seen[photo.Src] = true
			all = append(all, photo)
		}
	}

	return Order(all, g.Curated), nil
}

// Order puts curated photos first, then partitions by orientation keeping
// relative order
func Order(all []Photo, curated []string) []Photo {
	bySrc := make(map[string]Photo, len(all))
	for _, photo := range all {
		if _, ok := bySrc[photo.Src]; !ok {
			bySrc[photo.Src] = photo
		}
	}

	ordered := make([]Photo, 0, len(all))
	pinned := make(map[string]bool)
	for _, src := range curated {
		encoded := EncodePublicURL(src)
		if photo, ok := bySrc[encoded]; ok && !pinned[encoded] {
			pinned[encoded] = true
			ordered = append(ordered, photo)
		}
	}
	for _, photo := range all {
		if !pinned[photo.Src] {
			ordered = append(ordered, photo)
		}
	}

	var landscapes, portraits, unknown []Photo
	for _, photo := range ordered {
		switch photo.Orientation {
		case imagemeta.Landscape:
			landscapes = append(landscapes, photo)
		case imagemeta.Portrait:
			portraits = append(portraits, photo)
		default:
			unknown = append(unknown, photo)
		}
	}

	result := make([]Photo, 0, len(ordered))
	result = append(result, landscapes...)
	result = append(result, portraits...)
	return append(result, unknown...)
}

// discover lists supported files under PublicDir/images/series-*
func (g *Gallery) discover() ([]candidate, error) {
	imagesRoot := filepath.Join(g.PublicDir, "images")
	entries, err := os.ReadDir(imagesRoot)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", imagesRoot, err)
	}

	var found []candidate
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "series-") {
			continue
		}
		dir := filepath.Join(imagesRoot, entry.Name())
		err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() || !supportedExts[strings.ToLower(filepath.Ext(p))] {
				return nil
			}
			publicURL, ok := toPublicURL(g.PublicDir, p)
			if !ok {
				return nil
			}
			found = append(found, candidate{publicURL: publicURL, alt: altFromFilename(publicURL)})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	return found, nil
}

// describe resolves and sniffs candidates with bounded concurrency.
// Unresolvable candidates are dropped; input order is kept.
func (g *Gallery) describe(ctx context.Context, candidates []candidate) ([]Photo, error) {
	results := make([]*Photo, len(candidates))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.workers())
	for i, c := range candidates {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fileURL, ok := g.resolve(c.publicURL)
			if !ok {
				return nil
			}
			photo := Photo{Src: EncodePublicURL(fileURL), Alt: c.alt, Orientation: imagemeta.Unknown}
			if p, ok := g.filePath(fileURL); ok {
				meta := imagemeta.Read(p)
				photo.Width, photo.Height, photo.Orientation = meta.Width, meta.Height, meta.Orientation
			}
			results[i] = &photo
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	photos := make([]Photo, 0, len(results))
	for _, photo := range results {
		if photo != nil {
			photos = append(photos, *photo)
		}
	}
	return photos, nil
}

func (g *Gallery) workers() int {
	if g.Workers > 0 {
		return g.Workers
	}
	return defaultWorkers
}

func (g *Gallery) logger() *zap.Logger {
	if g.Log == nil {
		return zap.NewNop()
	}
	return g.Log
}
