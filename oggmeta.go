package oggmeta

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/oggmeta/internal/ogg"
	"github.com/simonhull/oggmeta/internal/probe"
)

// PacketSource is an alias to probe.Source, the packet-reader
// collaborator Identify consumes. The built-in implementation is
// created by NewPacketReader; bring your own framing layer by
// implementing the same shape.
type PacketSource = probe.Source

// File represents a probed Ogg container.
type File struct {
	// Path to the file ("" when probed from a reader)
	Path string

	// Size of the container in bytes
	Size int64

	// Streams holds one entry per discovered logical stream, in
	// discovery order. Single-stream files yield one element.
	Streams []StreamMetadata

	// Warnings encountered during probing (non-fatal issues)
	Warnings []Warning
}

// Probe opens an Ogg file and identifies its streams.
//
// Probing is eager and bounded: the head of the file plus one tail
// window are read, and the file handle is closed before Probe returns.
//
// Truncated files return partial data with warnings instead of an
// error. Check File.Warnings for streams whose duration could not be
// recovered.
//
// Options customize probing behavior:
//
//	file, err := oggmeta.Probe("movie.ogv",
//	    oggmeta.WithTailWindow(512*1024),
//	)
//
// Example:
//
//	file, err := oggmeta.Probe("song.opus")
//	if err != nil {
//		return err
//	}
//	for _, s := range file.Streams {
//		fmt.Println(s)
//	}
func Probe(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	file, err := probeReader(f, stat.Size(), path, opts)
	if err != nil {
		return nil, err
	}
	file.Path = path
	return file, nil
}

// ProbeReader identifies the streams of an Ogg container held by any
// random-access byte source.
func ProbeReader(r io.ReaderAt, size int64, opts ...Option) (*File, error) {
	return probeReader(r, size, "", opts)
}

func probeReader(r io.ReaderAt, size int64, path string, opts []Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	src := ogg.NewReader(r, size, path)
	streams, warnings, err := probe.Identify(src, options.config)
	if err != nil {
		return nil, err
	}

	if options.strict && len(warnings) > 0 {
		return nil, fmt.Errorf("strict probing failed: %s", warnings[0].Message)
	}

	return &File{
		Size:     size,
		Streams:  streams,
		Warnings: warnings,
	}, nil
}

// Identify classifies the logical streams delivered by src.
//
// This is the low-level entry point for callers that bring their own
// packet framing. Most code should use Probe or ProbeReader.
//
// The returned warnings carry the same degraded-result information
// Probe folds into File.Warnings.
func Identify(src PacketSource, opts ...Option) ([]StreamMetadata, []Warning, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return probe.Identify(src, options.config)
}

// NewPacketReader creates the built-in PacketSource over a
// random-access byte source.
func NewPacketReader(r io.ReaderAt, size int64) PacketSource {
	return ogg.NewReader(r, size, "")
}

// ProbeMany probes multiple files concurrently.
//
// Files are probed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any
// probe fails, the first error is returned and the partial results are
// discarded.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	files, err := oggmeta.ProbeMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
func ProbeMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Probe(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
