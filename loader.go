package alx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/arloliu/alx/catalog"
	"github.com/arloliu/alx/compress"
	"github.com/arloliu/alx/config"
	"github.com/arloliu/alx/container"
	"github.com/arloliu/alx/format"
	"github.com/arloliu/alx/internal/options"
	"github.com/arloliu/alx/store"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files fetched and decompressed in parallel.
const DefaultConcurrency = 8

// ErrNoSink is returned by write operations of a Loader created without a sink.
var ErrNoSink = errors.New("loader has no sink")

// Patterns selects the record files of a disc image by name substring.
type Patterns struct {
	EVP string
	ENP string
	// DAT patterns only match names ending in ".dat".
	DAT []string
}

// DefaultPatterns returns the file patterns of the retail disc layout.
func DefaultPatterns() Patterns {
	return Patterns{
		EVP: "epevent.evp",
		ENP: "_ep.enp",
		DAT: []string{"ecinit", "ebinit"},
	}
}

// LoadResult is the output of Loader.ReadEnemies.
type LoadResult struct {
	Catalog *catalog.Catalog
	// Records are every record read, in read order.
	Records []container.Record
	Skipped []container.Skip
	// Sources are the store names read, in read order.
	Sources []string
}

// Loader reads enemy records from a store, reconciles them into a catalog
// and writes rebuilt files back.
//
// A Loader remembers which files were AKLZ-compressed on the source, so that
// WriteFile can store replacements in the same form.
type Loader struct {
	src           store.Source
	sink          store.Sink
	logger        *Logger
	patterns      Patterns
	concurrency   int
	containerOpts []container.Option
	parser        *container.Parser

	mu         sync.Mutex
	compressed map[string]bool
}

// LoaderOption configures a Loader.
type LoaderOption = options.Option[*Loader]

// NewLoader creates a Loader reading from src. If src also implements
// store.Sink it is used as the sink unless WithSink overrides it.
func NewLoader(src store.Source, opts ...LoaderOption) (*Loader, error) {
	if src == nil {
		return nil, errors.New("loader source must not be nil")
	}

	l := &Loader{
		src:         src,
		logger:      NoopLogger(),
		patterns:    DefaultPatterns(),
		concurrency: DefaultConcurrency,
		compressed:  make(map[string]bool),
	}
	if sink, ok := src.(store.Sink); ok {
		l.sink = sink
	}

	if err := options.Apply(l, opts...); err != nil {
		return nil, err
	}

	parser, err := container.NewParser(l.parserOptions()...)
	if err != nil {
		return nil, err
	}
	l.parser = parser

	return l, nil
}

// WithLogger sets the logger of the loader and its parser.
func WithLogger(logger *Logger) LoaderOption {
	return options.NoError(func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	})
}

// WithSink sets where WriteFile and Rebake store their output.
func WithSink(sink store.Sink) LoaderOption {
	return options.NoError(func(l *Loader) {
		l.sink = sink
	})
}

// WithPatterns sets the file patterns read by ReadEnemies.
func WithPatterns(p Patterns) LoaderOption {
	return options.New(func(l *Loader) error {
		if p.ENP == "" {
			return errors.New("ENP pattern must not be empty")
		}
		l.patterns = p

		return nil
	})
}

// WithConcurrency sets how many files are fetched and decompressed at once.
func WithConcurrency(n int) LoaderOption {
	return options.New(func(l *Loader) error {
		if n <= 0 {
			return fmt.Errorf("concurrency must be positive, got %d", n)
		}
		l.concurrency = n

		return nil
	})
}

// WithContainerOptions passes options to the container parser and builder.
func WithContainerOptions(opts ...container.Option) LoaderOption {
	return options.NoError(func(l *Loader) {
		l.containerOpts = append(l.containerOpts, opts...)
	})
}

// WithConfig applies the patterns and container settings of cfg.
func WithConfig(cfg *config.Config) LoaderOption {
	return options.New(func(l *Loader) error {
		if cfg == nil {
			return errors.New("config must not be nil")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		l.patterns = Patterns{
			EVP: cfg.Sources.EVPPattern,
			ENP: cfg.Sources.ENPPattern,
			DAT: slices.Clone(cfg.Sources.DATPatterns),
		}
		l.containerOpts = append(l.containerOpts, cfg.ContainerOptions()...)

		return nil
	})
}

func (l *Loader) parserOptions() []container.Option {
	opts := make([]container.Option, 0, len(l.containerOpts)+1)
	opts = append(opts, container.WithLogger(l.logger.Logger))

	return append(opts, l.containerOpts...)
}

type sourceFile struct {
	name string
	kind format.ContainerKind
	data []byte
}

// ReadEnemies reads every record file, parses it and reconciles the records.
//
// Event containers are read first, then field containers, then single-record
// files. Records are tagged with the base name of their file, or with the
// segment name for multi-segment containers. Read and decompression failures
// and corrupt container headers abort the load; unreadable records are
// skipped and reported in LoadResult.Skipped.
func (l *Loader) ReadEnemies(ctx context.Context) (*LoadResult, error) {
	files, err := l.listSources(ctx)
	if err != nil {
		return nil, err
	}

	if err := l.fetch(ctx, files); err != nil {
		return nil, err
	}

	res := &LoadResult{Sources: make([]string, 0, len(files))}
	for _, f := range files {
		parsed, err := l.parser.Parse(f.data, path.Base(f.name), f.kind)
		if err != nil {
			return nil, err
		}
		res.Records = append(res.Records, parsed.Records...)
		res.Skipped = append(res.Skipped, parsed.Skipped...)
		res.Sources = append(res.Sources, f.name)
	}

	res.Catalog = catalog.Reconcile(catalog.FromRecords(res.Records))
	l.logger.LogReconcile(ctx, len(files), len(res.Records), res.Catalog.Len(), len(res.Skipped))

	return res, nil
}

func (l *Loader) listSources(ctx context.Context) ([]sourceFile, error) {
	var files []sourceFile

	if l.patterns.EVP != "" {
		names, err := l.src.List(ctx, l.patterns.EVP)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", l.patterns.EVP, err)
		}
		for _, name := range names {
			files = append(files, sourceFile{name: name, kind: format.ContainerEVP})
		}
	}

	names, err := l.src.List(ctx, l.patterns.ENP)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", l.patterns.ENP, err)
	}
	for _, name := range names {
		files = append(files, sourceFile{name: name, kind: format.ContainerENP})
	}

	seen := make(map[string]struct{})
	for _, pattern := range l.patterns.DAT {
		names, err := l.src.List(ctx, pattern)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", pattern, err)
		}
		for _, name := range names {
			if !strings.HasSuffix(strings.ToLower(name), ".dat") {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			files = append(files, sourceFile{name: name, kind: format.ContainerDAT})
		}
	}

	return files, nil
}

// fetch reads and decompresses files in parallel, filling in their data.
func (l *Loader) fetch(ctx context.Context, files []sourceFile) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i := range files {
		g.Go(func() error {
			data, err := l.load(gctx, files[i].name)
			if err != nil {
				return err
			}
			files[i].data = data

			return nil
		})
	}

	return g.Wait()
}

// load reads one file and returns its decompressed content.
func (l *Loader) load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := l.src.ReadFile(ctx, name)
	if err != nil {
		l.logger.LogFileRead(ctx, name, 0, 0, false, err)
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	compressed := compress.IsAKLZ(raw)
	data, err := Decompress(raw)
	if err != nil {
		l.logger.LogFileRead(ctx, name, len(raw), 0, compressed, err)
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}

	l.remember(name, compressed)
	l.logger.LogFileRead(ctx, name, len(raw), len(data), compressed, nil)

	return data, nil
}

func (l *Loader) remember(name string, compressed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.compressed[name] = compressed
}

// wasCompressed reports whether the source copy of name is AKLZ-compressed.
// Names not read before are probed; missing files count as uncompressed.
func (l *Loader) wasCompressed(ctx context.Context, name string) (bool, error) {
	l.mu.Lock()
	compressed, ok := l.compressed[name]
	l.mu.Unlock()
	if ok {
		return compressed, nil
	}

	head := make([]byte, compress.AKLZHeaderSize)
	n, err := l.src.ReadAt(ctx, name, head, 0)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	case err != nil && !errors.Is(err, io.EOF):
		return false, fmt.Errorf("probe %s: %w", name, err)
	}

	compressed = compress.IsAKLZ(head[:n])
	l.remember(name, compressed)

	return compressed, nil
}

// ReadSegments reads a multi-segment container and returns its segments with
// external names.
func (l *Loader) ReadSegments(ctx context.Context, name string) ([]container.Segment, error) {
	data, err := l.load(ctx, name)
	if err != nil {
		return nil, err
	}

	segments, err := container.ParseSegments(data, l.parserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	return segments, nil
}

// WriteFile stores data under name in the sink. data is AKLZ-compressed
// first if the source copy of name was compressed.
func (l *Loader) WriteFile(ctx context.Context, name string, data []byte) error {
	if l.sink == nil {
		return ErrNoSink
	}

	compressed, err := l.wasCompressed(ctx, name)
	if err != nil {
		return err
	}

	out := data
	if compressed {
		if out, err = Compress(data); err != nil {
			return fmt.Errorf("compress %s: %w", name, err)
		}
	}

	err = l.sink.WriteFile(ctx, name, out)
	l.logger.LogWrite(ctx, name, len(out), compressed, err)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return nil
}

// Rebake reads the named segment files, bakes them into one multi-segment
// container in the given order and writes it to target. Segments are named
// after the base name of their file.
func (l *Loader) Rebake(ctx context.Context, target string, segmentNames []string) error {
	files := make([]sourceFile, len(segmentNames))
	for i, name := range segmentNames {
		files[i] = sourceFile{name: name, kind: format.ContainerENP}
	}

	if err := l.fetch(ctx, files); err != nil {
		return err
	}

	segments := make([]container.Segment, len(files))
	for i, f := range files {
		segments[i] = container.Segment{Name: path.Base(f.name), Data: f.data}
	}

	baked, err := container.Bake(segments, l.parserOptions()...)
	if err != nil {
		return fmt.Errorf("bake %s: %w", target, err)
	}

	return l.WriteFile(ctx, target, baked)
}
