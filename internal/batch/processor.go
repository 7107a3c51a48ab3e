package batch

import (
	"context"
	"errors"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/0xh7ml/URLxtract/internal/domain"
)

// ErrNoParser is returned when the processor cannot parse anything at all.
var ErrNoParser = errors.New("batch: parser has no suffix ruleset")

type Processor struct {
	parser  *domain.Parser
	workers int
	log     *zap.Logger
}

type Option func(*Processor)

// WithWorkers overrides the pool size. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

func NewProcessor(parser *domain.Parser, opts ...Option) *Processor {
	p := &Processor{
		parser:  parser,
		workers: runtime.GOMAXPROCS(0),
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process extracts the requested form from every URL on a fixed pool of
// workers. Each result lands in the slot of its input, so the output keeps
// input order regardless of scheduling. URLs yielding nothing are dropped.
func (p *Processor) Process(ctx context.Context, urls []string, mode domain.Mode) ([]string, error) {
	if !p.parser.Ready() {
		return nil, ErrNoParser
	}

	results := make([]string, len(urls))
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range urls {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- i:
			}
		}
		return nil
	})

	workers := min(p.workers, len(urls))
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				results[i] = p.parser.Extract(urls[i], mode)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	dropped := 0
	for i, r := range results {
		if r == "" {
			dropped++
			p.log.Debug("batch: no result", zap.String("url", urls[i]), zap.Stringer("mode", mode))
			continue
		}
		out = append(out, r)
	}

	p.log.Debug("batch: processed",
		zap.Int("urls", len(urls)),
		zap.Int("results", len(out)),
		zap.Int("dropped", dropped),
		zap.Int("workers", workers),
	)
	return out, nil
}
