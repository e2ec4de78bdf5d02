// Package pipeline runs the extraction over a corpus: every sentence is
// parsed, its hyphenated words merged, its triples extracted and filtered.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/revelaction/svograph/corpus"
	"github.com/revelaction/svograph/group"
	"github.com/revelaction/svograph/merge"
	"github.com/revelaction/svograph/metrics"
	"github.com/revelaction/svograph/parse"
	"github.com/revelaction/svograph/passive"
	"github.com/revelaction/svograph/relation"
	"github.com/revelaction/svograph/render"
	sent "github.com/revelaction/svograph/sentence"
	"github.com/revelaction/svograph/svo"
)

var ErrMerge = errors.New("merge failed")

// Writer receives the records of the sentences with at least one triple.
type Writer interface {
	Write(render.Record) error
}

// Result is the outcome of processing one sentence.
type Result struct {
	// Sentence is the parse after merging the hyphenated words
	Sentence sent.Sentence
	Passive  passive.Result

	// Raw are the extracted triples, Triples the filtered ones
	Raw     []svo.Triple
	Triples []svo.Triple
}

// Summary counts the sentences and triples of a run.
type Summary struct {
	RunId      string
	Sentences  int
	Mentioned  int
	NotParsed  int
	Failed     int
	RawTriples int
	Triples    int
	Written    int
}

type Pipeline struct {
	Parser  parse.Parser
	Groups  *group.Table
	Filter  *relation.Filter
	Logger  logrus.FieldLogger
	Metrics *metrics.Metrics

	// Workers is the number of sentences processed in parallel. Zero means
	// runtime.NumCPU().
	Workers int

	// SkipErrors logs and skips the sentences that fail to process instead
	// of aborting the run.
	SkipErrors bool

	// Progress, if set, is called after each sentence with the number of
	// processed sentences and the total. It may be called concurrently.
	Progress func(done, total int)
}

func New(parser parse.Parser, groups *group.Table, aux relation.AuxChecker, logger logrus.FieldLogger) *Pipeline {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		logger = l
	}

	return &Pipeline{
		Parser: parser,
		Groups: groups,
		Filter: relation.NewFilter(groups, aux),
		Logger: logger,
	}
}

// Process parses the text and returns its raw and filtered triples.
func (p *Pipeline) Process(text string) (Result, error) {
	tree, err := parse.Tree(p.Parser, text)
	if err != nil {
		return Result{}, err
	}

	merged, err := merge.Hyphenated(tree)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrMerge, err)
	}

	raw := svo.Extract(merged)

	return Result{
		Sentence: merged.Sentence(),
		Passive:  passive.Detect(merged.Tokens()),
		Raw:      raw,
		Triples:  p.Filter.Apply(raw),
	}, nil
}

type sentence struct {
	clean string
	raw   string
}

type outcome struct {
	sentence string
	result   Result
	skipped  bool
}

// Run cleans the records, keeps the ones mentioning a group and processes
// them. The records with at least one filtered triple are written to w in
// input order. Sentences missing from the parser are logged and skipped.
func (p *Pipeline) Run(ctx context.Context, records []corpus.Record, w Writer) (Summary, error) {
	summary := Summary{RunId: uuid.New().String(), Sentences: len(records)}
	log := p.Logger.WithField("run", summary.RunId)

	sentences := []sentence{}
	for _, r := range records {
		s := corpus.Clean(r.Sentence)
		if !p.Groups.Mentioned(s) {
			p.count("filtered")
			continue
		}
		sentences = append(sentences, sentence{clean: s, raw: r.Sentence})
	}
	summary.Mentioned = len(sentences)

	log.WithFields(logrus.Fields{
		"sentences": summary.Sentences,
		"mentioned": summary.Mentioned,
	}).Info("Starting extraction")

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]outcome, len(sentences))
	var done, notParsed, failed int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, s := range sentences {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			defer func() {
				n := int(atomic.AddInt32(&done, 1))
				if p.Progress != nil {
					p.Progress(n, len(sentences))
				}
			}()

			if gctx.Err() != nil {
				return gctx.Err()
			}

			start := time.Now()
			res, err := p.processRecord(s)
			p.observe(time.Since(start))

			if err == nil {
				outcomes[i] = outcome{sentence: s.clean, result: res}
				return nil
			}

			outcomes[i] = outcome{sentence: s.clean, skipped: true}

			if errors.Is(err, parse.ErrNotParsed) {
				atomic.AddInt32(&notParsed, 1)
				p.count("not_parsed")
				log.WithField("sentence", s.clean).Warn("Sentence not found in the parsed store, skipping")
				return nil
			}

			p.countError(err)

			if p.SkipErrors {
				atomic.AddInt32(&failed, 1)
				p.count("failed")
				log.WithError(err).WithField("sentence", s.clean).Warn("Failed to process sentence, skipping")
				return nil
			}

			return fmt.Errorf("sentence %q: %w", s.clean, err)
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Extraction aborted")
		return summary, err
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	summary.NotParsed = int(notParsed)
	summary.Failed = int(failed)

	for _, o := range outcomes {
		if o.skipped {
			continue
		}

		summary.RawTriples += len(o.result.Raw)
		summary.Triples += len(o.result.Triples)
		p.countTriples(len(o.result.Raw), len(o.result.Triples))

		if len(o.result.Triples) == 0 {
			p.count("empty")
			continue
		}

		if err := w.Write(render.Record{Sentence: o.sentence, Triples: o.result.Triples}); err != nil {
			return summary, fmt.Errorf("writing record: %w", err)
		}

		summary.Written++
		p.count("written")
	}

	log.WithFields(logrus.Fields{
		"not_parsed":  summary.NotParsed,
		"failed":      summary.Failed,
		"raw_triples": summary.RawTriples,
		"triples":     summary.Triples,
		"written":     summary.Written,
	}).Info("Extraction completed")

	return summary, nil
}

// processRecord processes the cleaned sentence. The parser may hold the
// text as it was before cleaning, so that is tried next.
func (p *Pipeline) processRecord(s sentence) (Result, error) {
	res, err := p.Process(s.clean)
	if errors.Is(err, parse.ErrNotParsed) && s.raw != s.clean {
		return p.Process(s.raw)
	}

	return res, err
}

func (p *Pipeline) count(label string) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.Sentences.WithLabelValues(label).Inc()
}

func (p *Pipeline) countTriples(raw, filtered int) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.Triples.WithLabelValues("raw").Add(float64(raw))
	p.Metrics.Triples.WithLabelValues("filtered").Add(float64(filtered))
}

func (p *Pipeline) countError(err error) {
	if p.Metrics == nil {
		return
	}

	typ := "other"
	switch {
	case errors.Is(err, ErrMerge):
		typ = "merge"
	case errors.Is(err, sent.ErrInvalidTree):
		typ = "tree"
	}
	p.Metrics.ProcessingErrors.WithLabelValues(typ).Inc()
}

func (p *Pipeline) observe(d time.Duration) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.ProcessingDuration.Observe(d.Seconds())
}
