// Package generator drives discovery rounds and hands their classes to generators.
package generator

import (
	"context"
	"fmt"

	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/discovery"
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/emit"
	"github.com/Litote/kgenerator/pkg/model"
	"github.com/Litote/kgenerator/pkg/translator"
)

// Generator emits files for the classes of a round.
type Generator interface {
	Name() string
	Generate(ctx context.Context, r *Round) error
}

// Round is what a generator sees of one discovery round.
type Round struct {
	Number  int
	Env     element.Environment
	Model   *model.Env
	Classes *model.ClassSet
	Writer  *emit.Writer
	Report  *diag.Reporter
	Options *Options
}

// Processor runs discovery then every generator for each round.
type Processor struct {
	opts       *Options
	tr         *translator.Translator
	generators []Generator
	report     *diag.Reporter
	rounds     int
}

// NewProcessor returns a Processor translating with tr. opts must be normalized.
func NewProcessor(opts *Options, tr *translator.Translator, report *diag.Reporter, generators ...Generator) *Processor {
	if report == nil {
		report = diag.Discard()
	}
	return &Processor{opts: opts, tr: tr, generators: generators, report: report}
}

// Process runs one round over env. Generator failures are reported and do not stop the
// round; only a cancelled ctx does.
func (p *Processor) Process(ctx context.Context, env element.Environment, w *emit.Writer) (*Round, error) {
	p.rounds++
	report := p.report.With("round", p.rounds)
	menv := model.NewEnv(env, p.tr, p.opts.ModelOptions(report)...)
	classes := discovery.New(menv, report).Discover(env,
		element.AnnotationKind(p.opts.Annotation), element.AnnotationKind(p.opts.Registry))

	r := &Round{
		Number:  p.rounds,
		Env:     env,
		Model:   menv,
		Classes: classes,
		Writer:  w,
		Report:  report,
		Options: p.opts,
	}
	if !classes.IsNotEmpty() {
		report.Debug(func() any { return fmt.Sprintf("round %d: nothing to generate", p.rounds) })
		return r, nil
	}
	for _, g := range p.generators {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		gr := *r
		gr.Report = report.With("generator", g.Name())
		if err := g.Generate(ctx, &gr); err != nil {
			gr.Report.Error(fmt.Errorf("generator %s: %w", g.Name(), err))
		}
	}
	return r, nil
}

// Rounds is the number of rounds processed.
func (p *Processor) Rounds() int {
	return p.rounds
}
