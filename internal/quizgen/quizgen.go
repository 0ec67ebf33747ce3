// Package quizgen wires extraction, segmentation, ranking and assembly into
// the single quiz generation entry point.
package quizgen

import (
	"context"
	"math/rand"
	"time"

	"quiz-forge/internal/assembler"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/extractor"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/salience"
	"quiz-forge/internal/segmenter"
	"quiz-forge/internal/synth"

	"go.uber.org/zap"
)

// Options are the tunables of the pipeline.
type Options struct {
	NumOptions        int
	MinSentenceLen    int
	MaxSentenceLen    int
	KeywordMultiplier int // keyword pool size = numQuestions × KeywordMultiplier
	MaxFeatures       int
	MaxAttempts       int
	RelaxMCQ          bool
	FilterOverlap     bool
}

// DefaultOptions mirrors the documented defaults.
func DefaultOptions() Options {
	return Options{
		NumOptions:        synth.DefaultNumOptions,
		MinSentenceLen:    segmenter.DefaultMinLen,
		MaxSentenceLen:    segmenter.DefaultMaxLen,
		KeywordMultiplier: 3,
		MaxFeatures:       salience.DefaultMaxFeatures,
		RelaxMCQ:          true,
		FilterOverlap:     true,
	}
}

// OptionsFromConfig maps the generation section of the configuration.
func OptionsFromConfig(cfg config.GenerationConfig) Options {
	return Options{
		NumOptions:        cfg.NumOptions,
		MinSentenceLen:    cfg.MinSentenceLen,
		MaxSentenceLen:    cfg.MaxSentenceLen,
		KeywordMultiplier: cfg.KeywordMultiplier,
		MaxFeatures:       cfg.MaxFeatures,
		MaxAttempts:       cfg.MaxAttempts,
		RelaxMCQ:          cfg.RelaxMCQ,
		FilterOverlap:     cfg.FilterOverlap,
	}
}

// Generator runs the pipeline. It keeps no per-call state and may be shared.
type Generator struct {
	opts   Options
	seg    *segmenter.Segmenter
	ranker *salience.Ranker
	log    *zap.Logger
}

// NewGenerator validates opts and prepares the sentence tokenizer.
func NewGenerator(opts Options, log *zap.Logger) (*Generator, error) {
	if opts.KeywordMultiplier <= 0 {
		opts.KeywordMultiplier = 3
	}
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = salience.DefaultMaxFeatures
	}
	if opts.MinSentenceLen == 0 && opts.MaxSentenceLen == 0 {
		opts.MinSentenceLen, opts.MaxSentenceLen = segmenter.DefaultMinLen, segmenter.DefaultMaxLen
	}
	if opts.NumOptions < 2 {
		opts.NumOptions = synth.DefaultNumOptions
	}
	if log == nil {
		log = logger.Get()
	}

	seg, err := segmenter.Default()
	if err != nil {
		return nil, err
	}
	if opts.MinSentenceLen != segmenter.DefaultMinLen || opts.MaxSentenceLen != segmenter.DefaultMaxLen {
		if seg, err = seg.WithBand(opts.MinSentenceLen, opts.MaxSentenceLen); err != nil {
			return nil, domain.NewInvalidInputError(err.Error())
		}
	}

	return &Generator{
		opts:   opts,
		seg:    seg,
		ranker: salience.NewRanker(salience.WithMaxFeatures(opts.MaxFeatures)),
		log:    log,
	}, nil
}

// GenerateText builds a quiz from already extracted text. The same text,
// numQuestions and seed always give the same quiz.
func (g *Generator) GenerateText(text string, numQuestions int, seed int64) domain.Quiz {
	if numQuestions <= 0 {
		numQuestions = assembler.DefaultNumQuestions
	}
	rng := rand.New(rand.NewSource(seed))

	all := g.seg.Split(text)
	sentences := g.seg.Filter(all)
	ranked := g.ranker.Rank(all)
	keywords := salience.Candidates(ranked, numQuestions*g.opts.KeywordMultiplier, rng)

	quiz, report := assembler.Assemble(
		assembler.Input{Sentences: sentences, Keywords: keywords},
		assembler.Options{
			NumQuestions: numQuestions,
			MaxAttempts:  g.opts.MaxAttempts,
			RelaxMCQ:     g.opts.RelaxMCQ,
			MCQ:          synth.MCQBuilder{NumOptions: g.opts.NumOptions, FilterOverlap: g.opts.FilterOverlap},
		},
		rng,
	)

	g.log.Debug("Quiz assembled",
		zap.Int("sentences", len(sentences)),
		zap.Int("ranked_terms", len(ranked)),
		zap.Int("keywords", len(keywords)),
		zap.Int("cloze", report.Cloze.Items),
		zap.String("cloze_state", report.Cloze.State.String()),
		zap.Int("mcq", report.MCQ.Items),
		zap.String("mcq_state", report.MCQ.State.String()),
		zap.Bool("mcq_relaxed", report.MCQ.Relaxed),
	)
	if report.Cloze.Items < numQuestions || report.MCQ.Items < numQuestions {
		g.log.Info("Document too sparse for the requested question count",
			zap.Int("requested", numQuestions),
			zap.Int("cloze", report.Cloze.Items),
			zap.Int("mcq", report.MCQ.Items),
		)
	}
	return quiz
}

// GenerateFile extracts the document at path and builds a quiz from it.
// Unsupported extensions and unreadable documents are returned as domain
// errors; an empty document is not an error and yields an empty quiz.
func (g *Generator) GenerateFile(ctx context.Context, path string, numQuestions int, seed int64) (domain.Quiz, error) {
	text, err := extractor.ExtractFile(ctx, path)
	if err != nil {
		return domain.NewEmptyQuiz(), err
	}
	return g.GenerateText(text, numQuestions, seed), nil
}

// GenerateQuiz is the plain entry point: default options, a time-based seed,
// and every failure degrades to an empty quiz.
func GenerateQuiz(path string, numQuestions int) domain.Quiz {
	log := logger.Get()
	g, err := NewGenerator(DefaultOptions(), log)
	if err != nil {
		log.Error("Failed to prepare quiz generator", zap.Error(err))
		return domain.NewEmptyQuiz()
	}
	quiz, err := g.GenerateFile(context.Background(), path, numQuestions, time.Now().UnixNano())
	if err != nil {
		log.Warn("Quiz generation fell back to an empty quiz", zap.String("file", path), zap.Error(err))
		return domain.NewEmptyQuiz()
	}
	return quiz
}
