// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package compile turns AsyncAPI message payload schemas into ordered class
// definitions, a topic to class mapping and handler signatures.
package compile

import (
	"context"
	"sort"

	"github.com/bellflight/asyncgen/internal/asyncapi"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Compiler compiles AsyncAPI specs. The zero value is not usable; call New.
type Compiler struct {
	workers int
	log     *zap.SugaredLogger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithWorkers sets how many messages are compiled concurrently.
// Values below 2 compile sequentially.
func WithWorkers(n int) Option {
	return func(c *Compiler) {
		c.workers = n
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		workers: 1,
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile binds topics, compiles every message and emits callback signatures.
// Any error aborts the whole unit.
func (c *Compiler) Compile(ctx context.Context, spec *asyncapi.Spec) (*Unit, error) {
	topics, err := BindTopics(spec.Channels)
	if err != nil {
		return nil, err
	}

	classes, err := c.CompileMessages(ctx, spec.Messages)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(spec.Messages))
	for _, m := range spec.Messages {
		known[m.Name] = true
	}
	topicNames := make([]string, 0, len(topics))
	for topic := range topics {
		topicNames = append(topicNames, topic)
	}
	sort.Strings(topicNames)
	for _, topic := range topicNames {
		if !known[topics[topic]] {
			return nil, schemaError(ErrUnknownMessage, "channel %q references message %q", topic, topics[topic])
		}
	}

	c.log.Infow("compiled spec",
		"messages", len(spec.Messages),
		"classes", len(classes),
		"topics", len(topics))

	return &Unit{
		Title:     spec.Info.Title,
		Version:   spec.Info.Version,
		Classes:   classes,
		Topics:    topics,
		Callbacks: EmitCallbacks(PayloadClasses(topics)),
	}, nil
}

// CompileMessages compiles each message payload into its class definitions and
// concatenates them in declared message order, whatever the worker count.
// When several messages fail, the error of the first declared one is returned.
func (c *Compiler) CompileMessages(ctx context.Context, messages []asyncapi.Message) ([]ClassDef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([][]ClassDef, len(messages))
	errs := make([]error, len(messages))

	compileOne := func(i int) error {
		m := messages[i]
		c.log.Debugw("building code for message", "message", m.Name)
		defs, err := EmitClass(m.Name, m.Payload)
		if err != nil {
			errs[i] = errors.Wrapf(err, "message %q", m.Name)
			return errs[i]
		}
		results[i] = defs
		return nil
	}

	if c.workers < 2 {
		for i := range messages {
			if err := compileOne(i); err != nil {
				return nil, err
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(c.workers)
		for i := range messages {
			g.Go(func() error { return compileOne(i) })
		}
		if g.Wait() != nil {
			for _, err := range errs {
				if err != nil {
					return nil, err
				}
			}
		}
	}

	var classes []ClassDef
	for _, defs := range results {
		classes = append(classes, defs...)
	}
	if err := checkUnique(classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func checkUnique(classes []ClassDef) error {
	seen := make(map[string]bool, len(classes))
	for _, c := range classes {
		if seen[c.Name] {
			return schemaError(ErrNameCollision, "class %s is derived more than once", c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}
