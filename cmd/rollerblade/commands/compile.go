package commands

import (
	"fmt"

	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/compiler/document"
	"git.home.luguber.info/inful/rollerblade/internal/compiler/script"
	"git.home.luguber.info/inful/rollerblade/internal/logfields"
	"git.home.luguber.info/inful/rollerblade/internal/output"
	"git.home.luguber.info/inful/rollerblade/internal/pipeline"
)

// CompileCmd implements the 'compile' command.
type CompileCmd struct {
	Input           string            `arg:"" help:"Input file"`
	Output          string            `arg:"" optional:"" help:"Output file or directory (trailing separator). Defaults to the input's directory."`
	TSConfig        string            `name:"tsconfig" short:"c" help:"tsconfig.json for TypeScript inputs" type:"path"`
	Template        string            `name:"template" short:"t" help:"Layout template for Markdown inputs" type:"path"`
	Engine          string            `name:"engine" short:"e" help:"Template engine (whiskers|mustache|go|text|html)"`
	Data            map[string]string `name:"data" short:"d" help:"Extra template data (key=value)"`
	NoMetadata      bool              `name:"no-metadata" help:"Do not write extracted front matter as JSON"`
	MetricsTextfile string            `name:"metrics-textfile" help:"Write Prometheus metrics to this node-exporter textfile" type:"path"`
}

func (c *CompileCmd) Run(g *Global, _ *CLI) error {
	recorder, flush := newRecorder(c.MetricsTextfile)
	defer flush()

	orch := pipeline.New(pipeline.DefaultRegistry(),
		pipeline.WithRecorder(recorder),
		pipeline.WithLogger(g.Logger))

	res, err := orch.Compile(g.context(), c.request())
	if err != nil {
		return err
	}

	written, err := output.WriteResult(res)
	if err != nil {
		return err
	}
	for _, p := range written {
		g.Logger.Debug("Wrote output", logfields.Path(p))
	}
	fmt.Println(res.Output)
	return nil
}

func (c *CompileCmd) request() *compiler.Request {
	opts := compiler.Options{}
	if c.TSConfig != "" {
		opts[script.OptionTSConfig] = c.TSConfig
	}
	if c.Template != "" {
		opts[document.OptionTemplate] = c.Template
	}
	if c.Engine != "" {
		opts[document.OptionTemplateEngine] = c.Engine
	}
	if len(c.Data) > 0 {
		data := make(map[string]any, len(c.Data))
		for k, v := range c.Data {
			data[k] = v
		}
		opts[document.OptionData] = data
	}
	if c.NoMetadata {
		opts[document.OptionEmitMetadata] = false
	}
	return &compiler.Request{Input: c.Input, Output: c.Output, Options: opts}
}
