package format

import (
	"strings"

	"github.com/yigitcukuren/phpfmt/pkg/format/doc"
	"github.com/yigitcukuren/phpfmt/pkg/php/parser"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

// Format parses source and reprints it according to the configuration.
// The result ends with exactly one line terminator. A parse failure
// returns the *parser.Error with the offending position; the input is
// never partially formatted.
func Format(src []byte, cfg *style.Config) ([]byte, error) {
	prog, trivia, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	comments := AttachTrivia(prog, trivia, src)

	p := newPrinter(cfg, comments, src)
	d := p.program(prog)

	opts := doc.RenderOptions{
		Width:    cfg.PrintWidth,
		TabWidth: cfg.TabWidth,
		UseTabs:  cfg.UseTabs,
	}
	if cfg.WidthMetric == style.WidthDisplay {
		opts.Measure = p.measure
	}
	out := doc.Render(d, opts)

	out = strings.TrimRight(out, "\n") + "\n"
	if eol := cfg.EndOfLine.Terminator(src); eol != "\n" {
		out = strings.ReplaceAll(out, "\n", eol)
	}
	return []byte(out), nil
}
