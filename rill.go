package rill

import (
	"io"

	"rill/internal/compiler"
)

// Compile compiles rule specifications and the configured begin/end
// expressions into a reusable Program. A nil config uses defaults; an empty
// rule list gets one default rule, whose command depends on whether an end
// expression is configured.
func Compile(rules []string, config *Config) (*Program, error) {
	if config == nil {
		config = &Config{}
	}
	cfg := *config
	cfg.applyDefaults()

	if len(rules) == 0 {
		rules = []string{""}
	}
	haveEnd := cfg.End != ""

	p := &Program{config: cfg}

	if cfg.Begin != "" {
		s, err := compiler.Compile(cfg.Begin)
		if err != nil {
			return nil, toParseError(err)
		}
		p.begin = s
	}
	if haveEnd {
		s, err := compiler.Compile(cfg.End)
		if err != nil {
			return nil, toParseError(err)
		}
		p.end = s
	}

	for _, spec := range rules {
		a, err := newAction(spec, haveEnd, &cfg)
		if err != nil {
			return nil, err
		}
		p.actions = append(p.actions, a)
	}

	// Auto-detection scans rule text, not the compiled form: commands,
	// patterns and the begin/end expressions all count.
	texts := append([]string{cfg.Begin, cfg.End}, rules...)
	p.autoMods = scanModules(texts...)

	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(rules []string, config *Config) *Program {
	p, err := Compile(rules, config)
	if err != nil {
		panic(err)
	}
	return p
}

// Run compiles the rules and executes them against input, returning the
// captured output. Shorthand for Compile followed by Program.Run with a nil
// Config.Output.
func Run(rules []string, input io.Reader, config *Config) (string, error) {
	p, err := Compile(rules, config)
	if err != nil {
		return "", err
	}
	return p.Run(input)
}

// Exec compiles the rules and executes them against input, streaming results
// to output.
func Exec(rules []string, input io.Reader, output io.Writer, config *Config) error {
	if config == nil {
		config = &Config{}
	}
	cfg := *config
	cfg.Output = output

	p, err := Compile(rules, &cfg)
	if err != nil {
		return err
	}
	_, err = p.Run(input)
	return err
}
