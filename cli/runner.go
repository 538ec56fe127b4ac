package cli

import (
	"context"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
)

func Run(args []string) error {
	return RunWithIO(context.Background(), args, os.Stdin, os.Stdout)
}

// RunWithIO parses args and runs the selected command; prompts read from in,
// results are written to out.
func RunWithIO(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}
	config, err := NewConfig(ctx, options)
	if err != nil {
		return err
	}
	service, err := New(ctx, config, in, out)
	if err != nil {
		return err
	}
	return service.Execute(ctx, parser.Active.Name, options)
}

// NewConfig loads the optional config file and merges flags over it.
func NewConfig(ctx context.Context, options *Options) (*Config, error) {
	config := &Config{}
	if options.Config != "" {
		var err error
		if config, err = LoadConfig(ctx, options.Config); err != nil {
			return nil, err
		}
	}
	config.Merge(options)
	config.Init()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
