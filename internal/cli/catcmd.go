package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dl/linefilter/internal/cat"
	"github.com/dl/linefilter/internal/input"
)

const catUsage = "Usage: gocat [OPTION]... [FILE]...\nTry 'gocat --help' for more information.\n"

// CatConfig holds the options of one gocat invocation.
type CatConfig struct {
	cat.Options
	Paths []string
}

// NewCatCommand builds the gocat root command. The exit status of the last
// execution is stored in *code.
func NewCatCommand(s Streams, code *int) *cobra.Command {
	var (
		cfg             CatConfig
		showAll, vE, vT bool
		unbuffered      bool
	)

	c := &cobra.Command{
		Use:   "gocat [OPTION]... [FILE]...",
		Short: "Concatenate files to standard output",
		Long: `Concatenate FILE(s) to standard output.

With no FILE, or when FILE is -, read standard input.

  gocat f - g   # output f's contents, then standard input, then g's contents
  gocat -n f    # number every output line`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(c *cobra.Command, args []string) error {
			if showAll {
				cfg.ShowNonprinting, cfg.ShowEnds, cfg.ShowTabs = true, true, true
			}
			if vE {
				cfg.ShowNonprinting, cfg.ShowEnds = true, true
			}
			if vT {
				cfg.ShowNonprinting, cfg.ShowTabs = true, true
			}
			cfg.Paths = args
			*code = RunCat(cfg, s)
			return nil
		},
	}
	c.SetIn(s.In)
	c.SetOut(s.Out)
	c.SetErr(s.Err)
	c.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	f := c.Flags()
	f.SortFlags = false
	f.BoolVarP(&showAll, "show-all", "A", false, "equivalent to -vET")
	f.BoolVarP(&cfg.NumberNonBlank, "number-nonblank", "b", false, "number nonempty output lines, overrides -n")
	f.BoolVarP(&vE, "show-nonprinting-ends", "e", false, "equivalent to -vE")
	f.BoolVarP(&cfg.ShowEnds, "show-ends", "E", false, "display $ at end of each line")
	f.BoolVarP(&cfg.Number, "number", "n", false, "number all output lines")
	f.BoolVarP(&cfg.SqueezeBlank, "squeeze-blank", "s", false, "suppress repeated empty output lines")
	f.BoolVarP(&vT, "show-nonprinting-tabs", "t", false, "equivalent to -vT")
	f.BoolVarP(&cfg.ShowTabs, "show-tabs", "T", false, "display TAB characters as ^I")
	f.BoolVarP(&unbuffered, "unbuffered", "u", false, "(ignored)")
	f.BoolVarP(&cfg.ShowNonprinting, "show-nonprinting", "v", false, "use ^ and M- notation, except for LFD and TAB")
	f.BoolP("help", "h", false, "display this help and exit")

	return c
}

// RunCat copies every path, or standard input when there are none, through
// the cat transforms. Returns 0 on success and 1 if any input failed.
func RunCat(cfg CatConfig, s Streams) int {
	paths := cfg.Paths
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	c := cat.New(s.Out, cfg.Options)
	status := 0
	for _, path := range paths {
		if err := catPath(c, path, s.In); err != nil {
			fmt.Fprintf(s.Err, "error: %s: %s\n", path, input.Describe(err))
			status = 1
		}
	}

	if f, ok := s.Out.(flusher); ok {
		if err := f.Flush(); err != nil {
			fmt.Fprintf(s.Err, "error: write: %s\n", input.Describe(err))
			status = 1
		}
	}
	return status
}

func catPath(c *cat.Cat, path string, stdin io.Reader) error {
	src := input.Stdin(stdin)
	if path != "-" {
		var err error
		if src, err = input.Open(path); err != nil {
			return err
		}
	}
	defer src.Close()

	return c.Copy(src.Reader())
}

// CatMain runs gocat with args and returns the process exit status.
func CatMain(args []string, s Streams) int {
	if args == nil {
		args = []string{}
	}
	code := 0
	c := NewCatCommand(s, &code)
	c.SetArgs(args)
	if err := c.Execute(); err != nil {
		fmt.Fprintf(s.Err, "gocat: %v\n", err)
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprint(s.Err, catUsage)
		}
		flush(s)
		return 1
	}
	flush(s)
	return code
}
