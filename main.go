package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/pcpp/codegen/llvm"
	"github.com/pontaoski/pcpp/diag"
	"github.com/pontaoski/pcpp/lexer"
	"github.com/pontaoski/pcpp/parser"
	"github.com/pontaoski/pcpp/translator"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/pcpp", "main")

func setupLogging(debug bool) {
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, debug))
	if debug {
		capnslog.SetGlobalLogLevel(capnslog.DEBUG)
	} else {
		capnslog.SetGlobalLogLevel(capnslog.WARNING)
	}
}

// openInput opens the named file, or stdin when no name is given.
func openInput(name string) (io.ReadCloser, string, error) {
	if name == "" || name == "-" {
		return io.NopCloser(os.Stdin), "<stdin>", nil
	}
	fi, err := os.Open(name)
	if err != nil {
		return nil, name, tracerr.Wrap(err)
	}
	return fi, name, nil
}

// settings merges the config file with the flags given on the command
// line; flags win.
func settings(c *cli.Context) (pcppConfig, error) {
	conf, err := loadConfig(c.String("config"), c.IsSet("config"))
	if err != nil {
		return conf, err
	}

	if c.IsSet("output") {
		conf.Output = c.String("output")
	}
	if c.IsSet("target") {
		conf.Target = c.String("target")
	}
	if c.IsSet("indent") {
		conf.Indent = c.String("indent")
	}
	if c.IsSet("debug") {
		conf.Debug = c.Bool("debug")
	}
	if c.IsSet("lenient-end") {
		conf.LenientEnd = c.Bool("lenient-end")
	}

	setupLogging(conf.Debug)
	return conf, nil
}

// explain prints err when nothing was reported for it, such as a read
// failure inside the lexer.
func explain(w io.Writer, rep *diag.Writer, err error) {
	if rep.Count(diag.Error) == 0 {
		fmt.Fprintf(w, "%s: %s\n", diag.Error, tracerr.Unwrap(err))
	}
}

func fail(conf pcppConfig, rep *diag.Writer, err error) error {
	explain(os.Stderr, rep, err)
	if conf.Debug {
		tracerr.PrintSourceColor(err)
	}
	return cli.Exit("", 1)
}

func translate(c *cli.Context) error {
	conf, err := settings(c)
	if err != nil {
		return err
	}
	opts, err := conf.options()
	if err != nil {
		return err
	}

	in, name, err := openInput(c.Args().First())
	if err != nil {
		return err
	}
	defer in.Close()

	var sink io.Writer = os.Stdout
	if conf.Output != "" {
		fi, err := os.Create(conf.Output)
		if err != nil {
			return tracerr.Wrap(err)
		}
		defer fi.Close()
		sink = fi
	}
	out := bufio.NewWriter(sink)
	defer out.Flush()

	rep := diag.NewWriter(os.Stderr)
	res, err := translator.Source(in, name, out, rep, opts)
	plog.Infof("%s: %s", name, res.Outcome)

	if err != nil {
		if res.Outcome == translator.Truncated && conf.LenientEnd && rep.Count(diag.Error) == 0 {
			return nil
		}
		return fail(conf, rep, err)
	}
	return nil
}

func dumpTokens(c *cli.Context) error {
	conf, err := settings(c)
	if err != nil {
		return err
	}

	in, name, err := openInput(c.Args().First())
	if err != nil {
		return err
	}
	defer in.Close()

	rep := diag.NewWriter(os.Stderr)
	l := lexer.NewLexer(in, name)
	l.Reporter = rep
	l.MaxTokens = conf.MaxTokens

	tokens, err := l.Tokenize()
	for _, tok := range tokens {
		fmt.Println(tok)
	}
	if err != nil {
		return fail(conf, rep, err)
	}
	return nil
}

func dumpAST(c *cli.Context) error {
	conf, err := settings(c)
	if err != nil {
		return err
	}

	in, name, err := openInput(c.Args().First())
	if err != nil {
		return err
	}
	defer in.Close()

	rep := diag.NewWriter(os.Stderr)
	l := lexer.NewLexer(in, name)
	l.Reporter = rep
	l.MaxTokens = conf.MaxTokens

	tokens, err := l.Tokenize()
	if err != nil {
		return fail(conf, rep, err)
	}

	p := parser.NewParser(tokens, rep)
	p.LenientEnd = conf.LenientEnd
	prog, err := p.Parse(nil)
	repr.Println(prog, repr.Indent("  "), repr.OmitEmpty(true))
	if err != nil {
		if conf.LenientEnd && rep.Count(diag.Error) == 0 {
			return nil
		}
		return fail(conf, rep, err)
	}
	return nil
}

func main() {
	configFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "configuration file",
			Value: configFile,
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "trace translation and print error stacks",
		},
		&cli.BoolFlag{
			Name:  "lenient-end",
			Usage: "stop silently when the input ends early",
		},
	}

	app := &cli.App{
		Name:  "pcpp",
		Usage: "translate prefix pseudocode to C++",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write a default " + configFile,
				Action: func(c *cli.Context) error {
					if _, err := os.Stat(configFile); err == nil {
						return cli.Exit(configFile+" already exists", 1)
					}
					return defaultConfig().write(configFile)
				},
			},
			{
				Name:      "translate",
				Usage:     "translate a file, or stdin",
				ArgsUsage: "[file]",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write the translation here instead of stdout",
					},
					&cli.StringFlag{
						Name:  "target",
						Usage: "cpp or llvm",
					},
					&cli.StringFlag{
						Name:  "indent",
						Usage: "indentation unit of the C++ output",
					},
				}, configFlags...),
				Action: translate,
			},
			{
				Name:      "tokens",
				Usage:     "dump the token stream",
				ArgsUsage: "[file]",
				Flags:     configFlags,
				Action:    dumpTokens,
			},
			{
				Name:      "ast",
				Usage:     "dump the recognized program",
				ArgsUsage: "[file]",
				Flags:     configFlags,
				Action:    dumpAST,
			},
			{
				Name:      "typeinfo",
				Usage:     "dump procedure signatures from LLVM IR produced by --target llvm",
				ArgsUsage: "file.ll",
				Action: func(c *cli.Context) error {
					procs, err := llvm.ReadTypeInfo(c.Args().First())
					if err != nil {
						return err
					}
					repr.Println(procs)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
