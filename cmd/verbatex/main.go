// cmd/verbatex/main.go — command line front end for verbatex
//
// Usage:
//   verbatex render <expression>...
//   verbatex render            (expressions on stdin, one per line)
//   verbatex gen in.txt out.tex [-watch]
//   verbatex serve [-config verbatex.yaml] [-listen :8080]
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"verbatex"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "render":
		if err := runRender(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "verbatex: %v\n", err)
			os.Exit(1)
		}

	case "gen":
		fs := flag.NewFlagSet("gen", flag.ExitOnError)
		watch := fs.Bool("watch", false, "re-render whenever the input file changes")
		fs.Parse(os.Args[2:])
		if fs.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "Usage: verbatex gen <input> <output> [-watch]")
			os.Exit(2)
		}
		if err := runGen(context.Background(), fs.Arg(0), fs.Arg(1), *watch); err != nil {
			fmt.Fprintf(os.Stderr, "verbatex: %v\n", err)
			os.Exit(1)
		}

	case "serve":
		fs := flag.NewFlagSet("serve", flag.ExitOnError)
		configPath := fs.String("config", "", "path to a YAML config file")
		listen := fs.String("listen", "", "listen address, overrides the config file")
		fs.Parse(os.Args[2:])
		if err := runServe(*configPath, *listen); err != nil {
			fmt.Fprintf(os.Stderr, "verbatex: %v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Println("verbatex v0.1.0")

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func runRender(args []string) error {
	if len(args) > 0 {
		for _, src := range args {
			out, err := verbatex.Render(src)
			if err != nil {
				return err
			}
			fmt.Println(out)
		}
		return nil
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		out, err := verbatex.Render(line)
		if err != nil {
			return err
		}
		fmt.Println(out)
	}
	return sc.Err()
}

func printUsage() {
	fmt.Println(`verbatex - render arithmetic expressions as LaTeX

USAGE:
    verbatex <command> [arguments]

COMMANDS:
    render <expr>...      Render each expression and print the LaTeX
    render                Render expressions from stdin, one per line
    gen <in> <out>        Render every line of <in> into <out>
    gen <in> <out> -watch Keep watching <in> and re-render on change
    serve                 Start the HTTP rendering service
    version               Show version information
    help                  Show this help message

EXAMPLES:
    verbatex render "3-(1+2)/5"
    verbatex render "Sum(i+k, (i, 1, k))"
    verbatex gen formulas.txt formulas.tex -watch
    verbatex serve -config verbatex.yaml`)
}
