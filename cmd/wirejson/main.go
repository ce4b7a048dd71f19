package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	wirejson "github.com/wirejson/wirejson"
	"github.com/wirejson/wirejson/yamlsrc"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "fmt":
		fmtCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "wirejson CLI\n\nUsage:\n  wirejson fmt [-yaml] [-indent] [-dup-last] [file]\n  wirejson check [-yaml] [-dup-last] [file]\n\nReads from stdin when no file is given. fmt emits canonical JSON;\ncheck reports issues with JSON Pointer paths and exits non-zero on failure.")
}

func fmtCmd(args []string) {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	yamlIn := fs.Bool("yaml", false, "treat input as YAML")
	indent := fs.Bool("indent", false, "indent output with two spaces")
	dupLast := fs.Bool("dup-last", false, "keep the last occurrence of duplicate keys instead of failing")
	_ = fs.Parse(args)

	v, err := load(fs.Arg(0), *yamlIn, *dupLast)
	if err != nil {
		reportIssues(err)
		os.Exit(1)
	}
	var out []byte
	if *indent {
		out = wirejson.AppendJSONIndent(nil, v, "  ")
	} else {
		out = wirejson.AppendJSON(nil, v)
	}
	out = append(out, '\n')
	_, _ = os.Stdout.Write(out)
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	yamlIn := fs.Bool("yaml", false, "treat input as YAML")
	dupLast := fs.Bool("dup-last", false, "keep the last occurrence of duplicate keys instead of failing")
	_ = fs.Parse(args)

	if _, err := load(fs.Arg(0), *yamlIn, *dupLast); err != nil {
		reportIssues(err)
		os.Exit(1)
	}
	fmt.Println("ok")
}

func load(path string, yamlIn, dupLast bool) (wirejson.Value, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return wirejson.Value{}, err
	}
	if yamlIn {
		return yamlsrc.ParseBytes(data)
	}
	opt := wirejson.ParseOpt{}
	if dupLast {
		opt.OnDuplicateKey = wirejson.DupLastWins
	}
	return wirejson.ParseBytes(data, opt)
}

func reportIssues(err error) {
	if iss, ok := wirejson.AsIssues(err); ok {
		for _, it := range iss {
			path := it.Path
			if path == "" {
				path = "/"
			}
			fmt.Fprintf(os.Stderr, "%s at %s: %s\n", it.Code, path, it.Message)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
