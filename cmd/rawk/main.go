// Command rawk is a POSIX AWK interpreter with selected GNU extensions.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kolkov/rawk"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: rawk [-F fs] [-v var=value] [-f progfile | 'prog'] [file ...]"
	longUsage  = `Options:
  -F sepstring      set input field separator (FS)
  -v var=value      assign a value to var before BEGIN (repeatable)
  -f progfile       read program text from progfile (repeatable)
  -P, --posix       disable all extensions; strict POSIX AWK
  -c, --traditional reject the ** exponentiation alias, keep GNU builtins
  --                end of options; remaining args are files or var=value
  --version         print version and exit
  --help            print this help and exit

A filename of "-" means standard input. An argument of the form
name=value appearing among the file operands assigns to that global
variable at the point it is reached in the input sequence.
`
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var progFiles []string
	var assigns []string
	fieldSep := ""
	mode := ""

	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-F":
			i++
			if i >= len(args) {
				return errorExitf("flag needs an argument: -F")
			}
			fieldSep = args[i]
		case "-f":
			i++
			if i >= len(args) {
				return errorExitf("flag needs an argument: -f")
			}
			progFiles = append(progFiles, args[i])
		case "-v":
			i++
			if i >= len(args) {
				return errorExitf("flag needs an argument: -v")
			}
			assigns = append(assigns, args[i])
		case "-P", "--posix":
			mode = "posix"
		case "-c", "--traditional":
			if mode != "posix" {
				mode = "traditional"
			}
		case "-h", "--help":
			fmt.Printf("%s\n\n%s", shortUsage, longUsage)
			return 0
		case "--version":
			fmt.Printf("rawk version %s (commit %s, built %s)\n", version, commit, date)
			return 0
		default:
			switch {
			case strings.HasPrefix(arg, "-F"):
				fieldSep = arg[2:]
			case strings.HasPrefix(arg, "-f"):
				progFiles = append(progFiles, arg[2:])
			case strings.HasPrefix(arg, "-v"):
				assigns = append(assigns, arg[2:])
			default:
				return errorExitf("unrecognized option: %s", arg)
			}
		}
	}

	rest := args[i:]

	var program string
	var fileArgs []string
	if len(progFiles) > 0 {
		var sb strings.Builder
		for _, f := range progFiles {
			content, err := os.ReadFile(f)
			if err != nil {
				return errorExitf("can't open program file %s: %v", f, err)
			}
			sb.Write(content)
			sb.WriteByte('\n')
		}
		program = sb.String()
		fileArgs = rest
	} else {
		if len(rest) == 0 {
			fmt.Fprintln(os.Stderr, shortUsage)
			return 2
		}
		program = rest[0]
		fileArgs = rest[1:]
	}

	prog, err := rawk.CompileConfig(program, &rawk.Config{Mode: mode})
	if err != nil {
		return errorExit(err)
	}

	vars := make(map[string]string, len(assigns))
	for _, v := range assigns {
		name, val, ok := strings.Cut(v, "=")
		if !ok {
			return errorExitf("invalid -v assignment: %s (expected var=value)", v)
		}
		vars[name] = val
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	config := &rawk.Config{
		FS:        fieldSep,
		Variables: vars,
		Output:    stdout,
		Stderr:    os.Stderr,
		Mode:      mode,
		Args:      append([]string{"rawk"}, fileArgs...),
	}

	_, runErr := prog.Run(os.Stdin, config)
	stdout.Flush()
	if runErr != nil {
		if code, ok := rawk.IsExitError(runErr); ok {
			return code
		}
		return errorExit(runErr)
	}
	return 0
}

func errorExitf(format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "rawk: "+format+"\n", args...)
	return 2
}

func errorExit(err error) int {
	fmt.Fprintf(os.Stderr, "rawk: %v\n", err)
	return 2
}
