// Package flagx lets several components read their own flags from os.Args
// without one global FlagSet rejecting flags it does not know about.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs returns only the allowed flags (and their values) from args.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      -config=conf.json
//
// A separate value is consumed only when it does not itself start with '-'.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// lookupString parses a single string option that may be spelled under any
// of names (without the leading dash). The last occurrence wins; an absent
// option yields "".
func lookupString(args []string, names ...string) string {
	dashed := make([]string, 0, len(names))
	for _, n := range names {
		dashed = append(dashed, "-"+n)
	}

	var value string
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, n, "", "")
	}
	_ = fs.Parse(FilterArgs(args, dashed))

	return value
}

// JsonConfigFlags returns the config file path given via -c or -config,
// or "" when neither is present.
func JsonConfigFlags() string {
	return lookupString(os.Args[1:], "c", "config")
}

// EnvFileFlags returns the dotenv file path given via -env or -envfile,
// or "" when neither is present.
func EnvFileFlags() string {
	return lookupString(os.Args[1:], "env", "envfile")
}
