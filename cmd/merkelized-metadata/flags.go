package main

import "flag"

// config is the resolved set of inputs for one invocation.
type config struct {
	FixturePath string
	PrintProof  bool
	Version     bool
}

// parseFlags parses args (without the program name) into a config. The
// second return reports whether the caller should exit immediately (for
// -version or a parse error), with the process exit code to use.
func parseFlags(args []string) (config, bool, int) {
	fs := flag.NewFlagSet("merkelized-metadata", flag.ContinueOnError)

	fixturePath := fs.String("fixture", "", "path to a JSON registry fixture")
	printProof := fs.Bool("proof", false, "also generate the extrinsic proof declared in the fixture")
	version := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return config{}, true, 2
	}
	if *version {
		return config{Version: true}, true, 0
	}
	if *fixturePath == "" {
		fs.Usage()
		return config{}, true, 2
	}

	return config{
		FixturePath: *fixturePath,
		PrintProof:  *printProof,
	}, false, 0
}
