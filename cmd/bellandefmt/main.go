package main

import (
	"flag"
	"fmt"
	"os"

	bellande "github.com/RonaldsonBellande/bellande-format"
)

func main() {
	write := flag.Bool("write", false, "rewrite the file in canonical form instead of printing it")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: bellandefmt [-write] <file>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	root, err := bellande.ParseDocument(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
		os.Exit(1)
	}

	if *write {
		if err := bellande.WriteDocument(root, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		return
	}

	out, err := bellande.Serialize(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error serializing %s: %v\n", path, err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
