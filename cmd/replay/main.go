package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gridfall.gg/internal/protocol"
	"gridfall.gg/internal/trace"
)

// Prints the decoded message stream of a recorded wire trace.
func main() {
	var (
		dir     = flag.String("trace", "", "trace directory containing wire-*.jsonl.zst")
		file    = flag.String("file", "", "single trace file (overrides -trace)")
		summary = flag.Bool("summary", false, "print per-tag counts only")
	)
	flag.Parse()

	var files []string
	if *file != "" {
		files = []string{*file}
	} else if *dir != "" {
		matches, err := filepath.Glob(filepath.Join(*dir, "wire-*.jsonl.zst"))
		if err != nil {
			fmt.Fprintln(os.Stderr, "glob:", err)
			os.Exit(1)
		}
		sort.Strings(matches)
		files = matches
	} else {
		fmt.Fprintln(os.Stderr, "missing -trace or -file")
		os.Exit(2)
	}

	counts := map[string]int{}
	for _, path := range files {
		entries, err := trace.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read:", err)
			os.Exit(1)
		}
		for _, e := range entries {
			env, err := protocol.DecodeBase(e.Frame)
			tag := env.Type
			if err != nil || tag == "" {
				tag = "<malformed>"
			}
			counts[fmt.Sprintf("%s %s", e.Dir, tag)]++
			if !*summary {
				fmt.Printf("%s %-3s %-20s %s\n", e.At.Format("15:04:05.000"), e.Dir, tag, e.Frame)
			}
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-24s %d\n", k, counts[k])
	}
}
