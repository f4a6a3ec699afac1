// chartbot is a conversational interface to a Billboard Hot 100 dataset.
//
// It answers questions like "Top 10 songs of 1985" or "How long was Shape
// of You on the chart?" from a CSV dataset or a SQLite snapshot, either as
// one-shot queries, an interactive chat session, or an MCP stdio server.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	var err error
	switch os.Args[1] {
	case "ask":
		err = runAsk(os.Args[2:])
	case "chat":
		err = runChat(os.Args[2:])
	case "top":
		err = runTop(os.Args[2:])
	case "artist":
		err = runArtist(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "config":
		err = runConfig(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("chartbot %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`chartbot %s — Conversational Billboard Hot 100 chart queries

Usage:
  chartbot <command> [arguments]

Commands:
  ask <question>      Answer a single question and exit
  chat                Interactive question-and-answer session
  top                 Top songs of a year (--year) or decade (--decade)
  artist <name>       List an artist's charting songs
  stats               Show dataset statistics
  import              Import the CSV dataset into a SQLite snapshot
  serve               Run as an MCP server on stdio
  config              Show resolved configuration and value sources
  version             Print version

Data Flags:
  --dataset <path>    CSV dataset path (env: CHARTBOT_DATASET)
  --db <path>         SQLite snapshot path (env: CHARTBOT_DB, default: ~/.chartbot/chartbot.db)
  --config <path>     Config file path (default: ~/.chartbot/config.yaml)

Query Flags:
  --llm <prov/model>  LLM fallback for unparsed queries (env: CHARTBOT_LLM)
  --no-llm            Disable the LLM fallback even when configured
  --fuzzy-threshold <n>  Minimum fuzzy match score 0-100 (default: 60)
  --verbose           Diagnostics on stderr

Flags:
  -h, --help          Show this help message
  -v, --version       Print version

Examples:
  chartbot ask "Top 10 songs of 1985"
  chartbot top --year 2020 -n 5
  chartbot import --dataset charts.csv
`, version)
}
