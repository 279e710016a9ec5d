// Command xgctl is a dev CLI for x-growth maintenance and debugging tasks.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/pkg/browser"

	"github.com/thibautnext/x-growth-extension/internal/config"
	"github.com/thibautnext/x-growth-extension/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "stats":
		days := 7
		if len(os.Args) > 2 {
			n, err := strconv.Atoi(os.Args[2])
			if err != nil || n < 1 {
				fmt.Printf("Invalid day count: %s\n", os.Args[2])
				os.Exit(1)
			}
			days = n
		}
		runStats(days)
	case "open":
		if len(os.Args) < 3 {
			fmt.Println("Usage: xgctl open <config|cache>")
			os.Exit(1)
		}
		runOpen(os.Args[2])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: xgctl <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  stats [days]  Print tracked reply counts for the last N days (default 7)")
	fmt.Println("  open config   Open config file in default editor")
	fmt.Println("  open cache    Open cache directory in file explorer")
}

// runStats prints the daily reply counters, most recent last.
func runStats(days int) {
	dbPath, err := config.DataPath()
	if err != nil {
		log.Fatalf("Failed to get data path: %v", err)
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	dates := make([]string, days)
	now := time.Now()
	for i := 0; i < days; i++ {
		dates[i] = now.AddDate(0, 0, i-days+1).Format("2006-01-02")
	}

	counts, err := st.ReplyStats(dates)
	if err != nil {
		log.Fatalf("Failed to read reply stats: %v", err)
	}

	for _, date := range dates {
		fmt.Printf("%s  %d\n", date, counts[date])
	}

	total, err := st.TotalReplies(dates)
	if err != nil {
		log.Fatalf("Failed to total replies: %v", err)
	}
	fmt.Printf("total       %d\n", total)
}

func runOpen(target string) {
	var path string
	var err error

	switch target {
	case "config":
		path, err = config.ConfigPath()
	case "cache":
		path, err = config.CacheDir()
	default:
		fmt.Printf("Unknown target: %s\n", target)
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Failed to get path: %v", err)
	}

	if err := browser.OpenFile(path); err != nil {
		log.Fatalf("Failed to open: %v", err)
	}
}
