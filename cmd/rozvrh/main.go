package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vmicha/rozvrh/cmd"
	"github.com/vmicha/rozvrh/internal/batch"
	"github.com/vmicha/rozvrh/internal/catalog"
	"github.com/vmicha/rozvrh/internal/export"
	"github.com/vmicha/rozvrh/internal/fetch"
	"github.com/vmicha/rozvrh/internal/logger"
	"github.com/vmicha/rozvrh/pkg/clipboard"
	"github.com/vmicha/rozvrh/pkg/fuzzymatch"
	"github.com/vmicha/rozvrh/pkg/schedule"
)

const (
	appName     = "rozvrh"
	defaultSize = 4096
)

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

var appDir = filepath.Join(xdg.StateHome, appName)

func init() {
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		panic(fmt.Sprintf("Error creating state directory: %v", err))
	}

	if err := logger.Init(filepath.Join(appDir, appName+".log"), "info"); err != nil {
		panic(fmt.Sprintf("Error initializing logger: %v", err))
	}

	crashFilePath := filepath.Join(appDir, "crash")
	if f, err := os.Create(crashFilePath); err == nil {
		_ = debug.SetCrashOutput(f, debug.CrashOptions{})
	}
}

// flagOptions holds everything the subcommands read from the command line.
type flagOptions struct {
	year        string
	program     string
	group       string
	output      string
	target      string
	baseURL     string
	concurrency int
	electives   bool
	copyOut     bool
}

func loadConfig() *Config {
	path := filepath.Join(xdg.ConfigHome, appName, "config.toml")
	config, err := LoadConfigFromFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring config: %v\n", err)
		return NewDefaultConfig()
	}
	return config
}

// writeOutput writes content to a target file or stdout with buffering.
func writeOutput(target string, render func(io.Writer) error) error {
	if target == "" {
		return render(os.Stdout)
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating target file: %w", err)
	}
	defer file.Close() // nolint: errcheck

	writer := bufio.NewWriterSize(file, defaultSize)
	defer writer.Flush() // nolint: errcheck

	return render(writer)
}

// emit renders merged rows in the requested output mode. "auto" picks the
// aligned table on a terminal and JSON everywhere else.
func emit(opts *flagOptions, rows []schedule.MergedRow) error {
	mode := opts.output
	if mode == "auto" {
		if opts.target == "" && term.IsTerminal(int(os.Stdout.Fd())) {
			mode = "table"
		} else {
			mode = "json"
		}
	}

	var render func(io.Writer) error
	switch mode {
	case "json":
		render = func(w io.Writer) error { return export.WriteJSON(w, rows) }
	case "table":
		colored := opts.target == "" && term.IsTerminal(int(os.Stdout.Fd()))
		render = func(w io.Writer) error { return export.WriteTable(w, rows, colored) }
	default:
		return fmt.Errorf("unknown output mode %q", mode)
	}

	if err := writeOutput(opts.target, render); err != nil {
		return err
	}

	if opts.copyOut {
		if err := copyRows(mode, rows); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	return nil
}

// copyRows puts an uncolored rendering on the clipboard.
func copyRows(mode string, rows []schedule.MergedRow) error {
	var buf bytes.Buffer
	var err error
	if mode == "json" {
		err = export.WriteJSON(&buf, rows)
	} else {
		err = export.WriteTable(&buf, rows, false)
	}
	if err != nil {
		return err
	}
	return clipboard.New().Copy(buf.String())
}

// filterElectives drops elective rows unless they were opted into.
func filterElectives(rows []schedule.MergedRow, keep bool) []schedule.MergedRow {
	if keep {
		return rows
	}
	out := rows[:0:0]
	for _, r := range rows {
		if !schedule.IsElectiveTitle(r.Title) {
			out = append(out, r)
		}
	}
	return out
}

func runList(opts *flagOptions) error {
	client := fetch.NewClient()
	indexHTML, err := client.Get(context.Background(), opts.baseURL)
	if err != nil {
		return err
	}

	cat, err := catalog.Parse(indexHTML, opts.baseURL)
	if err != nil {
		return err
	}

	years := make([]string, 0, len(cat))
	for year := range cat {
		years = append(years, year)
	}
	sort.Strings(years)

	yearStyle := color.New(color.Bold, color.FgHiMagenta)
	for _, year := range years {
		if opts.year != "" && opts.year != year {
			continue
		}
		yearStyle.Printf("%s (%s)\n", year, catalog.PrettyYearLabel(year))

		programs := make([]string, 0, len(cat[year]))
		for p := range cat[year] {
			programs = append(programs, p)
		}
		sort.Strings(programs)

		for _, program := range programs {
			labels := make([]string, 0, len(cat[year][program]))
			for _, g := range cat[year][program] {
				labels = append(labels, g.Label)
			}
			fmt.Printf("  %-8s %s\n", program, strings.Join(labels, " "))
		}
	}
	return nil
}

func runMerge(opts *flagOptions) error {
	if opts.year == "" || opts.program == "" {
		return fmt.Errorf("both --year and --program are required")
	}

	client := fetch.NewClient()
	ctx := context.Background()

	indexHTML, err := client.Get(ctx, opts.baseURL)
	if err != nil {
		return err
	}
	cat, err := catalog.Parse(indexHTML, opts.baseURL)
	if err != nil {
		return err
	}

	groups, err := selectGroups(cat, opts.year, opts.program, opts.group)
	if err != nil {
		return err
	}

	collector := batch.NewCollector(client, opts.concurrency)
	rows := collector.Collect(ctx, groups)

	return emit(opts, filterElectives(rows, opts.electives))
}

// selectGroups picks the group pages to merge. The program code tolerates
// sloppy spelling via fuzzy lookup; a group query narrows the result to its
// best-matching label.
func selectGroups(cat catalog.Catalog, year, program, groupQuery string) ([]catalog.Group, error) {
	programs := cat[strings.ToLower(year)]
	groups := programs[strings.ToUpper(program)]
	var m fuzzymatch.Matcher

	if len(groups) == 0 && len(programs) > 0 {
		codes := make([]string, 0, len(programs))
		for p := range programs {
			codes = append(codes, p)
		}
		sort.Strings(codes)
		if best, ok := m.Best(program, codes); ok {
			groups = programs[best]
		}
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no timetables found for %s/%s", year, program)
	}

	if groupQuery != "" {
		labels := make([]string, 0, len(groups))
		for _, g := range groups {
			labels = append(labels, g.Label)
		}
		best, ok := m.Best(groupQuery, labels)
		if !ok {
			return nil, fmt.Errorf("no group matching %q in %s/%s", groupQuery, year, program)
		}
		for _, g := range groups {
			if g.Label == best {
				return []catalog.Group{g}, nil
			}
		}
	}
	return groups, nil
}

func runParse(opts *flagOptions, args []string) error {
	client := fetch.NewClient()
	ctx := context.Background()

	var all []schedule.Slot
	labels := make(map[string]string, len(args))

	for _, arg := range args {
		var doc string
		var err error
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			doc, err = client.Get(ctx, arg)
		} else {
			var raw []byte
			raw, err = os.ReadFile(arg)
			doc = string(raw)
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", arg, err)
		}

		labels[arg] = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		all = append(all, schedule.Parse(doc, arg)...)
	}

	rows := schedule.MergeTagged(all, func(s schedule.Slot) string {
		if label, ok := labels[s.SourceURL]; ok {
			return label
		}
		return s.SourceURL
	})

	return emit(opts, filterElectives(rows, opts.electives))
}

func main() {
	config := loadConfig()
	if config.Core.LogLevel != "info" {
		_ = logger.Init(filepath.Join(appDir, appName+".log"), config.Core.LogLevel)
	}
	opts := &flagOptions{}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Merge class-section timetables into one weekly schedule",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Merge class-section timetables into one weekly schedule. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		Version:       FullVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", config.Core.Output, "Output mode: auto, table or json")
	rootCmd.PersistentFlags().StringVarP(&opts.target, "target", "t", "", "Write output to the specified path instead of stdout")
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", config.Core.BaseURL, "Timetable index base URL")
	rootCmd.PersistentFlags().BoolVar(&opts.electives, "electives", config.Filter.Electives, "Keep elective entries (titles marked with @ or #)")
	rootCmd.PersistentFlags().BoolVar(&opts.copyOut, "copy", false, "Also copy the output to the clipboard")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the years, programs and groups the index page offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts)
		},
	}
	listCmd.Flags().StringVarP(&opts.year, "year", "y", "", "Limit the listing to one year key (e.g. 1bc)")

	mergeCmd := &cobra.Command{
		Use:   "merge",
		Short: "Fetch, parse and merge every group timetable of a program",
		Example: "  rozvrh merge --year 1bc --program API\n" +
			"  rozvrh merge -y 2i -p IKT -o json -t schedule.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(opts)
		},
	}
	mergeCmd.Flags().StringVarP(&opts.year, "year", "y", "", "Year key (e.g. 1bc, 2i)")
	mergeCmd.Flags().StringVarP(&opts.program, "program", "p", "", "Program code (e.g. API), fuzzy-matched when not exact")
	mergeCmd.Flags().StringVarP(&opts.group, "group", "g", "", "Limit the merge to the best-matching group label")
	mergeCmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", config.Core.Concurrency, "Simultaneous fetches")

	parseCmd := &cobra.Command{
		Use:   "parse <file-or-url>...",
		Short: "Parse given timetable pages or files and merge the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args)
		},
	}

	rootCmd.AddCommand(listCmd, mergeCmd, parseCmd)

	rootCmd.SetHelpTemplate(cmd.HelpTemplate)
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return cmd.ColorUsageFunc(c.OutOrStderr(), c)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
