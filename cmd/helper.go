// nolint:errcheck
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	titleStyle       = color.New(color.Bold, color.FgHiWhite)
	commandStyle     = color.New(color.FgHiGreen)
	descriptionStyle = color.New(color.FgHiCyan)
	exampleStyle     = color.New(color.FgHiCyan)
	flagStyle        = color.New(color.Bold, color.FgHiCyan)
)

var HelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`

func rpad(s string, padding int) string {
	return fmt.Sprintf(fmt.Sprintf("%%-%ds", padding), s)
}

func trimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

var (
	reWithShort = regexp.MustCompile(`^( {2,})(-[a-zA-Z]), (--[a-zA-Z0-9-]+)(.*)$`)
	reLongOnly  = regexp.MustCompile(`^( {2,})(--[a-zA-Z0-9-]+)(.*)$`)
)

func colorFlags(raw string) []byte {
	var out bytes.Buffer

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case reWithShort.MatchString(line):
			m := reWithShort.FindStringSubmatch(line)
			indent, shortFlag, longFlag, rest := m[1], m[2], m[3], m[4]
			out.WriteString(indent)
			flagStyle.Fprint(&out, shortFlag)
			out.WriteString(", ")
			out.WriteString(longFlag)
			out.WriteString(rest)
			out.WriteByte('\n')

		case reLongOnly.MatchString(line):
			m := reLongOnly.FindStringSubmatch(line)
			indent, longFlag, rest := m[1], m[2], m[3]
			out.WriteString(indent)
			flagStyle.Fprint(&out, longFlag)
			out.WriteString(rest)
			out.WriteByte('\n')

		default:
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	return out.Bytes()
}

// ColorUsageFunc renders a cobra usage block with colored sections.
func ColorUsageFunc(w io.Writer, cmd *cobra.Command) error {
	buf := &bytes.Buffer{}

	titleStyle.Fprint(buf, "Usage:")
	if cmd.Runnable() {
		fmt.Fprint(buf, "\n  ")
		commandStyle.Fprint(buf, cmd.UseLine())
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprint(buf, "\n  ")
		commandStyle.Fprintf(buf, "%s [command]", cmd.CommandPath())
	}

	if cmd.HasExample() {
		fmt.Fprint(buf, "\n\n")
		titleStyle.Fprint(buf, "Examples:")
		fmt.Fprint(buf, "\n")
		exampleStyle.Fprint(buf, cmd.Example)
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprint(buf, "\n\n")
		titleStyle.Fprint(buf, "Available Commands:")
		for _, subcmd := range cmd.Commands() {
			if subcmd.IsAvailableCommand() || subcmd.Name() == "help" {
				fmt.Fprint(buf, "\n  ")
				commandStyle.Fprint(buf, rpad(subcmd.Name(), subcmd.NamePadding()))
				fmt.Fprint(buf, " ")
				descriptionStyle.Fprint(buf, subcmd.Short)
			}
		}
	}

	if cmd.HasAvailableLocalFlags() {
		fmt.Fprint(buf, "\n\n")
		titleStyle.Fprint(buf, "Flags:")
		fmt.Fprint(buf, "\n")
		buf.Write(colorFlags(trimRightSpace(cmd.LocalFlags().FlagUsages())))
	}

	if cmd.HasAvailableInheritedFlags() {
		fmt.Fprint(buf, "\n\n")
		titleStyle.Fprint(buf, "Global Flags:")
		fmt.Fprint(buf, "\n")
		buf.Write(colorFlags(trimRightSpace(cmd.InheritedFlags().FlagUsages())))
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(buf, "\n\nUse \"%s [command] --help\" for more information about a command.", cmd.CommandPath())
	}

	fmt.Fprintln(buf)
	_, err := w.Write(buf.Bytes())
	return err
}
