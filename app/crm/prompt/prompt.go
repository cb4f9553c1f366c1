// Package prompt handles the interactive parts of the CLI: asking for field
// values and rendering results.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
)

// Prompter reads answers from in and writes questions and results to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// String asks for a value, returning the default when the answer is empty.
func (p *Prompter) String(label string, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("read line: %w", err)
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Int keeps asking until the answer parses as an integer.
func (p *Prompter) Int(label string, def int) (int, error) {
	for {
		line, err := p.String(label, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a whole number.")
			continue
		}
		return n, nil
	}
}

// Float keeps asking until the answer parses as a number.
func (p *Prompter) Float(label string, def float64) (float64, error) {
	for {
		line, err := p.String(label, strconv.FormatFloat(def, 'f', -1, 64))
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a number.")
			continue
		}
		return f, nil
	}
}

// Bool asks a yes/no question.
func (p *Prompter) Bool(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, hint)
		line, err := p.readLine()
		if err != nil {
			return false, fmt.Errorf("read line: %w", err)
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}

// Choice keeps asking until the answer is one of the options.
func (p *Prompter) Choice(label string, options []string, def string) (string, error) {
	for {
		line, err := p.String(fmt.Sprintf("%s (%s)", label, strings.Join(options, "/")), def)
		if err != nil {
			return "", err
		}
		for _, opt := range options {
			if strings.EqualFold(line, opt) {
				return opt, nil
			}
		}
		fmt.Fprintf(p.out, "Please pick one of: %s.\n", strings.Join(options, ", "))
	}
}

// Password reads without echo when stdin is a terminal, otherwise it falls
// back to a plain line read so scripts and tests can pipe answers in.
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		bs, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(bs), nil
	}

	line, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("read line: %w", err)
	}
	return line, nil
}

// Table renders rows in aligned columns.
func (p *Prompter) Table(header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Success prints a result line.
func (p *Prompter) Success(format string, v ...any) {
	fmt.Fprintf(p.out, format+"\n", v...)
}
