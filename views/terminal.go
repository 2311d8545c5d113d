package views

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"epic-events-crm/utils"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// Terminal is the interactive presenter used by the crm command.
type Terminal struct {
	in     *bufio.Reader
	inFile *os.File
	out    io.Writer
	colors map[Severity]*color.Color
}

// NewTerminal reads answers from in and writes to out. When in is a terminal
// passwords are read without echo.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		in:  bufio.NewReader(in),
		out: out,
		colors: map[Severity]*color.Color{
			Info:    color.New(color.FgCyan),
			Success: color.New(color.FgGreen, color.Bold),
			Warning: color.New(color.FgYellow),
			Error:   color.New(color.FgRed, color.Bold),
		},
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.inFile = f
	}
	return t
}

func (t *Terminal) RenderTable(title string, columns []string, rows [][]string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(t.out)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Title.Align = text.AlignCenter
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	tw.AppendHeader(header)

	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, cell := range r {
			row[i] = cell
		}
		tw.AppendRow(row)
	}
	tw.Render()
}

func (t *Terminal) RenderMessage(message string, severity Severity) {
	c, ok := t.colors[severity]
	if !ok {
		fmt.Fprintln(t.out, message)
		return
	}
	c.Fprintln(t.out, message)
}

func (t *Terminal) PromptText(label string, constraints TextConstraints) string {
	for {
		value := t.ask(label)
		if value == "" {
			if constraints.AllowBlank {
				return ""
			}
			t.RenderMessage("This field is required.", Error)
			continue
		}
		if msg := checkText(value, constraints); msg != "" {
			t.RenderMessage(msg, Error)
			continue
		}
		return value
	}
}

// PromptPassword hides the typed password on a terminal. Input already read
// ahead into the line buffer is taken from there.
func (t *Terminal) PromptPassword(label string) string {
	if t.inFile == nil || t.in.Buffered() > 0 {
		return t.ask(label)
	}

	fmt.Fprintf(t.out, "%s: ", label)
	secret, err := term.ReadPassword(int(t.inFile.Fd()))
	fmt.Fprintln(t.out)
	if err != nil {
		panic(ErrInputClosed)
	}
	return string(secret)
}

func (t *Terminal) PromptInt(label string) int {
	for {
		value, err := strconv.Atoi(t.ask(label))
		if err != nil {
			t.RenderMessage("Please enter a whole number.", Error)
			continue
		}
		return value
	}
}

// PromptIntInSet only returns one of validIDs.
func (t *Terminal) PromptIntInSet(label string, validIDs []uint) uint {
	for {
		value, err := strconv.ParseUint(t.ask(label), 10, 64)
		if err != nil || !utils.ContainsID(validIDs, uint(value)) {
			t.RenderMessage("Please choose one of the ids listed above.", Error)
			continue
		}
		return uint(value)
	}
}

func (t *Terminal) Confirm(question string) bool {
	for {
		switch strings.ToLower(t.ask(question + " (yes/no)")) {
		case "yes", "y":
			return true
		case "no", "n":
			return false
		}
		t.RenderMessage("Please answer yes or no.", Warning)
	}
}

func (t *Terminal) ask(label string) string {
	fmt.Fprintf(t.out, "%s: ", label)
	line, err := t.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		panic(ErrInputClosed)
	}
	return strings.TrimSpace(line)
}

func checkText(value string, c TextConstraints) string {
	if c.MaxLength > 0 && utf8.RuneCountInString(value) > c.MaxLength {
		return fmt.Sprintf("Please enter at most %d characters.", c.MaxLength)
	}

	switch c.Kind {
	case EmailText:
		if !utils.ValidateEmailFormat(value) {
			return "Please enter a valid email address."
		}
	case PhoneText:
		if !utils.ValidatePhoneFormat(value) {
			return "Please enter a valid phone number."
		}
	case DecimalText:
		d, err := decimal.NewFromString(value)
		if err != nil || d.IsNegative() {
			return "Please enter a positive amount, for example 1250.50."
		}
	case IntegerText:
		if _, err := strconv.Atoi(value); err != nil {
			return "Please enter a whole number."
		}
	case DateTimeText:
		if _, err := utils.ParseDateTime(value); err != nil {
			return "Please enter a date as YYYY-MM-DD HH:MM."
		}
	}
	return ""
}
