package ask

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/moorebrett0/moodcast/internal/conditions"
	"github.com/moorebrett0/moodcast/internal/mood"
)

// Result is what the user picked and the tip they got.
type Result struct {
	Weather string
	TempC   *float64
	Tip     string
}

// Prompter runs the interactive terminal picker.
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	delay time.Duration // per-character delay for the typed-out tip
}

// New creates a Prompter. delay 0 prints the tip at once.
func New(in io.Reader, out io.Writer, delay time.Duration) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, delay: delay}
}

// Run shows the condition grid, asks for a pick and an optional temperature,
// and prints the tip. Returns io.EOF if input ends before a pick is made.
func (p *Prompter) Run() (Result, error) {
	labels := conditions.OrderedLabels

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "  what's it like outside?")
	fmt.Fprintln(p.out)

	// Two-column grid
	for i := 0; i < len(labels); i += 2 {
		left := conditions.Lookup(string(labels[i]))
		col1 := fmt.Sprintf("  %2d) %s %-14s", i+1, left.Emoji, left.Name)

		if i+1 < len(labels) {
			right := conditions.Lookup(string(labels[i+1]))
			fmt.Fprintf(p.out, "%s%2d) %s %s\n", col1, i+2, right.Emoji, right.Name)
		} else {
			fmt.Fprintln(p.out, col1)
		}
	}

	fmt.Fprintln(p.out)
	weather, err := p.pickWeather(labels)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "  temperature in °C? (enter to skip)")
	temp, err := p.readTemp()
	if err != nil {
		return Result{}, err
	}

	tip := mood.Tip(weather, temp)
	c := conditions.Lookup(weather)

	fmt.Fprintln(p.out)
	p.printSlow(fmt.Sprintf("  %s %s", c.Emoji, tip))
	fmt.Fprintln(p.out)

	return Result{Weather: weather, TempC: temp, Tip: tip}, nil
}

func (p *Prompter) pickWeather(labels []mood.Label) (string, error) {
	for {
		fmt.Fprint(p.out, "  > ")
		input, err := p.in.ReadString('\n')
		input = strings.TrimSpace(input)

		if num, convErr := strconv.Atoi(input); convErr == nil && num >= 1 && num <= len(labels) {
			return string(labels[num-1]), nil
		}

		lower := strings.ToLower(input)
		if mood.Known(lower) {
			return lower, nil
		}

		if err != nil {
			return "", err
		}
		fmt.Fprintf(p.out, "  hmm, pick a number 1-%d or type the condition\n", len(labels))
	}
}

func (p *Prompter) readTemp() (*float64, error) {
	for {
		fmt.Fprint(p.out, "  > ")
		input, err := p.in.ReadString('\n')
		input = strings.TrimSpace(input)

		if input == "" {
			if err != nil && err != io.EOF {
				return nil, err
			}
			return nil, nil
		}

		if v, ok := mood.ParseCelsius(input); ok {
			return &v, nil
		}

		if err != nil {
			// Garbage on the last line: treat as unknown
			return nil, nil
		}
		fmt.Fprintln(p.out, "  a number like 12 or -3.5, or just enter")
	}
}

func (p *Prompter) printSlow(text string) {
	if p.delay <= 0 {
		fmt.Fprintln(p.out, text)
		return
	}
	for _, ch := range text {
		fmt.Fprint(p.out, string(ch))
		time.Sleep(p.delay)
	}
	fmt.Fprintln(p.out)
}
