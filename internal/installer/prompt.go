package installer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrAborted means the operator declined the confirmation summary. The
// run ends cleanly with zero side effects.
var ErrAborted = errors.New("aborted by user")

// Prompter walks the schema's fixed prompt sequence and produces the same
// raw key/value map that loading a config file produces, so both paths
// feed the identical validation.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Walk asks every schema question in order, applies defaults to empty
// input, shows the confirmation summary, and requires an explicit yes
// before returning. Anything but an affirmative answer aborts.
func (p *Prompter) Walk() (map[string]string, error) {
	fmt.Fprintln(p.out, "No configuration found; answer the questions below.")
	fmt.Fprintln(p.out, "Defaults are shown in brackets, press enter to accept.")
	fmt.Fprintln(p.out)

	raw := map[string]string{}
	for _, f := range Schema {
		v, err := p.askField(f)
		if err != nil {
			return nil, err
		}
		raw[f.Key] = v
	}

	p.renderSummary(raw)
	ok, err := p.readLine("Proceed with installation? [y/N]: ")
	if err != nil {
		return nil, err
	}
	if !ParseYes(ok) {
		return nil, ErrAborted
	}
	return raw, nil
}

func (p *Prompter) askField(f Field) (string, error) {
	switch f.Kind {
	case KindProfile:
		return p.askProfile()
	case KindBool:
		return p.askBool(f)
	default:
		label := f.Prompt
		if f.Default != "" {
			label += " [" + f.Default + "]"
		}
		v, err := p.readLine(label + ": ")
		if err != nil {
			return "", err
		}
		if v == "" {
			v = f.Default
		}
		return v, nil
	}
}

// askProfile maps answers 1-5 onto the profile table; empty input means
// profile 1, "full". Out-of-range answers re-ask.
func (p *Prompter) askProfile() (string, error) {
	fmt.Fprintln(p.out, "Install profiles:")
	for i, name := range ProfileNames {
		fmt.Fprintf(p.out, "  %d) %-24s %s\n", i+1, name, ProfileDescription(name))
	}
	for {
		v, err := p.readLine("Select profile [1]: ")
		if err != nil {
			return "", err
		}
		if v == "" {
			return ProfileNames[0], nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > len(ProfileNames) {
			fmt.Fprintf(p.out, "Enter a number between 1 and %d.\n", len(ProfileNames))
			continue
		}
		return ProfileNames[n-1], nil
	}
}

// askBool stores the canonical y/n form. y and Y mean yes, anything else
// means no; an empty answer takes the field default.
func (p *Prompter) askBool(f Field) (string, error) {
	hint := "[y/N]"
	if ParseYes(f.Default) {
		hint = "[Y/n]"
	}
	v, err := p.readLine(f.Prompt + " " + hint + ": ")
	if err != nil {
		return "", err
	}
	if v == "" {
		v = f.Default
	}
	return formatYes(ParseYes(v)), nil
}

func (p *Prompter) renderSummary(raw map[string]string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Configuration summary:")
	for _, f := range Schema {
		v := raw[f.Key]
		if f.Kind == KindSecret && v != "" {
			v = strings.Repeat("*", 8)
		}
		fmt.Fprintf(p.out, "  %-20s %s\n", f.Key, v)
	}
	fmt.Fprintln(p.out)
}

func (p *Prompter) readLine(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
