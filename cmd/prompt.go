package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/compozy/hellopr/internal/domain"
)

// prompter drives the numbered repository menu and the y/n confirmation.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// SelectRepository prints a 1-based menu and returns the chosen entry.
func (p *prompter) SelectRepository(repos []string) (string, error) {
	if len(repos) == 0 {
		return "", fmt.Errorf("%w: no repositories available", domain.ErrInput)
	}
	fmt.Fprintln(p.out, "Please select a repository:")
	for i, repo := range repos {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, repo)
	}
	fmt.Fprint(p.out, "Enter a number: ")
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(repos) {
		return "", fmt.Errorf("%w: you must choose a valid number corresponding to a repository, got %q",
			domain.ErrInput, line)
	}
	return repos[n-1], nil
}

// Confirm asks the user to confirm the selection; anything but "y" aborts.
func (p *prompter) Confirm(repo string) error {
	fmt.Fprintf(p.out, "You have selected: %s\n", repo)
	fmt.Fprint(p.out, "Is this correct? <y/n> ")
	line, err := p.readLine()
	if err != nil {
		return err
	}
	if line != "y" {
		fmt.Fprintln(p.out, "Aborting...")
		return fmt.Errorf("%w: aborted by user", domain.ErrInput)
	}
	return nil
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			return "", fmt.Errorf("%w: no input", domain.ErrInput)
		}
	}
	return strings.TrimSpace(line), nil
}
