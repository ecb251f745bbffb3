// Package input reads roll sequences typed by a person or passed on a command line.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

// Prompt asks for rolls on an interactive terminal.
const Prompt = "Enter the bowling scores for each roll (enter a non-number to end):"

// InvalidMessage is written when a typed roll is out of range.
const InvalidMessage = "Invalid input. Rolls must be between 0 and 10.  Please re-enter."

// ErrBadToken indicates a token that is not an integer.
var ErrBadToken = errors.New("not an integer")

// ReadRolls reads whitespace-separated rolls from r, one line at a time.
// An out-of-range value writes InvalidMessage to w and the rest of its line is
// discarded. Input ends at the first token that does not start with an integer;
// a token like "5x" records 5 and then ends input.
func ReadRolls(r io.Reader, w io.Writer) ([]int, error) {
	if w == nil {
		w = io.Discard
	}
	var rolls []int
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return rolls, fmt.Errorf("read rolls: %w", err)
		}
		for _, tok := range strings.Fields(line) {
			pins, rest, ok := leadingInt(tok)
			if !ok {
				return rolls, nil
			}
			if bowling.ValidateRoll(pins) != nil {
				fmt.Fprintln(w, InvalidMessage)
				break
			}
			rolls = append(rolls, pins)
			if rest != "" {
				return rolls, nil
			}
		}
		if err != nil {
			return rolls, nil
		}
	}
}

// leadingInt parses the optionally signed decimal prefix of tok.
func leadingInt(tok string) (int, string, bool) {
	i := 0
	if i < len(tok) && (tok[i] == '-' || tok[i] == '+') {
		i++
	}
	digits := i
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, tok, false
	}
	n, err := strconv.Atoi(tok[:i])
	if err != nil {
		return 0, tok, false
	}
	return n, tok[i:], true
}

// ParseRolls parses a comma- or whitespace-separated list such as "10,7,3".
// Unlike ReadRolls it fails on the first bad token.
func ParseRolls(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	rolls := make([]int, 0, len(fields))
	for i, tok := range fields {
		pins, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("roll %d %q: %w", i+1, tok, ErrBadToken)
		}
		if err := bowling.ValidateRoll(pins); err != nil {
			return nil, fmt.Errorf("roll %d: %w", i+1, err)
		}
		rolls = append(rolls, pins)
	}
	return rolls, nil
}
