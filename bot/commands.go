package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Commands arrive as a keyword line followed by a comma-separated argument
// line:
//
//	SHOW_ACCOUNT\n<id>
//	CREATE_ENTRY\n<name>,<id>,<amount>
//	CREATE_ENTRY_WITH_ACCOUNT\n<name>,<amount>
//
// A negative amount records a credit, a non-negative one a debit.
const (
	KindShowAccount            = "SHOW_ACCOUNT"
	KindCreateEntry            = "CREATE_ENTRY"
	KindCreateEntryWithAccount = "CREATE_ENTRY_WITH_ACCOUNT"
)

var ErrUnknownCommand = errors.New("unknown command")

type Command struct {
	Kind      string
	AccountID int64
	Name      string
	Amount    int64
}

func ParseCommand(text string) (*Command, error) {
	lines := strings.SplitN(strings.TrimSpace(text), "\n", 2)
	if len(lines) != 2 {
		return nil, ErrUnknownCommand
	}
	kind := strings.TrimSpace(lines[0])
	args := strings.Split(lines[1], ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}

	switch kind {
	case KindShowAccount:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s expects <id>", ErrUnknownCommand, kind)
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad account id %q", ErrUnknownCommand, args[0])
		}
		return &Command{Kind: kind, AccountID: id}, nil

	case KindCreateEntry:
		if len(args) != 3 {
			return nil, fmt.Errorf("%w: %s expects <name>,<id>,<amount>", ErrUnknownCommand, kind)
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad account id %q", ErrUnknownCommand, args[1])
		}
		amount, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad amount %q", ErrUnknownCommand, args[2])
		}
		return &Command{Kind: kind, Name: args[0], AccountID: id, Amount: amount}, nil

	case KindCreateEntryWithAccount:
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: %s expects <name>,<amount>", ErrUnknownCommand, kind)
		}
		if args[0] == "" {
			return nil, fmt.Errorf("%w: account name is required", ErrUnknownCommand)
		}
		amount, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad amount %q", ErrUnknownCommand, args[1])
		}
		return &Command{Kind: kind, Name: args[0], Amount: amount}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, kind)
}
