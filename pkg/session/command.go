package session

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
)

// Op is a session operation.
type Op string

const (
	OpInsert   Op = "insert"
	OpSearch   Op = "search"
	OpDelete   Op = "delete"
	OpTraverse Op = "traverse"
	OpReset    Op = "reset"
	OpClear    Op = "clear"
	OpPan      Op = "pan"
	OpZoom     Op = "zoom"
)

// Command is a parsed operation with its arguments.
type Command struct {
	Op        Op
	Value     int
	Traversal bst.Traversal

	// Pan uses DX/DY; zoom uses Delta anchored at (X, Y).
	DX, DY float64
	Delta  float64
	X, Y   float64
}

var opAliases = map[string]Op{
	"insert": OpInsert, "i": OpInsert, "add": OpInsert,
	"search": OpSearch, "s": OpSearch, "find": OpSearch,
	"delete": OpDelete, "d": OpDelete, "remove": OpDelete, "rm": OpDelete, "del": OpDelete,
	"traverse": OpTraverse, "t": OpTraverse,
	"reset": OpReset,
	"clear": OpClear,
	"pan":   OpPan,
	"zoom":  OpZoom,
}

// ParseCommand parses one command line such as "insert 5", "traverse bfs",
// "inorder", "pan 10 -5" or "zoom -120 400 300". A bare traversal name is
// shorthand for "traverse <name>".
func ParseCommand(line string) (Command, error) {
	if err := errors.ValidateCommand(line); err != nil {
		return Command{}, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.New(errors.ErrCodeInvalidCommand, "empty command")
	}

	name := strings.ToLower(fields[0])
	args := fields[1:]

	op, ok := opAliases[name]
	if !ok {
		if k, err := bst.ParseTraversal(name); err == nil {
			return Command{Op: OpTraverse, Traversal: k}, noArgs(name, args)
		}
		return Command{}, errors.New(errors.ErrCodeInvalidCommand, "unknown command %q", fields[0])
	}

	cmd := Command{Op: op}
	switch op {
	case OpInsert, OpSearch, OpDelete:
		if len(args) != 1 {
			return Command{}, errors.New(errors.ErrCodeInvalidCommand, "%s expects one value", op)
		}
		v, err := errors.ParseValue(args[0])
		if err != nil {
			return Command{}, err
		}
		cmd.Value = v

	case OpTraverse:
		if len(args) != 1 {
			return Command{}, errors.New(errors.ErrCodeInvalidCommand, "traverse expects a kind")
		}
		k, err := bst.ParseTraversal(args[0])
		if err != nil {
			return Command{}, errors.Wrap(errors.ErrCodeInvalidTraversal, err, "traverse")
		}
		cmd.Traversal = k

	case OpPan:
		if len(args) != 2 {
			return Command{}, errors.New(errors.ErrCodeInvalidCommand, "pan expects dx dy")
		}
		nums, err := parseFloats(args)
		if err != nil {
			return Command{}, err
		}
		cmd.DX, cmd.DY = nums[0], nums[1]

	case OpZoom:
		if len(args) != 1 && len(args) != 3 {
			return Command{}, errors.New(errors.ErrCodeInvalidCommand, "zoom expects delta [x y]")
		}
		nums, err := parseFloats(args)
		if err != nil {
			return Command{}, err
		}
		cmd.Delta = nums[0]
		if len(nums) == 3 {
			cmd.X, cmd.Y = nums[1], nums[2]
		}

	default:
		if err := noArgs(name, args); err != nil {
			return Command{}, err
		}
	}
	return cmd, nil
}

// ParseScript parses one command per line. Blank lines and lines starting
// with '#' are skipped. Errors carry the 1-based line number.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := ParseCommand(text)
		if err != nil {
			return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidCommand), err, "line %d", line)
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read script")
	}
	return cmds, nil
}

// Apply executes cmd. The returned entry is the log line written for it;
// pan and zoom return a zero Entry because view changes are not logged.
// The only error is DUPLICATE_VALUE from an insert.
func (s *Session) Apply(ctx context.Context, cmd Command) (Entry, error) {
	switch cmd.Op {
	case OpInsert:
		return s.Insert(ctx, cmd.Value)
	case OpSearch:
		e, _ := s.Search(ctx, cmd.Value)
		return e, nil
	case OpDelete:
		e, _ := s.Delete(ctx, cmd.Value)
		return e, nil
	case OpTraverse:
		e, _ := s.Traverse(ctx, cmd.Traversal)
		return e, nil
	case OpReset:
		return s.Reset(), nil
	case OpClear:
		return s.Clear(), nil
	case OpPan:
		s.Pan(cmd.DX, cmd.DY)
		return Entry{}, nil
	case OpZoom:
		s.ZoomAt(cmd.X, cmd.Y, cmd.Delta)
		return Entry{}, nil
	}
	return Entry{}, errors.New(errors.ErrCodeInvalidCommand, "unsupported operation %q", cmd.Op)
}

func noArgs(name string, args []string) error {
	if len(args) > 0 {
		return errors.New(errors.ErrCodeInvalidCommand, "%s takes no arguments", name)
	}
	return nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "not a number: %q", a)
		}
		out[i] = f
	}
	return out, nil
}
