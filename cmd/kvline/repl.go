package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pior/kvline"
	"github.com/pior/kvline/protocol"
)

// connector is implemented by *kvline.Client.
type connector interface {
	State() kvline.State
	Connect(ctx context.Context) error
}

// runREPL reads commands from in until QUIT or EOF. Results are printed in
// the wire vocabulary; client-side failures are printed as "ERROR: <message>"
// and do not end the loop. A dropped connection is reopened before the next
// command when q can connect.
func runREPL(ctx context.Context, q kvline.Querier, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "=== Interactive Mode ===")
	fmt.Fprintln(out, "Commands: SET key value, GET key, DELETE key, EXISTS key, QUIT")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		parts := splitCommand(scanner.Text(), 3)
		if len(parts) == 0 {
			continue
		}

		if strings.EqualFold(parts[0], "QUIT") {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		if c, ok := q.(connector); ok && c.State() == kvline.StateDisconnected {
			if err := c.Connect(ctx); err != nil {
				fmt.Fprintf(out, "ERROR: %v\n", err)
				continue
			}
		}

		reply, err := execute(ctx, q, parts)
		if err != nil {
			fmt.Fprintf(out, "ERROR: %v\n", err)
			continue
		}
		fmt.Fprintln(out, reply)
	}
}

func execute(ctx context.Context, q kvline.Querier, parts []string) (string, error) {
	verb := protocol.Verb(strings.ToUpper(parts[0]))

	switch {
	case verb == protocol.VerbSet && len(parts) >= 3:
		if _, err := q.Set(ctx, parts[1], parts[2]); err != nil {
			return "", err
		}
		return string(protocol.StatusOK), nil

	case verb == protocol.VerbGet && len(parts) >= 2:
		item, err := q.Get(ctx, parts[1])
		if err != nil {
			return "", err
		}
		if !item.Found {
			return errorReply(protocol.CodeKeyNotFound), nil
		}
		return string(protocol.StatusOK) + protocol.Space + item.Value, nil

	case verb == protocol.VerbDelete && len(parts) >= 2:
		deleted, err := q.Delete(ctx, parts[1])
		if err != nil {
			return "", err
		}
		if !deleted {
			return errorReply(protocol.CodeKeyNotFound), nil
		}
		return string(protocol.StatusOK), nil

	case verb == protocol.VerbExists && len(parts) >= 2:
		exists, err := q.Exists(ctx, parts[1])
		if err != nil {
			return "", err
		}
		token := protocol.TokenFalse
		if exists {
			token = protocol.TokenTrue
		}
		return string(protocol.StatusOK) + protocol.Space + token, nil
	}

	return errorReply(protocol.CodeInvalidCommand), nil
}

func errorReply(code protocol.ErrorCode) string {
	return string(protocol.StatusError) + protocol.Space + string(code)
}

// splitCommand splits line on whitespace into at most n fields. The last
// field keeps its inner whitespace.
func splitCommand(line string, n int) []string {
	var parts []string
	rest := strings.TrimSpace(line)
	for rest != "" && len(parts) < n-1 {
		i := strings.IndexFunc(rest, unicode.IsSpace)
		if i < 0 {
			break
		}
		parts = append(parts, rest[:i])
		rest = strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
	}
	if rest != "" {
		parts = append(parts, rest)
	}
	return parts
}
