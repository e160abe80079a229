package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/pinpoint"
	"github.com/fwojciec/pinpoint/chat"
	"github.com/google/uuid"
)

// maxInputBytes bounds a single chat line. Pasted articles exceed bufio's
// default token size.
const maxInputBytes = 1 << 20

// Run executes the chat command: a line-oriented REPL over a single session.
func (c *ChatCmd) Run(deps *Dependencies) error {
	sess := pinpoint.NewSession(uuid.New().String())

	fmt.Fprintln(deps.Stdout, chat.WelcomeText)
	fmt.Fprintln(deps.Stdout, "Type /reset to start over, /quit to exit.")

	scanner := bufio.NewScanner(deps.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), maxInputBytes)

	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/reset":
			sess.Reset()
			fmt.Fprintln(deps.Stdout, "Session cleared. "+chat.WelcomeText)
			continue
		}

		answer, err := deps.Chat.Ask(deps.Ctx, sess, line)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pinpoint.ErrorMessage(err))
			continue
		}
		fmt.Fprintln(deps.Stdout, answer)
	}

	return scanner.Err()
}
