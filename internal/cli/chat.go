package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/evadvisor/internal/model"
	"github.com/ppiankov/evadvisor/internal/session"
	"github.com/spf13/cobra"
)

var (
	chatRole   string
	chatExport string
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Chat reads one message per line and answers each independently.

Commands inside the session:
  /history         show the conversation so far
  /export <path>   write the conversation to .csv or .json
  /role <role>     switch role (none, consumer, policymaker, fleet_manager, dealer)
  /help            show this help
  /quit            leave (Ctrl-D works too)

Example:
  evadvisor chat
  evadvisor chat --role fleet_manager --export chat.csv`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatRole, "role", "", "session role (consumer, policymaker, fleet_manager, dealer)")
	chatCmd.Flags().StringVar(&chatExport, "export", "", "write the conversation to this file on exit (.csv or .json)")
}

func runChat(cmd *cobra.Command, args []string) error {
	role, err := model.ParseRole(chatRole)
	if err != nil {
		return err
	}

	cfg, p, err := buildPipeline()
	if err != nil {
		return err
	}

	repl := &chatLoop{
		handler: p,
		history: session.NewHistory(cfg.Session.MaxTurns),
		role:    role,
		in:      cmd.InOrStdin(),
		out:     cmd.OutOrStdout(),
		verbose: cfg.Output.Verbose,
	}
	if err := repl.run(); err != nil {
		return err
	}

	if chatExport != "" {
		if err := session.ExportFile(chatExport, repl.history.Turns()); err != nil {
			return fmt.Errorf("export conversation: %w", err)
		}
		fmt.Fprintf(repl.out, "✓ Wrote conversation: %s\n", chatExport)
	}
	return nil
}

type messageHandler interface {
	Handle(message string, role model.Role) model.Reply
}

// chatLoop is the interactive collaborator: it owns the history and calls
// the pipeline once per line
type chatLoop struct {
	handler messageHandler
	history *session.History
	role    model.Role
	in      io.Reader
	out     io.Writer
	verbose bool
}

func (c *chatLoop) run() error {
	fmt.Fprintln(c.out, "EV Market Advisor. Ask me anything about EVs (/help for commands).")
	if c.role != model.RoleNone {
		fmt.Fprintf(c.out, "Role: %s\n", c.role)
	}

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := c.command(line); quit {
				return nil
			}
			continue
		}

		reply := c.handler.Handle(line, c.role)
		c.history.Record(reply)
		if c.verbose {
			printReplyMeta(reply)
		}
		fmt.Fprintln(c.out, reply.Response)
	}

	fmt.Fprintln(c.out)
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// command runs a slash command and reports whether the session should end
func (c *chatLoop) command(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true

	case "/help":
		fmt.Fprintln(c.out, "/history, /export <path>, /role <role>, /quit")

	case "/history":
		turns := c.history.Turns()
		if len(turns) == 0 {
			fmt.Fprintln(c.out, "(no messages yet)")
		}
		for _, t := range turns {
			label := string(t.Speaker)
			if t.Intent != nil {
				label += " [" + t.Intent.String() + "]"
			}
			fmt.Fprintf(c.out, "%3d %s: %s\n", t.Position, label, t.Text)
		}

	case "/export":
		if arg == "" {
			fmt.Fprintln(c.out, "usage: /export <path.csv|path.json>")
			break
		}
		if err := session.ExportFile(arg, c.history.Turns()); err != nil {
			fmt.Fprintf(c.out, "✗ %v\n", err)
			break
		}
		fmt.Fprintf(c.out, "✓ Wrote conversation: %s\n", arg)

	case "/role":
		role, err := model.ParseRole(arg)
		if err != nil {
			fmt.Fprintf(c.out, "✗ %v\n", err)
			break
		}
		c.role = role
		fmt.Fprintf(c.out, "Role: %s\n", c.role)

	default:
		fmt.Fprintf(c.out, "unknown command %s (try /help)\n", name)
	}
	return false
}
