package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/evadvisor/internal/model"
	"github.com/spf13/cobra"
)

var (
	askRole string
	askJSON bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Answer a single message",
	Long: `Ask classifies one message and prints the answer.

Example:
  evadvisor ask "I want to buy a cheap EV under 40k"
  evadvisor ask --role policymaker "our Pacifica PHEV fleet"
  evadvisor ask --mode learned --json "which ev should I buy"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askRole, "role", "", "answer as this role (consumer, policymaker, fleet_manager, dealer)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full reply as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	role, err := model.ParseRole(askRole)
	if err != nil {
		return err
	}

	cfg, p, err := buildPipeline()
	if err != nil {
		return err
	}

	message := strings.Join(args, " ")
	reply := p.Handle(message, role)

	if cfg.Output.Verbose {
		printReplyMeta(reply)
	}

	out := cmd.OutOrStdout()
	if askJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reply); err != nil {
			return fmt.Errorf("encode reply: %w", err)
		}
		return nil
	}

	fmt.Fprintln(out, reply.Response)
	return nil
}

// printReplyMeta writes how a reply was reached to stderr
func printReplyMeta(reply model.Reply) {
	fmt.Fprintf(os.Stderr, "  intent:  %s (%s)\n", reply.Intent, reply.Source)
	if reply.Trigger != "" {
		fmt.Fprintf(os.Stderr, "  trigger: %q\n", reply.Trigger)
	}
	if reply.Confidence > 0 {
		fmt.Fprintf(os.Stderr, "  p:       %.3f\n", reply.Confidence)
	}
	if reply.Role != model.RoleNone {
		fmt.Fprintf(os.Stderr, "  role:    %s / %s\n", reply.Role, reply.Cluster)
	}
}
