package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// maxStdinBytes caps symptom text read from a pipe.
const maxStdinBytes = 16 << 10

// askInput is where ask reads symptom text when no argument is given.
var askInput io.Reader = os.Stdin

var askCmd = &cobra.Command{
	Use:   "ask [symptoms...]",
	Short: "Get guidance for a symptom description",
	Long: `Evaluates a free-text symptom description and prints guidance with
severity, urgency and disclaimers. Emergencies include contacts and the
matching first-aid protocol.

The text may be given as arguments or piped on stdin:
  sahaaya ask "I have fever and cough"
  echo "मुझे सिरदर्द है" | sahaaya ask`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

// askResult is the JSON shape printed by ask --json.
type askResult struct {
	*domain.GuidanceResult
	Protocol *domain.EmergencyProtocol `json:"protocol,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	if guidanceService == nil {
		return errors.New("guidance service not configured")
	}

	text, err := askText(args)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	result, err := guidanceService.Evaluate(ctx, text, langFlag)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	out := askResult{GuidanceResult: result}
	if result.IsEmergency && emergencyService != nil {
		protocol := emergencyService.ProtocolFor(ctx, result.EmergencyTypes)
		out.Protocol = &protocol
	}

	if jsonFlag {
		return outputJSON(cmd, out)
	}
	printGuidance(cmd, out)
	return nil
}

// askText joins args, or reads stdin when it is not a terminal.
func askText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := askInput.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("describe your symptoms as arguments or pipe them on stdin")
	}
	data, err := io.ReadAll(io.LimitReader(askInput, maxStdinBytes))
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func printGuidance(cmd *cobra.Command, out askResult) {
	r := out.GuidanceResult

	if r.IsEmergency {
		cmd.Println("*** EMERGENCY ***")
		cmd.Println()
	}
	cmd.Println(r.Guidance)
	cmd.Println()

	if len(r.DetectedSymptoms) > 0 {
		cmd.Printf("Symptoms:   %s\n", strings.Join(r.DetectedSymptoms, ", "))
	}
	cmd.Printf("Severity:   %s\n", r.Severity)
	cmd.Printf("Urgency:    %s\n", r.Urgency)
	cmd.Printf("Confidence: %s\n", r.Confidence)
	cmd.Printf("Language:   %s (%s)\n", r.Language.Description(), r.Language)
	cmd.Printf("Mode:       %s\n", r.Mode)
	if len(r.RedFlags) > 0 {
		cmd.Printf("Red flags:  %s\n", strings.Join(r.RedFlags, ", "))
	}

	if len(r.EmergencyContacts) > 0 {
		cmd.Println()
		cmd.Println("Emergency contacts:")
		for _, c := range r.EmergencyContacts {
			printContact(cmd, c)
		}
	}

	if out.Protocol != nil {
		cmd.Println()
		printProtocol(cmd, *out.Protocol)
	}

	if len(r.Disclaimers) > 0 {
		cmd.Println()
		for _, d := range r.Disclaimers {
			cmd.Printf("Note: %s\n", d)
		}
	}

	for _, w := range r.Warnings {
		cmd.Printf("Warning: %s\n", w)
	}
}
