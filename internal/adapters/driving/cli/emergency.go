package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

var (
	resourcesLimit     int
	resourcesEmergency bool
)

var (
	vitalsHeartRate int
	vitalsSystolic  int
	vitalsResp      int
	vitalsAge       string
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List nearby healthcare resources",
	Long: `Lists local healthcare resources for the region, emergency-capable
resources first and then nearest first.`,
	Args: cobra.NoArgs,
	RunE: runResources,
}

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Show emergency contacts for the region",
	Long: `Shows emergency-capable resources for the region. Falls back to the
national hotlines when none are known.`,
	Args: cobra.NoArgs,
	RunE: runContacts,
}

var protocolCmd = &cobra.Command{
	Use:   "protocol [type]",
	Short: "Show a first-aid protocol",
	Long: `Shows the first-aid protocol for an emergency type such as cardiac,
respiratory, unconscious, bleeding or choking. Unknown types show the
generic protocol. Without a type, lists the stored protocols.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProtocol,
}

var vitalsCmd = &cobra.Command{
	Use:   "vitals",
	Short: "Assess vital signs",
	Long: `Classifies vital signs against normal ranges for an age group.
Readings that are not given are not assessed.

Age groups: infant, toddler, preschool, school_age, adult, elderly.`,
	Args: cobra.NoArgs,
	RunE: runVitals,
}

func init() {
	resourcesCmd.Flags().IntVarP(&resourcesLimit, "limit", "n", domain.DefaultResourceLimit, "maximum number of resources")
	resourcesCmd.Flags().BoolVarP(&resourcesEmergency, "emergency", "e", false, "only emergency-capable resources")

	vitalsCmd.Flags().IntVar(&vitalsHeartRate, "heart-rate", 0, "heart rate in beats per minute")
	vitalsCmd.Flags().IntVar(&vitalsSystolic, "bp", 0, "systolic blood pressure in mmHg")
	vitalsCmd.Flags().IntVar(&vitalsResp, "resp", 0, "respiratory rate in breaths per minute")
	vitalsCmd.Flags().StringVar(&vitalsAge, "age", string(domain.AgeAdult), "age group")

	rootCmd.AddCommand(resourcesCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(protocolCmd)
	rootCmd.AddCommand(vitalsCmd)
}

func runResources(cmd *cobra.Command, _ []string) error {
	if emergencyService == nil {
		return errors.New("emergency service not configured")
	}

	resources, err := emergencyService.Resources(commandContext(cmd), domain.ResourceQuery{
		Region:        regionFlag,
		EmergencyOnly: resourcesEmergency,
		Limit:         resourcesLimit,
	})
	if err != nil {
		return fmt.Errorf("resource lookup failed: %w", err)
	}

	if jsonFlag {
		return outputJSON(cmd, resources)
	}
	if len(resources) == 0 {
		cmd.Println("No resources found.")
		return nil
	}
	for i := range resources {
		r := &resources[i]
		marker := ""
		if r.EmergencyAvailable {
			marker = " [emergency]"
		}
		cmd.Printf("  [%d] %s (%.1f km)%s\n", i+1, r.Name, r.DistanceKm, marker)
		if r.Contact != "" {
			cmd.Printf("      Contact: %s\n", r.Contact)
		}
		if r.Location != "" {
			cmd.Printf("      Location: %s\n", r.Location)
		}
		if len(r.Services) > 0 {
			cmd.Printf("      Services: %s\n", strings.Join(r.Services, ", "))
		}
	}
	return nil
}

func runContacts(cmd *cobra.Command, _ []string) error {
	contacts := domain.HotlineContacts()
	if emergencyService != nil {
		contacts = emergencyService.Contacts(commandContext(cmd), regionFlag)
	}

	if jsonFlag {
		return outputJSON(cmd, contacts)
	}
	for _, c := range contacts {
		printContact(cmd, c)
	}
	return nil
}

func runProtocol(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	if len(args) == 0 {
		var protocols []domain.EmergencyProtocol
		if emergencyService != nil {
			var err error
			protocols, err = emergencyService.Protocols(ctx)
			if err != nil {
				return fmt.Errorf("failed to list protocols: %w", err)
			}
		}
		if jsonFlag {
			return outputJSON(cmd, protocols)
		}
		if len(protocols) == 0 {
			cmd.Println("No protocols stored.")
			return nil
		}
		for _, p := range protocols {
			cmd.Printf("  %-12s %s\n", p.Type, p.Title)
		}
		return nil
	}

	protocol := domain.GenericProtocol()
	if emergencyService != nil {
		protocol = emergencyService.Protocol(ctx, args[0])
	}
	if jsonFlag {
		return outputJSON(cmd, protocol)
	}
	printProtocol(cmd, protocol)
	return nil
}

func runVitals(cmd *cobra.Command, _ []string) error {
	if emergencyService == nil {
		return errors.New("emergency service not configured")
	}

	assessment := emergencyService.AssessVitals(domain.VitalSigns{
		HeartRate:       flagReading(cmd, "heart-rate", vitalsHeartRate),
		SystolicBP:      flagReading(cmd, "bp", vitalsSystolic),
		RespiratoryRate: flagReading(cmd, "resp", vitalsResp),
	}, domain.AgeGroup(vitalsAge))

	if jsonFlag {
		return outputJSON(cmd, assessment)
	}
	cmd.Printf("Status:     %s\n", assessment.Status)
	cmd.Printf("Age group:  %s\n", assessment.AgeGroup)
	if len(assessment.Critical) > 0 {
		cmd.Printf("Critical:   %s\n", strings.Join(assessment.Critical, ", "))
	}
	if len(assessment.Concerning) > 0 {
		cmd.Printf("Concerning: %s\n", strings.Join(assessment.Concerning, ", "))
	}
	if len(assessment.Normal) > 0 {
		cmd.Printf("Normal:     %s\n", strings.Join(assessment.Normal, ", "))
	}
	if assessment.Status == domain.VitalCritical {
		cmd.Println()
		cmd.Println("Call 108 immediately.")
	}
	return nil
}

// flagReading returns the flag value only when it was given, so that
// --heart-rate 0 is assessed rather than ignored.
func flagReading(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return domain.Reading(value)
}

func printContact(cmd *cobra.Command, c domain.EmergencyContact) {
	if c.Availability != "" {
		cmd.Printf("  %s: %s (%s)\n", c.Name, c.Contact, c.Availability)
		return
	}
	cmd.Printf("  %s: %s\n", c.Name, c.Contact)
}

func printProtocol(cmd *cobra.Command, p domain.EmergencyProtocol) {
	title := p.Title
	if title == "" {
		title = p.Type
	}
	cmd.Printf("First aid: %s\n", title)
	cmd.Printf("  %s\n", p.ImmediateAction)
	for i, step := range p.Steps {
		cmd.Printf("  %d. %s\n", i+1, step)
	}
	if len(p.WarningSigns) > 0 {
		cmd.Printf("  Watch for: %s\n", strings.Join(p.WarningSigns, "; "))
	}
	if len(p.DoNotDo) > 0 {
		cmd.Printf("  Do not: %s\n", strings.Join(p.DoNotDo, "; "))
	}
	if p.CallEmergency != "" {
		cmd.Printf("  Call: %s\n", p.CallEmergency)
	}
}
