package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/fieldkit/internal/models"
	"github.com/example/fieldkit/internal/wire"
)

// RetrieveCmd returns the retrieve command group
func RetrieveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Walk through the retrieval checklist",
		Long: `Collect recorders once every site is deployed.

Select a deployed site, then record arrival, device condition and the
ground truth update before finishing. organize reports when every
recorder is back.`,
	}

	cmd.AddCommand(retrieveSelectCmd())
	cmd.AddCommand(retrieveArriveCmd())
	cmd.AddCommand(retrieveDeviceCmd())
	cmd.AddCommand(retrieveGroundTruthCmd())
	cmd.AddCommand(retrieveFinishCmd())
	cmd.AddCommand(retrieveOrganizeCmd())
	return cmd
}

func retrieveSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select [site-id]",
		Short: "Select a deployed site for retrieval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.WorkflowAdapter().SelectRetrieval(NewContext(), args[0])
		},
	}
}

func retrieveArriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arrive",
		Short: "Record arrival at the retrieval site",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, _ := cmd.Flags().GetString("time")
			return wire.WorkflowAdapter().RetrievalArrive(NewContext(), at)
		},
	}

	cmd.Flags().String("time", "", "Arrival time (default: now)")
	return cmd
}

func retrieveDeviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Record the recorder condition",
		RunE: func(cmd *cobra.Command, args []string) error {
			status := models.DeviceStatus{}
			status.Battery, _ = cmd.Flags().GetString("battery")
			status.Condition, _ = cmd.Flags().GetString("condition")
			status.SDRemoved, _ = cmd.Flags().GetBool("sd-removed")
			status.Note, _ = cmd.Flags().GetString("note")

			return wire.WorkflowAdapter().DeviceRetrieval(NewContext(), status)
		},
	}

	cmd.Flags().String("battery", "", "Battery level (Full, Moderate, Low, Depleted)")
	cmd.Flags().String("condition", "", "Device condition (Dry, Wet, Damaged, Missing)")
	cmd.Flags().Bool("sd-removed", false, "SD card removed")
	cmd.Flags().String("note", "", "Notes on the recorder")
	return cmd
}

func retrieveGroundTruthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groundtruth",
		Short: "Record changes observed since deployment",
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, _ := cmd.Flags().GetString("vegetation-changed")
			vegetationChanged, err := parseYesNo(changed)
			if err != nil {
				return err
			}

			update := models.GroundTruthUpdate{
				VegetationChanged: vegetationChanged,
				Photo:             optionalString(cmd, "photo"),
			}
			update.Notes, _ = cmd.Flags().GetString("notes")
			update.BirdActivity, _ = cmd.Flags().GetString("bird-activity")
			update.NoiseLevel, _ = cmd.Flags().GetString("noise")

			return wire.WorkflowAdapter().GroundTruthUpdate(NewContext(), update)
		},
	}

	cmd.Flags().String("vegetation-changed", "", "Vegetation changed since deployment (yes/no)")
	cmd.Flags().String("notes", "", "Describe the changes")
	cmd.Flags().String("bird-activity", "", "Bird activity")
	cmd.Flags().String("noise", "", "Background noise level (Silent, Low, Moderate, High)")
	cmd.Flags().String("photo", "", "Photo reference")
	return cmd
}

func retrieveFinishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish",
		Short: "Close the current retrieval",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.WorkflowAdapter().FinishRetrieval(NewContext())
		},
	}
}

func retrieveOrganizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "organize",
		Short: "Check whether every recorder has been retrieved",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.WorkflowAdapter().Organize(NewContext())
		},
	}
}
