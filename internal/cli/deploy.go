package cli

import (
	"time"

	"github.com/spf13/cobra"

	coresite "github.com/example/fieldkit/internal/core/site"
	"github.com/example/fieldkit/internal/models"
	"github.com/example/fieldkit/internal/wire"
)

// DeployCmd returns the deploy command group
func DeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Walk through the deployment checklist",
		Long: `Record each deployment step for the site in progress.

Steps unlock in order: predeploy, arrive, device, place, document,
groundtruth. Recording ground truth marks the site deployed; finish-site
then returns to site arrival for the next site.`,
	}

	cmd.AddCommand(deployPreDeployCmd())
	cmd.AddCommand(deploySelectCmd())
	cmd.AddCommand(deployArriveCmd())
	cmd.AddCommand(deployDeviceCmd())
	cmd.AddCommand(deployPlaceCmd())
	cmd.AddCommand(deployDocumentCmd())
	cmd.AddCommand(deployGroundTruthCmd())
	cmd.AddCommand(deployPhotosCmd())
	cmd.AddCommand(deployFinishSiteCmd())
	cmd.AddCommand(deployFinishDayCmd())
	cmd.AddCommand(deploySummaryCmd())
	return cmd
}

func deployPreDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predeploy",
		Short: "Complete the pre-deployment equipment checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			travel, _ := cmd.Flags().GetString("travel-time")
			team, _ := cmd.Flags().GetBool("team-ready")
			vehicle, _ := cmd.Flags().GetBool("vehicle-ready")

			checklist := coresite.PreDeploymentChecklist{
				DevicesConfigured: flagOrAll(cmd, "devices-configured"),
				BatteriesInserted: flagOrAll(cmd, "batteries-inserted"),
				SDCardsFormatted:  flagOrAll(cmd, "sd-formatted"),
				DeviceLabeled:     flagOrAll(cmd, "device-labeled"),
				GPSDownloaded:     flagOrAll(cmd, "gps-downloaded"),
				PhoneCharged:      flagOrAll(cmd, "phone-charged"),
				TeamReady:         team,
				VehicleReady:      vehicle,
				TravelTime:        travel,
			}
			return wire.WorkflowAdapter().PreDeploy(NewContext(), checklist)
		},
	}

	cmd.Flags().Bool("all", false, "Tick all six equipment checks")
	cmd.Flags().Bool("devices-configured", false, "Recorders configured")
	cmd.Flags().Bool("batteries-inserted", false, "Batteries inserted")
	cmd.Flags().Bool("sd-formatted", false, "SD cards formatted")
	cmd.Flags().Bool("device-labeled", false, "Recorders labeled")
	cmd.Flags().Bool("gps-downloaded", false, "Site GPS points downloaded")
	cmd.Flags().Bool("phone-charged", false, "Phone charged")
	cmd.Flags().Bool("team-ready", false, "Team briefed")
	cmd.Flags().Bool("vehicle-ready", false, "Vehicle ready")
	cmd.Flags().String("travel-time", "", "Expected travel time")
	return cmd
}

func deploySelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select [site-id]",
		Short: "Select the site to deploy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.WorkflowAdapter().Select(NewContext(), args[0])
		},
	}
}

func deployArriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arrive [site-id]",
		Short: "Record arrival at a site",
		Long:  "Record arrival at a site. Without a site id the selected site is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gps, _ := cmd.Flags().GetString("gps")
			at, _ := cmd.Flags().GetString("time")
			issue, _ := cmd.Flags().GetBool("access-issue")
			note, _ := cmd.Flags().GetString("issue-note")

			coords, err := parseCoords(gps)
			if err != nil {
				return err
			}
			if at == "" {
				at = time.Now().Format("15:04")
			}

			var siteID string
			if len(args) == 1 {
				siteID = args[0]
			}
			return wire.WorkflowAdapter().Arrive(NewContext(), siteID, models.Arrival{
				Coords:      coords,
				Time:        at,
				AccessIssue: issue,
				IssueNote:   note,
			})
		},
	}

	cmd.Flags().String("gps", "", "GPS fix as lat,lng[,accuracy]")
	cmd.Flags().String("time", "", "Arrival time (default: now)")
	cmd.Flags().Bool("access-issue", false, "Access to the site was difficult")
	cmd.Flags().String("issue-note", "", "Describe the access issue")
	return cmd
}

func deployDeviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Record recorder configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			setup := models.DeviceSetup{}
			setup.DeviceID, _ = cmd.Flags().GetString("id")
			setup.CustomMode, _ = cmd.Flags().GetBool("custom-mode")
			setup.BatteriesOK, _ = cmd.Flags().GetBool("batteries-ok")
			setup.SDOK, _ = cmd.Flags().GetBool("sd-ok")
			setup.StartDate, _ = cmd.Flags().GetString("start-date")
			setup.StartTime, _ = cmd.Flags().GetString("start-time")
			setup.Duration, _ = cmd.Flags().GetString("duration")
			setup.ScheduleConfirmed, _ = cmd.Flags().GetBool("schedule-confirmed")

			return wire.WorkflowAdapter().Device(NewContext(), setup)
		},
	}

	cmd.Flags().String("id", "", "Device ID / serial")
	cmd.Flags().Bool("custom-mode", false, "Custom recording mode set")
	cmd.Flags().Bool("batteries-ok", false, "Battery level checked")
	cmd.Flags().Bool("sd-ok", false, "SD card inserted and detected")
	cmd.Flags().String("start-date", "", "Schedule start date (DD-MM-YYYY)")
	cmd.Flags().String("start-time", "", "Schedule start time (HH.MM)")
	cmd.Flags().String("duration", "", "Recording duration in days (1, 3 or 5)")
	cmd.Flags().Bool("schedule-confirmed", false, "Schedule confirmed on the device")
	return cmd
}

func deployPlaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Confirm the placement checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.WorkflowAdapter().Place(NewContext(), models.Placement{
				HeightOK:      flagOrAll(cmd, "height-ok"),
				MicOut:        flagOrAll(cmd, "mic-out"),
				TiltDown:      flagOrAll(cmd, "tilt-down"),
				AwayFromTrail: flagOrAll(cmd, "away-from-trail"),
				AwayFromWater: flagOrAll(cmd, "away-from-water"),
				AwayFromRoad:  flagOrAll(cmd, "away-from-road"),
				SecureAttach:  flagOrAll(cmd, "secure-attach"),
				Waterproof:    flagOrAll(cmd, "waterproof"),
			})
		},
	}

	cmd.Flags().Bool("all", false, "Confirm every placement rule")
	cmd.Flags().Bool("height-ok", false, "Mounted at the right height")
	cmd.Flags().Bool("mic-out", false, "Microphone unobstructed")
	cmd.Flags().Bool("tilt-down", false, "Tilted slightly down")
	cmd.Flags().Bool("away-from-trail", false, "Away from trails")
	cmd.Flags().Bool("away-from-water", false, "Away from running water")
	cmd.Flags().Bool("away-from-road", false, "Away from roads")
	cmd.Flags().Bool("secure-attach", false, "Securely attached")
	cmd.Flags().Bool("waterproof", false, "Weather protection in place")
	return cmd
}

func deployDocumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Document deployment conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			gps, _ := cmd.Flags().GetString("gps")
			rain, _ := cmd.Flags().GetString("recent-rain")

			coords, err := parseCoords(gps)
			if err != nil {
				return err
			}
			recentRain, err := parseYesNo(rain)
			if err != nil {
				return err
			}

			doc := models.Documentation{Coords: coords, RecentRain: recentRain}
			doc.TimeDeployed, _ = cmd.Flags().GetString("time")
			doc.Weather, _ = cmd.Flags().GetString("weather")
			doc.Wind, _ = cmd.Flags().GetString("wind")
			doc.RainNote, _ = cmd.Flags().GetString("rain-note")
			doc.Disturbance, _ = cmd.Flags().GetString("disturbance")
			doc.Notes, _ = cmd.Flags().GetString("notes")
			if doc.TimeDeployed == "" {
				doc.TimeDeployed = time.Now().Format("15:04")
			}

			return wire.WorkflowAdapter().Document(NewContext(), doc)
		},
	}

	cmd.Flags().String("gps", "", "Deployment GPS fix as lat,lng[,accuracy]")
	cmd.Flags().String("time", "", "Deployment time (default: now)")
	cmd.Flags().String("weather", "", "Weather (Clear, Cloudy, Light Rain, Heavy Rain, Other)")
	cmd.Flags().String("wind", "", "Wind (Calm, Light, Moderate, Strong)")
	cmd.Flags().String("recent-rain", "", "Rain in the last 24 hours (yes/no)")
	cmd.Flags().String("rain-note", "", "Describe the recent rainfall")
	cmd.Flags().String("disturbance", "", "Human or animal disturbance nearby")
	cmd.Flags().String("notes", "", "Free-form notes")
	return cmd
}

func deployGroundTruthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groundtruth",
		Short: "Record ground truth and complete the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			gt := models.GroundTruth{}
			gt.Flora.VegType, _ = cmd.Flags().GetString("veg-type")
			gt.Flora.CanopyCover, _ = cmd.Flags().GetString("canopy-cover")
			gt.Flora.CanopyHeight, _ = cmd.Flags().GetString("canopy-height")
			gt.Flora.Understory, _ = cmd.Flags().GetString("understory")
			gt.Flora.StressObserved, _ = cmd.Flags().GetBool("stress")
			gt.Flora.StressNote, _ = cmd.Flags().GetString("stress-note")
			gt.Flora.StressPhoto = optionalString(cmd, "stress-photo")
			gt.Fauna.BirdActivity, _ = cmd.Flags().GetString("bird-activity")
			gt.Fauna.BirdNotes, _ = cmd.Flags().GetString("bird-notes")
			gt.Fauna.NoiseLevel, _ = cmd.Flags().GetString("noise")

			return wire.WorkflowAdapter().GroundTruth(NewContext(), gt)
		},
	}

	cmd.Flags().String("veg-type", "", "Vegetation type")
	cmd.Flags().String("canopy-cover", "", "Canopy cover (%)")
	cmd.Flags().String("canopy-height", "", "Canopy height (m)")
	cmd.Flags().String("understory", "", "Understory density")
	cmd.Flags().Bool("stress", false, "Ecological stress observed")
	cmd.Flags().String("stress-note", "", "Describe the observed stress")
	cmd.Flags().String("stress-photo", "", "Photo reference of the observed stress")
	cmd.Flags().String("bird-activity", "", "Bird activity")
	cmd.Flags().String("bird-notes", "", "Bird notes")
	cmd.Flags().String("noise", "", "Background noise level")
	return cmd
}

func deployPhotosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photos",
		Short: "Attach photo references to the current site",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.WorkflowAdapter().Photos(NewContext(), models.Photos{
				Landscape:   optionalString(cmd, "landscape"),
				Canopy:      optionalString(cmd, "canopy"),
				Device:      optionalString(cmd, "device"),
				Disturbance: optionalString(cmd, "disturbance"),
			})
		},
	}

	cmd.Flags().String("landscape", "", "Landscape photo reference")
	cmd.Flags().String("canopy", "", "Canopy photo reference")
	cmd.Flags().String("device", "", "Mounted device photo reference")
	cmd.Flags().String("disturbance", "", "Disturbance photo reference")
	return cmd
}

func deployFinishSiteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish-site",
		Short: "Close the current site and move to the next arrival",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.WorkflowAdapter().FinishSite(NewContext())
		},
	}
}

func deployFinishDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish-day",
		Short: "Close the deployment day once every site is deployed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.WorkflowAdapter().FinishDay(NewContext())
		},
	}
}

func deploySummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the daily deployment summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.WorkflowAdapter().Summary(NewContext())
		},
	}
}
