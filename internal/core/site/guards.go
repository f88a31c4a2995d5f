package site

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/example/fieldkit/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// Closed value sets offered by the field forms.
var (
	Durations       = []string{"1", "3", "5"}
	VegetationTypes = []string{
		"Dense Forest",
		"Open Woodland",
		"Scrubland",
		"Grassland",
		"Wetland",
		"Plantation",
		"Agriculture",
		"Mixed",
	}
	WeatherOptions   = []string{"Clear", "Cloudy", "Light Rain", "Heavy Rain", "Other"}
	WindOptions      = []string{"Calm", "Light", "Moderate", "Strong"}
	BatteryLevels    = []string{"Full", "Moderate", "Low", "Depleted"}
	DeviceConditions = []string{"Dry", "Wet", "Damaged", "Missing"}
	NoiseLevels      = []string{"Silent", "Low", "Moderate", "High"}
)

var (
	startDatePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	startTimePattern = regexp.MustCompile(`^\d{2}\.\d{2}$`)
)

func allowed() GuardResult { return GuardResult{Allowed: true} }

func reject(reason string) GuardResult {
	return GuardResult{Allowed: false, Reason: reason}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// PreDeploymentChecklist is the equipment check done before leaving for the field.
type PreDeploymentChecklist struct {
	DevicesConfigured bool `json:"devicesConfigured"`
	BatteriesInserted bool `json:"batteriesInserted"`
	SDCardsFormatted  bool `json:"sdCardsFormatted"`
	DeviceLabeled     bool `json:"deviceLabeled"`
	GPSDownloaded     bool `json:"gpsDownloaded"`
	PhoneCharged      bool `json:"phoneCharged"`

	// Optional logistics.
	TeamReady    bool   `json:"teamReady"`
	VehicleReady bool   `json:"vehicleReady"`
	TravelTime   string `json:"travelTime"`
}

// ValidatePreDeployment evaluates the pre-deployment checklist.
// Rules:
// - All six equipment checks must be ticked
func ValidatePreDeployment(c PreDeploymentChecklist) GuardResult {
	mandatory := []bool{
		c.DevicesConfigured,
		c.BatteriesInserted,
		c.SDCardsFormatted,
		c.DeviceLabeled,
		c.GPSDownloaded,
		c.PhoneCharged,
	}
	if slices.Contains(mandatory, false) {
		return reject("All mandatory checks must be completed.")
	}
	return allowed()
}

// ValidateArrival evaluates the site arrival section.
// Rules:
// - GPS coordinates must be captured
// - An access issue needs a description
func ValidateArrival(a models.Arrival) GuardResult {
	if a.Coords == nil {
		return reject("Please confirm GPS before continuing.")
	}
	if a.AccessIssue && blank(a.IssueNote) {
		return reject("Please describe the access issue.")
	}
	return allowed()
}

// ValidateDeviceSetup evaluates the device setup section.
// Rules:
// - Device ID must be entered
// - Custom mode, batteries and SD card checks must all be ticked
// - Start date and time, when given, must use DD-MM-YYYY and HH.MM
// - A recording duration must be selected from Durations
func ValidateDeviceSetup(d models.DeviceSetup) GuardResult {
	if blank(d.DeviceID) {
		return reject("Enter Device ID / Serial.")
	}
	if !d.CustomMode || !d.BatteriesOK || !d.SDOK {
		return reject("Complete all device configuration checks.")
	}
	if d.StartDate != "" && !startDatePattern.MatchString(d.StartDate) {
		return reject("Invalid date. Use DD-MM-YYYY format.")
	}
	if d.StartTime != "" && !startTimePattern.MatchString(d.StartTime) {
		return reject("Invalid time. Use HH.MM (24-hour) format.")
	}
	if !slices.Contains(Durations, d.Duration) {
		return reject("Select recording duration.")
	}
	return allowed()
}

// ValidatePlacement evaluates the placement checklist.
// Rules:
// - Every placement rule must be confirmed
func ValidatePlacement(p models.Placement) GuardResult {
	checks := []bool{
		p.HeightOK,
		p.MicOut,
		p.TiltDown,
		p.AwayFromTrail,
		p.AwayFromWater,
		p.AwayFromRoad,
		p.SecureAttach,
		p.Waterproof,
	}
	if slices.Contains(checks, false) {
		return reject("Confirm all placement rules before proceeding.")
	}
	return allowed()
}

// ValidateDocumentation evaluates the deployment documentation section.
// Rules:
// - Coordinates, weather and wind are required
// - Recent rainfall must be answered
// - Rainfall needs a description only when it was reported
func ValidateDocumentation(d models.Documentation) GuardResult {
	if d.Coords == nil {
		return reject("Deployment location has not been captured.")
	}
	if !slices.Contains(WeatherOptions, d.Weather) {
		return reject("Select weather at deployment.")
	}
	if !slices.Contains(WindOptions, d.Wind) {
		return reject("Select wind speed.")
	}
	if d.RecentRain == nil {
		return reject("Answer whether there was recent rainfall.")
	}
	if *d.RecentRain && blank(d.RainNote) {
		return reject("Describe the recent rainfall.")
	}
	return allowed()
}

// ValidateGroundTruth evaluates the ground truth section.
// Rules:
// - Vegetation type must be selected from VegetationTypes
// - Observed ecological stress needs a note and a photo
func ValidateGroundTruth(g models.GroundTruth) GuardResult {
	if !slices.Contains(VegetationTypes, g.Flora.VegType) {
		return reject("Select vegetation type.")
	}
	if g.Flora.StressObserved {
		if blank(g.Flora.StressNote) {
			return reject("Describe observed stress.")
		}
		if g.Flora.StressPhoto == nil {
			return reject("A photo of the observed stress is required.")
		}
	}
	return allowed()
}

// ValidateDeviceStatus evaluates the recorder retrieval section.
// Rules:
// - Battery level and device condition must be selected
// - SD card removal must be confirmed
func ValidateDeviceStatus(d models.DeviceStatus) GuardResult {
	if !slices.Contains(BatteryLevels, d.Battery) {
		return reject("Select battery level.")
	}
	if !slices.Contains(DeviceConditions, d.Condition) {
		return reject("Select device condition.")
	}
	if !d.SDRemoved {
		return reject("Confirm the SD card was removed.")
	}
	return allowed()
}

// ValidateGroundTruthUpdate evaluates the retrieval ground truth update.
// Rules:
// - Vegetation change must be answered
// - Bird activity and noise level are required
func ValidateGroundTruthUpdate(u models.GroundTruthUpdate) GuardResult {
	if u.VegetationChanged == nil {
		return reject("Answer whether vegetation changed.")
	}
	if blank(u.BirdActivity) {
		return reject("Describe bird activity.")
	}
	if !slices.Contains(NoiseLevels, u.NoiseLevel) {
		return reject("Select noise level.")
	}
	return allowed()
}

// ValidateSection dispatches to the validator for the update's section.
// Sections without a policy (photos, retrieval arrival, time stamps) always pass.
func ValidateSection(u models.SectionUpdate) GuardResult {
	switch v := u.(type) {
	case models.ArrivalUpdate:
		return ValidateArrival(v.Arrival)
	case models.DeviceSetupUpdate:
		return ValidateDeviceSetup(v.DeviceSetup)
	case models.PlacementUpdate:
		return ValidatePlacement(v.Placement)
	case models.DocumentationUpdate:
		return ValidateDocumentation(v.Documentation)
	case models.GroundTruthSectionUpdate:
		return ValidateGroundTruth(v.GroundTruth)
	case models.DeviceStatusUpdate:
		return ValidateDeviceStatus(v.Status)
	case models.GroundTruthRevisionUpdate:
		return ValidateGroundTruthUpdate(v.Update)
	default:
		return allowed()
	}
}
