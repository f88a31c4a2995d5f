package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/example/fieldkit/internal/models"
)

// SeedFixtures populates the key-value table with a mid-campaign fixture:
// every site but the last is fully deployed and the cursor waits at site arrival.
// Existing values are overwritten.
func SeedFixtures(database *sql.DB, siteIDs []string) error {
	if len(siteIDs) == 0 {
		return fmt.Errorf("seed requires at least one site id")
	}

	sites := models.DefaultSites(siteIDs)
	for i := range sites[:len(sites)-1] {
		seedDeployment(&sites[i], i)
	}

	data, err := json.Marshal(sites)
	if err != nil {
		return fmt.Errorf("failed to marshal fixture sites: %w", err)
	}

	values := []struct{ key, value string }{
		{"sites_data", string(data)},
		{"currentStep", "2"},
		{"dailyCompletedCount", strconv.Itoa(len(sites) - 1)},
	}
	for _, v := range values {
		if _, err := database.Exec(
			`INSERT INTO kv (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			v.key, v.value,
		); err != nil {
			return fmt.Errorf("seed %s: %w", v.key, err)
		}
	}

	return nil
}

func seedDeployment(s *models.Site, n int) {
	no := false
	at := &models.Coords{Lat: -1.2921 + float64(n)*0.001, Lng: 36.8219 + float64(n)*0.001, Acc: 4}

	s.Apply(models.ArrivalUpdate{Arrival: models.Arrival{Coords: at, Time: "07:30"}})
	s.Apply(models.DeviceSetupUpdate{DeviceSetup: models.DeviceSetup{
		DeviceID:          fmt.Sprintf("AM-%03d", n+1),
		CustomMode:        true,
		BatteriesOK:       true,
		SDOK:              true,
		Duration:          "3",
		ScheduleConfirmed: true,
	}})
	s.Apply(models.PlacementUpdate{Placement: models.Placement{
		HeightOK: true, MicOut: true, TiltDown: true, AwayFromTrail: true,
		AwayFromWater: true, AwayFromRoad: true, SecureAttach: true, Waterproof: true,
	}})
	s.Apply(models.DocumentationUpdate{Documentation: models.Documentation{
		Coords: at, TimeDeployed: "08:05", Weather: "Clear", Wind: "Calm", RecentRain: &no,
	}})
	s.Apply(models.GroundTruthSectionUpdate{GroundTruth: models.GroundTruth{
		Flora: models.Flora{VegType: "Open Woodland", CanopyCover: "40"},
		Fauna: models.Fauna{BirdActivity: "Moderate", NoiseLevel: "Low"},
	}})
	s.Completed = true
}
