package models

// Coords is a GPS fix as produced by the location collaborator.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	Acc float64 `json:"acc"`
}

// Site is the single source of truth for one deployment location.
// Field names match the persisted sites_data layout.
type Site struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`

	Arrival       *Arrival       `json:"arrival"`
	DeviceSetup   *DeviceSetup   `json:"deviceSetup"`
	Placement     *Placement     `json:"placement"`
	Documentation *Documentation `json:"documentation"`
	GroundTruth   *GroundTruth   `json:"groundTruth"`
	Photos        *Photos        `json:"photos"`

	Retrieval *Retrieval `json:"retrieval"`
}

// Arrival is captured when field staff reach the site.
type Arrival struct {
	Coords      *Coords `json:"coords"`
	Time        string  `json:"time"`
	AccessIssue bool    `json:"accessIssue"`
	IssueNote   string  `json:"issueNote"`
}

// DeviceSetup records recorder configuration checks.
type DeviceSetup struct {
	DeviceID          string `json:"deviceId"`
	CustomMode        bool   `json:"customMode"`
	BatteriesOK       bool   `json:"batteriesOk"`
	SDOK              bool   `json:"sdOk"`
	StartDate         string `json:"startDate,omitempty"` // DD-MM-YYYY
	StartTime         string `json:"startTime,omitempty"` // HH.MM
	Duration          string `json:"duration"`            // days
	ScheduleConfirmed bool   `json:"scheduleConfirmed"`
}

// Placement is the physical mounting checklist.
type Placement struct {
	HeightOK      bool `json:"heightOk"`
	MicOut        bool `json:"micOut"`
	TiltDown      bool `json:"tiltDown"`
	AwayFromTrail bool `json:"awayFromTrail"`
	AwayFromWater bool `json:"awayFromWater"`
	AwayFromRoad  bool `json:"awayFromRoad"`
	SecureAttach  bool `json:"secureAttach"`
	Waterproof    bool `json:"waterproof"`
}

// Documentation captures conditions at the moment of deployment.
type Documentation struct {
	Coords       *Coords `json:"coords"`
	TimeDeployed string  `json:"timeDeployed"`
	Weather      string  `json:"weather"`
	Wind         string  `json:"wind"`
	RecentRain   *bool   `json:"recentRain"`
	RainNote     string  `json:"rainNote"`
	Disturbance  string  `json:"disturbance"`
	Notes        string  `json:"notes"`
}

// GroundTruth is the final deployment section.
type GroundTruth struct {
	Flora Flora `json:"flora"`
	Fauna Fauna `json:"fauna"`
}

// Flora observations. StressPhoto is an opaque photo reference.
type Flora struct {
	VegType        string  `json:"vegType"`
	CanopyCover    string  `json:"canopyCover"`
	CanopyHeight   string  `json:"canopyHeight"`
	Understory     string  `json:"understory"`
	StressObserved bool    `json:"stressObserved"`
	StressNote     string  `json:"stressNote"`
	StressPhoto    *string `json:"stressPhoto"`
}

// Fauna observations.
type Fauna struct {
	BirdActivity string `json:"birdActivity"`
	BirdNotes    string `json:"birdNotes"`
	NoiseLevel   string `json:"noiseLevel"`
}

// Photos holds opaque photo references from the camera collaborator.
type Photos struct {
	Landscape   *string `json:"landscape"`
	Canopy      *string `json:"canopy"`
	Device      *string `json:"device"`
	Disturbance *string `json:"disturbance"`
}

// Retrieval is nil until a retrieval visit starts.
type Retrieval struct {
	Arrival           *RetrievalArrival  `json:"arrival,omitempty"`
	DeviceStatus      *DeviceStatus      `json:"deviceStatus,omitempty"`
	GroundTruthUpdate *GroundTruthUpdate `json:"groundTruthUpdate,omitempty"`
	TimeRetrieved     string             `json:"timeRetrieved,omitempty"`
	Completed         bool               `json:"completed"`
}

// RetrievalArrival keeps the deployment coordinates as the reference point.
type RetrievalArrival struct {
	Time            string  `json:"time"`
	ReferenceCoords *Coords `json:"referenceCoords"`
}

// DeviceStatus is the recorder condition found at retrieval.
type DeviceStatus struct {
	Battery   string `json:"battery"`
	Condition string `json:"condition"`
	SDRemoved bool   `json:"sdRemoved"`
	Note      string `json:"note"`
}

// GroundTruthUpdate records changes observed since deployment.
type GroundTruthUpdate struct {
	VegetationChanged *bool   `json:"vegetationChanged"`
	Notes             string  `json:"notes"`
	BirdActivity      string  `json:"birdActivity"`
	NoiseLevel        string  `json:"noiseLevel"`
	Photo             *string `json:"photo"`
}

// NewSite returns an untouched record for the given id.
func NewSite(id string) Site {
	return Site{ID: id}
}

// DefaultSites builds the initial record set, preserving id order.
func DefaultSites(ids []string) []Site {
	sites := make([]Site, 0, len(ids))
	for _, id := range ids {
		sites = append(sites, NewSite(id))
	}
	return sites
}

// RetrievalCompleted reports whether retrieval has been closed for the site.
func (s Site) RetrievalCompleted() bool {
	return s.Retrieval != nil && s.Retrieval.Completed
}
