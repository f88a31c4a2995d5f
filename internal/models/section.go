package models

// Section names a mergeable part of a site record.
type Section string

const (
	SectionArrival           Section = "arrival"
	SectionDeviceSetup       Section = "deviceSetup"
	SectionPlacement         Section = "placement"
	SectionDocumentation     Section = "documentation"
	SectionGroundTruth       Section = "groundTruth"
	SectionPhotos            Section = "photos"
	SectionRetrievalArrival  Section = "retrieval.arrival"
	SectionDeviceStatus      Section = "retrieval.deviceStatus"
	SectionGroundTruthUpdate Section = "retrieval.groundTruthUpdate"
	SectionTimeRetrieved     Section = "retrieval.timeRetrieved"
)

// sections lists every section in record order.
var sections = []Section{
	SectionArrival, SectionDeviceSetup, SectionPlacement, SectionDocumentation,
	SectionGroundTruth, SectionPhotos, SectionRetrievalArrival, SectionDeviceStatus,
	SectionGroundTruthUpdate, SectionTimeRetrieved,
}

// ParseSection returns the section with the given name.
func ParseSection(name string) (Section, bool) {
	for _, s := range sections {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// IsRetrieval reports whether the section lives under the retrieval object.
func (s Section) IsRetrieval() bool {
	switch s {
	case SectionRetrievalArrival, SectionDeviceStatus, SectionGroundTruthUpdate, SectionTimeRetrieved:
		return true
	default:
		return false
	}
}

// SectionUpdate is a closed set of commands that each replace exactly one
// section of a site record. Sibling sections are never touched.
type SectionUpdate interface {
	Section() Section
	applyTo(site *Site)
}

// Apply merges the update into the record.
func (s *Site) Apply(u SectionUpdate) {
	u.applyTo(s)
}

func (s *Site) ensureRetrieval() *Retrieval {
	if s.Retrieval == nil {
		s.Retrieval = &Retrieval{}
	}
	return s.Retrieval
}

// ArrivalUpdate sets the arrival section.
type ArrivalUpdate struct{ Arrival Arrival }

func (ArrivalUpdate) Section() Section { return SectionArrival }
func (u ArrivalUpdate) applyTo(s *Site) {
	v := u.Arrival
	s.Arrival = &v
}

// DeviceSetupUpdate sets the device setup section.
type DeviceSetupUpdate struct{ DeviceSetup DeviceSetup }

func (DeviceSetupUpdate) Section() Section { return SectionDeviceSetup }
func (u DeviceSetupUpdate) applyTo(s *Site) {
	v := u.DeviceSetup
	s.DeviceSetup = &v
}

// PlacementUpdate sets the placement section.
type PlacementUpdate struct{ Placement Placement }

func (PlacementUpdate) Section() Section { return SectionPlacement }
func (u PlacementUpdate) applyTo(s *Site) {
	v := u.Placement
	s.Placement = &v
}

// DocumentationUpdate sets the documentation section.
type DocumentationUpdate struct{ Documentation Documentation }

func (DocumentationUpdate) Section() Section { return SectionDocumentation }
func (u DocumentationUpdate) applyTo(s *Site) {
	v := u.Documentation
	s.Documentation = &v
}

// GroundTruthSectionUpdate sets the deployment ground truth section.
type GroundTruthSectionUpdate struct{ GroundTruth GroundTruth }

func (GroundTruthSectionUpdate) Section() Section { return SectionGroundTruth }
func (u GroundTruthSectionUpdate) applyTo(s *Site) {
	v := u.GroundTruth
	s.GroundTruth = &v
}

// PhotosUpdate sets the photo references section.
type PhotosUpdate struct{ Photos Photos }

func (PhotosUpdate) Section() Section { return SectionPhotos }
func (u PhotosUpdate) applyTo(s *Site) {
	v := u.Photos
	s.Photos = &v
}

// RetrievalArrivalUpdate sets retrieval.arrival, keeping other retrieval fields.
type RetrievalArrivalUpdate struct{ Arrival RetrievalArrival }

func (RetrievalArrivalUpdate) Section() Section { return SectionRetrievalArrival }
func (u RetrievalArrivalUpdate) applyTo(s *Site) {
	v := u.Arrival
	s.ensureRetrieval().Arrival = &v
}

// DeviceStatusUpdate sets retrieval.deviceStatus.
type DeviceStatusUpdate struct{ Status DeviceStatus }

func (DeviceStatusUpdate) Section() Section { return SectionDeviceStatus }
func (u DeviceStatusUpdate) applyTo(s *Site) {
	v := u.Status
	s.ensureRetrieval().DeviceStatus = &v
}

// GroundTruthRevisionUpdate sets retrieval.groundTruthUpdate.
type GroundTruthRevisionUpdate struct{ Update GroundTruthUpdate }

func (GroundTruthRevisionUpdate) Section() Section { return SectionGroundTruthUpdate }
func (u GroundTruthRevisionUpdate) applyTo(s *Site) {
	v := u.Update
	s.ensureRetrieval().GroundTruthUpdate = &v
}

// TimeRetrievedUpdate stamps retrieval.timeRetrieved.
type TimeRetrievedUpdate struct{ Time string }

func (TimeRetrievedUpdate) Section() Section { return SectionTimeRetrieved }
func (u TimeRetrievedUpdate) applyTo(s *Site) {
	s.ensureRetrieval().TimeRetrieved = u.Time
}
