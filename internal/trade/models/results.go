package models

// ResultStatus is the validation status of one query result.
type ResultStatus string

const (
	ResultComplete ResultStatus = "COMPLETE"
	ResultBlocked  ResultStatus = "BLOCKED"
)

// CatchCertificateQueryResult is the validation report row for one landing.
// LandingID links it to the case landing it describes.
type CatchCertificateQueryResult struct {
	DocumentNumber     string       `json:"documentNumber"`
	LandingID          string       `json:"landingId"`
	Status             ResultStatus `json:"status"`
	SpeciesCode        string       `json:"speciesCode"`
	SpeciesName        string       `json:"speciesName,omitempty"`
	ScientificName     string       `json:"scientificName,omitempty"`
	VesselName         string       `json:"vesselName,omitempty"`
	PLN                string       `json:"pln,omitempty"`
	RSSNumber          string       `json:"rssNumber,omitempty"`
	LicenceHolder      string       `json:"licenceHolder,omitempty"`
	FlagState          string       `json:"flagState,omitempty"`
	FaoArea            string       `json:"faoArea,omitempty"`
	DateLanded         string       `json:"dateLanded,omitempty"`
	LandedWeight       float64      `json:"landedWeight"`
	ExportWeight       float64      `json:"exportWeight"`
	IsLandingExists    bool         `json:"isLandingExists"`
	IsOverusedAllCerts bool         `json:"isOverusedAllCerts"`
	OverUsedInfo       []string     `json:"overUsedInfo,omitempty"`
}

// CatchCertificateType tells whether the referenced catch certificate was
// issued in the UK.
type CatchCertificateType string

const (
	CatchCertificateUK    CatchCertificateType = "uk"
	CatchCertificateNonUK CatchCertificateType = "non_uk"
)

// ProcessingStatementQueryResult is the validation report row for one catch
// on a processing statement.
type ProcessingStatementQueryResult struct {
	DocumentNumber         string               `json:"documentNumber"`
	CatchCertificateNumber string               `json:"catchCertificateNumber"`
	CatchCertificateType   CatchCertificateType `json:"catchCertificateType,omitempty"`
	IssuingCountry         string               `json:"issuingCountry,omitempty"`
	Status                 ResultStatus         `json:"status"`
	Species                string               `json:"species"`
	SpeciesCode            string               `json:"speciesCode,omitempty"`
	CommodityCode          string               `json:"commodityCode,omitempty"`
	WeightOnDoc            float64              `json:"weightOnDoc"`
	WeightOnCert           float64              `json:"weightOnCert"`
	WeightAfterProcessing  float64              `json:"weightAfterProcessing"`
	IsOverAllocated        bool                 `json:"isOverAllocated"`
	IsMismatch             bool                 `json:"isMismatch"`
	OverAllocatedByWeight  float64              `json:"overAllocatedByWeight,omitempty"`
	OverUsedInfo           []string             `json:"overUsedInfo,omitempty"`
	CatchCertificateDate   string               `json:"catchCertificateDate,omitempty"`
}

// StorageDocumentQueryResult is the validation report row for one product on
// a storage document.
type StorageDocumentQueryResult struct {
	DocumentNumber         string       `json:"documentNumber"`
	CatchCertificateNumber string       `json:"catchCertificateNumber"`
	Status                 ResultStatus `json:"status"`
	Species                string       `json:"species"`
	SpeciesCode            string       `json:"speciesCode,omitempty"`
	CommodityCode          string       `json:"commodityCode,omitempty"`
	WeightOnDoc            float64      `json:"weightOnDoc"`
	WeightOnCert           float64      `json:"weightOnCert"`
	IsOverAllocated        bool         `json:"isOverAllocated"`
	IsMismatch             bool         `json:"isMismatch"`
	OverUsedInfo           []string     `json:"overUsedInfo,omitempty"`
	DateOfUnloading        string       `json:"dateOfUnloading,omitempty"`
	PlaceOfUnloading       string       `json:"placeOfUnloading,omitempty"`
	TransportUnloadedFrom  string       `json:"transportUnloadedFrom,omitempty"`
	IssuingCountry         string       `json:"issuingCountry,omitempty"`
}
