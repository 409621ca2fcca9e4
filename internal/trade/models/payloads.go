package models

import "fes/internal/document"

// TradeStatus is the top-level status of a trade payload.
type TradeStatus string

const (
	TradeComplete TradeStatus = "COMPLETE"
	TradeBlocked  TradeStatus = "BLOCKED"
	TradeVoid     TradeStatus = "VOID"
)

// ValidationStatus is the per-entry outcome on PS and SD payloads.
type ValidationStatus string

const (
	ValidationSuccess ValidationStatus = "Success"
	ValidationWeight  ValidationStatus = "Weight"
	ValidationOveruse ValidationStatus = "Overuse"
)

// TradeExporter is the exporter as published to the trade system.
type TradeExporter struct {
	ContactID   *string           `json:"contactId"`
	AccountID   *string           `json:"accountId"`
	FullName    string            `json:"fullName,omitempty"`
	CompanyName string            `json:"companyName,omitempty"`
	Address     *document.Address `json:"address,omitempty"`
}

// TradeHeader is shared by every trade payload. It has no
// lineage or risk fields.
type TradeHeader struct {
	DocumentNumber            string            `json:"documentNumber"`
	DocumentURL               string            `json:"documentUrl,omitempty"`
	DocumentDate              string            `json:"documentDate,omitempty"`
	CaseType1                 CaseType1         `json:"caseType1"`
	CaseType2                 CaseOutcome       `json:"caseType2"`
	NumberOfFailedSubmissions int               `json:"numberOfFailedSubmissions"`
	Exporter                  TradeExporter     `json:"exporter"`
	ExportedTo                *document.Country `json:"exportedTo,omitempty"`
	DA                        string            `json:"da,omitempty"`
	CorrelationID             string            `json:"_correlationId"`
	RequestedByAdmin          bool              `json:"requestedByAdmin"`
}

// TradePayload is implemented by the three payload kinds.
type TradePayload interface {
	Header() *TradeHeader
	TradeStatus() TradeStatus
}

func (h *TradeHeader) Header() *TradeHeader { return h }

// TradeLanding is a landing enriched with validation detail.
type TradeLanding struct {
	ID                       string  `json:"id"`
	Status                   string  `json:"status"`
	SpeciesCode              string  `json:"speciesCode"`
	SpeciesName              string  `json:"speciesName,omitempty"`
	ScientificName           string  `json:"scientificName,omitempty"`
	CommodityCode            string  `json:"commodityCode,omitempty"`
	State                    string  `json:"state,omitempty"`
	Presentation             string  `json:"presentation,omitempty"`
	VesselName               string  `json:"vesselName,omitempty"`
	PLN                      string  `json:"pln,omitempty"`
	RSSNumber                string  `json:"rssNumber,omitempty"`
	LicenceHolder            string  `json:"licenceHolder,omitempty"`
	FlagState                string  `json:"flagState,omitempty"`
	FaoArea                  string  `json:"faoArea,omitempty"`
	DateLanded               string  `json:"dateLanded,omitempty"`
	Weight                   float64 `json:"weight"`
	LandedWeight             float64 `json:"landedWeight"`
	IsLandingExists          bool    `json:"isLandingExists"`
	RawLandingsURL           string  `json:"rawLandingsUrl,omitempty"`
	SalesNoteURL             string  `json:"salesNoteUrl,omitempty"`
	NumberOfTotalSubmissions int     `json:"numberOfTotalSubmissions"`
	VesselOverriddenByAdmin  bool    `json:"vesselOverriddenByAdmin"`
	DataEverExpected         bool    `json:"dataEverExpected"`
}

// CatchCertificatePayload is the trade payload of a catch certificate.
type CatchCertificatePayload struct {
	TradeHeader
	IsDirectLanding     bool           `json:"isDirectLanding"`
	MultiVesselSchedule bool           `json:"multiVesselSchedule"`
	CertStatus          TradeStatus    `json:"certStatus"`
	Landings            []TradeLanding `json:"landings"`
}

func (p *CatchCertificatePayload) TradeStatus() TradeStatus { return p.CertStatus }

// TradeCatch is one catch on a processing statement payload.
type TradeCatch struct {
	ForeignCatchCertificateNumber string           `json:"foreignCatchCertificateNumber"`
	Species                       string           `json:"species"`
	SpeciesCode                   string           `json:"speciesCode,omitempty"`
	CommodityCode                 string           `json:"commodityCode,omitempty"`
	ImportedWeight                float64          `json:"importedWeight"`
	UsedWeightAgainstCertificate  float64          `json:"usedWeightAgainstCertificate"`
	ProcessedWeight               float64          `json:"processedWeight"`
	CountryOfOrigin               string           `json:"countryOfOrigin,omitempty"`
	CatchCertificateDate          string           `json:"catchCertificateDate,omitempty"`
	ValidationStatus              ValidationStatus `json:"validation"`
	OverAllocatedByWeight         float64          `json:"overAllocatedByWeight,omitempty"`
	OveruseReferences             []string         `json:"overuseReferences,omitempty"`
}

// ProcessingStatementPayload is the trade payload of a processing statement.
type ProcessingStatementPayload struct {
	TradeHeader
	PlantName               string       `json:"plantName,omitempty"`
	PlantApprovalNumber     string       `json:"plantApprovalNumber,omitempty"`
	HealthCertificateNumber string       `json:"healthCertificateNumber,omitempty"`
	HealthCertificateDate   string       `json:"healthCertificateDate,omitempty"`
	DateOfAcceptance        string       `json:"dateOfAcceptance,omitempty"`
	Status                  TradeStatus  `json:"status"`
	Catches                 []TradeCatch `json:"catches"`
}

func (p *ProcessingStatementPayload) TradeStatus() TradeStatus { return p.Status }

// TradeProduct is one product on a storage document payload.
type TradeProduct struct {
	ForeignCatchCertificateNumber string           `json:"foreignCatchCertificateNumber"`
	Species                       string           `json:"species"`
	SpeciesCode                   string           `json:"speciesCode,omitempty"`
	CommodityCode                 string           `json:"commodityCode,omitempty"`
	ImportedWeight                float64          `json:"importedWeight"`
	ExportedWeight                float64          `json:"exportedWeight"`
	DateOfUnloading               string           `json:"dateOfUnloading,omitempty"`
	PlaceOfUnloading              string           `json:"placeOfUnloading,omitempty"`
	TransportUnloadedFrom         string           `json:"transportUnloadedFrom,omitempty"`
	CountryOfOrigin               string           `json:"countryOfOrigin,omitempty"`
	ValidationStatus              ValidationStatus `json:"validation"`
	OveruseReferences             []string         `json:"overuseReferences,omitempty"`
}

// StorageDocumentPayload is the trade payload of a storage document.
type StorageDocumentPayload struct {
	TradeHeader
	StorageFacilities []string       `json:"storageFacilities,omitempty"`
	TransportMode     string         `json:"transportMode,omitempty"`
	DeparturePlace    string         `json:"departurePlace,omitempty"`
	ExportDate        string         `json:"exportDate"`
	Status            TradeStatus    `json:"status"`
	Products          []TradeProduct `json:"products"`
}

func (p *StorageDocumentPayload) TradeStatus() TradeStatus { return p.Status }
