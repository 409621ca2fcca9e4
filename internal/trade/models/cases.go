// Package models holds the case-management records, validation query results
// and trade payloads exchanged with the downstream trade-reporting system.
package models

import "fes/internal/document"

// CaseType1 identifies the document family on a case record.
type CaseType1 string

const (
	CaseTypeCatchCertificate    CaseType1 = "CC"
	CaseTypeProcessingStatement CaseType1 = "PS"
	CaseTypeStorageDocument     CaseType1 = "SD"
)

// CaseOutcome is the lifecycle outcome tag carried in caseType2.
type CaseOutcome string

const (
	OutcomeVoidByExporter CaseOutcome = "Void by an Exporter"
	OutcomeVoidByAdmin    CaseOutcome = "Void by SMO/PMO"
	OutcomePending        CaseOutcome = "Pending Landing Data"
	OutcomeSuccess        CaseOutcome = "Real Time Validation - Successful"
	OutcomeOveruse        CaseOutcome = "Real Time Validation - Overuse Failure"
	OutcomeNoLandingData  CaseOutcome = "Real Time Validation - No Landing Data"
)

// Exporter identifies who submitted the document. ContactID and AccountID map
// to the user and organisation of the outbound message.
type Exporter struct {
	ContactID   *string           `json:"contactId"`
	AccountID   *string           `json:"accountId"`
	FullName    string            `json:"fullName,omitempty"`
	CompanyName string            `json:"companyName,omitempty"`
	Address     *document.Address `json:"address,omitempty"`
}

// Lineage records how a document was derived from an earlier one. It is
// internal to case management and never part of a trade payload.
type Lineage struct {
	ClonedFrom         *string `json:"clonedFrom,omitempty"`
	LandingsCloned     *bool   `json:"landingsCloned,omitempty"`
	ParentDocumentVoid *bool   `json:"parentDocumentVoid,omitempty"`
}

// CaseHeader is shared by every case record kind.
type CaseHeader struct {
	DocumentNumber            string            `json:"documentNumber"`
	DocumentURL               string            `json:"documentUrl,omitempty"`
	DocumentDate              string            `json:"documentDate,omitempty"`
	CaseType1                 CaseType1         `json:"caseType1"`
	CaseType2                 CaseOutcome       `json:"caseType2"`
	NumberOfFailedSubmissions int               `json:"numberOfFailedSubmissions"`
	Exporter                  Exporter          `json:"exporter"`
	ExportedTo                *document.Country `json:"exportedTo,omitempty"`
	DA                        string            `json:"da,omitempty"`
	CorrelationID             string            `json:"_correlationId"`
	RequestedByAdmin          bool              `json:"requestedByAdmin"`
	Lineage
}

// CaseRecord is implemented by the three case record kinds.
type CaseRecord interface {
	Header() *CaseHeader
}

func (h *CaseHeader) Header() *CaseHeader { return h }

// Risking is the case-management risk assessment of a landing.
type Risking struct {
	Vessel               string `json:"vessel,omitempty"`
	Species              string `json:"species,omitempty"`
	Exporter             string `json:"exporter,omitempty"`
	IsSpeciesRiskEnabled bool   `json:"isSpeciesRiskEnabled"`
	OverallScore         string `json:"overallScore,omitempty"`
	HighOrLowRisk        string `json:"highOrLowRisk,omitempty"`
}

// CaseLanding is one landing on a catch certificate case.
type CaseLanding struct {
	ID                       string   `json:"id"`
	Status                   string   `json:"status"`
	SpeciesCode              string   `json:"speciesCode"`
	CommodityCode            string   `json:"commodityCode,omitempty"`
	State                    string   `json:"state,omitempty"`
	Presentation             string   `json:"presentation,omitempty"`
	VesselName               string   `json:"vesselName,omitempty"`
	PLN                      string   `json:"pln,omitempty"`
	Date                     string   `json:"date,omitempty"`
	Weight                   float64  `json:"weight"`
	NumberOfTotalSubmissions int      `json:"numberOfTotalSubmissions"`
	VesselOverriddenByAdmin  bool     `json:"vesselOverriddenByAdmin"`
	DataEverExpected         bool     `json:"dataEverExpected"`
	Risking                  *Risking `json:"risking,omitempty"`
	OutcomeAtSubmission      string   `json:"outcomeAtSubmission,omitempty"`
}

// CatchCertificateCase is the case record of a catch certificate.
type CatchCertificateCase struct {
	CaseHeader
	IsDirectLanding bool          `json:"isDirectLanding"`
	Landings        []CaseLanding `json:"landings"`
}

// ProcessingStatementCase is the case record of a processing statement.
type ProcessingStatementCase struct {
	CaseHeader
	PlantName string `json:"plantName,omitempty"`
}

// StorageDocumentCase is the case record of a storage document.
type StorageDocumentCase struct {
	CaseHeader
}

// CaseTypeFor maps a document kind to its case type.
func CaseTypeFor(kind document.Kind) CaseType1 {
	switch kind {
	case document.KindCatchCertificate:
		return CaseTypeCatchCertificate
	case document.KindProcessingStatement:
		return CaseTypeProcessingStatement
	default:
		return CaseTypeStorageDocument
	}
}
