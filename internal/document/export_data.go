package document

import (
	"encoding/json"
	"fmt"
)

// ExportData is the kind-specific payload of a document. The concrete types
// below are the only implementations.
type ExportData interface {
	Kind() Kind
}

// Address is a postal address as captured on submission.
type Address struct {
	BuildingNumber  string `json:"buildingNumber,omitempty"`
	SubBuildingName string `json:"subBuildingName,omitempty"`
	BuildingName    string `json:"buildingName,omitempty"`
	StreetName      string `json:"streetName,omitempty"`
	TownCity        string `json:"townCity,omitempty"`
	County          string `json:"county,omitempty"`
	Country         string `json:"country,omitempty"`
	Postcode        string `json:"postcode,omitempty"`
}

// Country identifies a destination country.
type Country struct {
	OfficialCountryName string `json:"officialCountryName"`
	IsoCodeAlpha2       string `json:"isoCodeAlpha2,omitempty"`
	IsoCodeAlpha3       string `json:"isoCodeAlpha3,omitempty"`
}

// CatchLine is one landing declared against a product.
type CatchLine struct {
	ID            string  `json:"id"`
	Vessel        string  `json:"vessel"`
	PLN           string  `json:"pln"`
	LicenceNumber string  `json:"licenceNumber,omitempty"`
	Date          string  `json:"date"`
	FaoArea       string  `json:"faoArea,omitempty"`
	Weight        float64 `json:"weight"`
}

// Product is a species/state/presentation combination on a catch certificate.
type Product struct {
	SpeciesCode    string      `json:"speciesCode"`
	Species        string      `json:"species"`
	ScientificName string      `json:"scientificName,omitempty"`
	State          string      `json:"state,omitempty"`
	Presentation   string      `json:"presentation,omitempty"`
	CommodityCode  string      `json:"commodityCode,omitempty"`
	CaughtBy       []CatchLine `json:"caughtBy"`
}

// CatchCertificateData is the export data of a catch certificate.
type CatchCertificateData struct {
	Products   []Product `json:"products"`
	ExportedTo *Country  `json:"exportedTo,omitempty"`
}

func (CatchCertificateData) Kind() Kind { return KindCatchCertificate }

// ProcessingStatementData is the export data of a processing statement.
type ProcessingStatementData struct {
	ConsignmentDescription  string   `json:"consignmentDescription,omitempty"`
	HealthCertificateNumber string   `json:"healthCertificateNumber,omitempty"`
	HealthCertificateDate   string   `json:"healthCertificateDate,omitempty"`
	PlantName               string   `json:"plantName,omitempty"`
	PlantApprovalNumber     string   `json:"plantApprovalNumber,omitempty"`
	PlantAddress            *Address `json:"plantAddress,omitempty"`
	DateOfAcceptance        string   `json:"dateOfAcceptance,omitempty"`
	ExportedTo              *Country `json:"exportedTo,omitempty"`
}

func (ProcessingStatementData) Kind() Kind { return KindProcessingStatement }

// StorageFacility is a cold store that held the product.
type StorageFacility struct {
	Name    string   `json:"facilityName"`
	Address *Address `json:"facilityAddress,omitempty"`
}

// Transportation describes the onward export leg.
type Transportation struct {
	Vehicle    string `json:"vehicle"`
	ExportDate string `json:"exportDate,omitempty"`
	Departure  string `json:"departurePlace,omitempty"`
}

// StorageDocumentData is the export data of a storage document.
type StorageDocumentData struct {
	StorageFacilities []StorageFacility `json:"storageFacilities"`
	Transportation    *Transportation   `json:"transportation,omitempty"`
	ExportedTo        *Country          `json:"exportedTo,omitempty"`
}

func (StorageDocumentData) Kind() Kind { return KindStorageDocument }

// DecodeExportData decodes raw export data for the given kind.
// Empty input yields nil export data.
func DecodeExportData(kind Kind, raw json.RawMessage) (ExportData, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	switch kind {
	case KindCatchCertificate:
		var data CatchCertificateData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode catch certificate data: %w", err)
		}
		return data, nil
	case KindProcessingStatement:
		var data ProcessingStatementData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode processing statement data: %w", err)
		}
		return data, nil
	case KindStorageDocument:
		var data StorageDocumentData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode storage document data: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
}
