package transform

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fes/internal/document"
	"fes/internal/trade/models"
)

// Justification for unit tests: the transformer is the wire contract with the
// trade system. Status derivation, field stripping, multi-vessel detection and
// date handling are exercised directly because a schema check alone would
// accept many wrong mappings.

type TransformSuite struct {
	suite.Suite
	now         time.Time
	transformer *Transformer
}

func TestTransformSuite(t *testing.T) {
	suite.Run(t, new(TransformSuite))
}

func (s *TransformSuite) SetupTest() {
	s.now = time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC)
	s.transformer = New("https://reference.example.com/", WithClock(func() time.Time { return s.now }))
}

func ptr[T any](v T) *T { return &v }

func catchCase() *models.CatchCertificateCase {
	return &models.CatchCertificateCase{
		CaseHeader: models.CaseHeader{
			DocumentNumber: "GBR-2024-CC-0E42C2DA5",
			CaseType1:      models.CaseTypeCatchCertificate,
			CaseType2:      models.OutcomeSuccess,
			Exporter:       models.Exporter{ContactID: ptr("contact-1"), AccountID: ptr("account-1"), FullName: "Ivina Fish"},
			CorrelationID:  "corr-1",
			DA:             "England",
			Lineage: models.Lineage{
				ClonedFrom:         ptr("GBR-2023-CC-1"),
				LandingsCloned:     ptr(true),
				ParentDocumentVoid: ptr(false),
			},
		},
		Landings: []models.CaseLanding{{
			ID:                  "GBR-2024-CC-0E42C2DA5-1",
			Status:              "Validation Success",
			SpeciesCode:         "COD",
			VesselName:          "WIRON 5",
			PLN:                 "H1100",
			Date:                "01/06/2024",
			Weight:              100,
			Risking:             &models.Risking{OverallScore: "1.0", HighOrLowRisk: "Low"},
			OutcomeAtSubmission: "Success",
		}},
	}
}

func catchDocument(lines ...document.CatchLine) *document.Document {
	return &document.Document{
		DocumentNumber: "GBR-2024-CC-0E42C2DA5",
		Kind:           document.KindCatchCertificate,
		Fields: document.CatchCertificateData{
			Products: []document.Product{{SpeciesCode: "COD", CaughtBy: lines}},
		},
	}
}

func line(vessel, pln string) document.CatchLine {
	return document.CatchLine{Vessel: vessel, PLN: pln, LicenceNumber: "L-" + pln, Weight: 10}
}

func keysOf(s *TransformSuite, v any) map[string]any {
	raw, err := json.Marshal(v)
	s.Require().NoError(err)
	var out map[string]any
	s.Require().NoError(json.Unmarshal(raw, &out))
	return out
}

// =============================================================================
// Status derivation
// =============================================================================

func (s *TransformSuite) TestDeriveStatus() {
	statusOf := func(r models.CatchCertificateQueryResult) models.ResultStatus { return r.Status }

	s.Equal(models.TradeVoid, DeriveStatus(nil, statusOf))
	s.Equal(models.TradeComplete, DeriveStatus([]models.CatchCertificateQueryResult{}, statusOf))
	s.Equal(models.TradeComplete, DeriveStatus([]models.CatchCertificateQueryResult{{Status: models.ResultComplete}}, statusOf))
	s.Equal(models.TradeBlocked, DeriveStatus([]models.CatchCertificateQueryResult{
		{Status: models.ResultComplete},
		{Status: models.ResultBlocked},
	}, statusOf))
}

// =============================================================================
// Catch certificate
// =============================================================================

func (s *TransformSuite) TestCatchCertificateNullResultsIsVoid() {
	payload := s.transformer.CatchCertificate(catchDocument(line("A", "1")), catchCase(), nil)

	s.Equal(models.TradeVoid, payload.CertStatus)
	s.Nil(payload.Landings)
	keys := keysOf(s, payload)
	s.Contains(keys, "landings")
	s.Nil(keys["landings"])
}

func (s *TransformSuite) TestCatchCertificateEnrichesLandings() {
	results := []models.CatchCertificateQueryResult{{
		LandingID:       "GBR-2024-CC-0E42C2DA5-1",
		Status:          models.ResultComplete,
		SpeciesName:     "Atlantic cod",
		ScientificName:  "Gadus morhua",
		RSSNumber:       "C20514",
		FlagState:       "GBR",
		FaoArea:         "FAO27",
		DateLanded:      "2024-06-01",
		LandedWeight:    250,
		IsLandingExists: true,
	}}

	payload := s.transformer.CatchCertificate(catchDocument(line("A", "1")), catchCase(), results)

	s.Equal(models.TradeComplete, payload.CertStatus)
	s.Require().Len(payload.Landings, 1)
	l := payload.Landings[0]
	s.Equal("Atlantic cod", l.SpeciesName)
	s.Equal("Gadus morhua", l.ScientificName)
	s.Equal("WIRON 5", l.VesselName)
	s.Equal("2024-06-01", l.DateLanded)
	s.Equal(100.0, l.Weight)
	s.Equal(250.0, l.LandedWeight)
	s.Equal("https://reference.example.com/reference/api/v1/extendedData/rawLandings?dateLanded=2024-06-01&rssNumber=C20514", l.RawLandingsURL)
	s.Equal("https://reference.example.com/reference/api/v1/extendedData/salesNotes?dateLanded=2024-06-01&rssNumber=C20514", l.SalesNoteURL)
}

func (s *TransformSuite) TestCatchCertificateUnmatchedLandingKeepsCaseData() {
	results := []models.CatchCertificateQueryResult{{LandingID: "other", Status: models.ResultBlocked}}

	payload := s.transformer.CatchCertificate(catchDocument(line("A", "1")), catchCase(), results)

	s.Equal(models.TradeBlocked, payload.CertStatus)
	s.Require().Len(payload.Landings, 1)
	s.Equal("2024-06-01", payload.Landings[0].DateLanded)
	s.Empty(payload.Landings[0].RawLandingsURL)
	s.Empty(payload.Landings[0].SalesNoteURL)
}

func (s *TransformSuite) TestCatchCertificateNeverCarriesInternalFields() {
	for name, results := range map[string][]models.CatchCertificateQueryResult{
		"void":     nil,
		"complete": {{LandingID: "GBR-2024-CC-0E42C2DA5-1", Status: models.ResultComplete}},
	} {
		s.Run(name, func() {
			keys := keysOf(s, s.transformer.CatchCertificate(catchDocument(), catchCase(), results))
			for _, banned := range []string{"clonedFrom", "landingsCloned", "parentDocumentVoid"} {
				s.NotContains(keys, banned)
			}
			if landings, ok := keys["landings"].([]any); ok {
				for _, l := range landings {
					s.NotContains(l, "risking")
					s.NotContains(l, "outcomeAtSubmission")
				}
			}
		})
	}
}

func (s *TransformSuite) TestMultiVesselSchedule() {
	sevenLines := make([]document.CatchLine, 7)
	for i := range sevenLines {
		sevenLines[i] = line("A", "1")
	}
	sixLines := sevenLines[:6]

	cases := []struct {
		name     string
		lines    []document.CatchLine
		expected bool
	}{
		{"one vessel one line", []document.CatchLine{line("A", "1")}, false},
		{"one vessel six lines", sixLines, false},
		{"one vessel seven lines", sevenLines, true},
		{"two vessels one line each", []document.CatchLine{line("A", "1"), line("B", "2")}, true},
		{"same name different pln", []document.CatchLine{line("A", "1"), line("A", "2")}, true},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			payload := s.transformer.CatchCertificate(catchDocument(tc.lines...), catchCase(), nil)
			s.Equal(tc.expected, payload.MultiVesselSchedule)
		})
	}

	s.Run("products are combined", func() {
		doc := &document.Document{Fields: document.CatchCertificateData{Products: []document.Product{
			{CaughtBy: []document.CatchLine{line("A", "1")}},
			{CaughtBy: []document.CatchLine{line("B", "2")}},
		}}}
		s.True(s.transformer.CatchCertificate(doc, catchCase(), nil).MultiVesselSchedule)
	})
}

func (s *TransformSuite) TestCatchCertificateCopiesHeader() {
	payload := s.transformer.CatchCertificate(catchDocument(), catchCase(), nil)

	s.Equal("GBR-2024-CC-0E42C2DA5", payload.DocumentNumber)
	s.Equal("corr-1", payload.CorrelationID)
	s.Equal(ptr("account-1"), payload.Exporter.AccountID)
	s.Equal(models.OutcomeSuccess, payload.CaseType2)
}

// =============================================================================
// Processing statement
// =============================================================================

func psCase() *models.ProcessingStatementCase {
	return &models.ProcessingStatementCase{
		CaseHeader: models.CaseHeader{
			DocumentNumber: "GBR-2024-PS-1A2B3C4D5",
			CaseType1:      models.CaseTypeProcessingStatement,
			CorrelationID:  "corr-ps",
			Lineage:        models.Lineage{ClonedFrom: ptr("GBR-2023-PS-1")},
		},
	}
}

func psDocument() *document.Document {
	return &document.Document{
		DocumentNumber: "GBR-2024-PS-1A2B3C4D5",
		Kind:           document.KindProcessingStatement,
		Fields: document.ProcessingStatementData{
			PlantName:               "Hull Processing",
			HealthCertificateNumber: "20/2/123456",
			HealthCertificateDate:   "5/3/2024",
			DateOfAcceptance:        "not a date",
		},
	}
}

func (s *TransformSuite) TestProcessingStatement() {
	results := []models.ProcessingStatementQueryResult{
		{
			CatchCertificateNumber: "GBR-2024-CC-1",
			CatchCertificateType:   models.CatchCertificateUK,
			IssuingCountry:         "Norway",
			Status:                 models.ResultComplete,
			Species:                "Atlantic cod",
			WeightOnDoc:            50,
			WeightOnCert:           100,
			WeightAfterProcessing:  40,
		},
		{
			CatchCertificateNumber: "NOR-2024-1",
			CatchCertificateType:   models.CatchCertificateNonUK,
			IssuingCountry:         "Norway",
			Status:                 models.ResultBlocked,
			IsOverAllocated:        true,
			IsMismatch:             true,
			OverAllocatedByWeight:  12.5,
			OverUsedInfo:           []string{"GBR-2024-PS-1A2B3C4D5", "GBR-2024-PS-OTHER"},
		},
		{
			CatchCertificateNumber: "NOR-2024-2",
			Status:                 models.ResultComplete,
			IsMismatch:             true,
			OverUsedInfo:           []string{"GBR-2024-PS-1A2B3C4D5"},
		},
	}

	payload := s.transformer.ProcessingStatement(psDocument(), psCase(), results)

	s.Equal(models.TradeBlocked, payload.Status)
	s.Equal("Hull Processing", payload.PlantName)
	s.Equal("2024-03-05", payload.HealthCertificateDate)
	s.Equal("not a date", payload.DateOfAcceptance)
	s.Require().Len(payload.Catches, 3)

	s.Run("uk certificates originate in the united kingdom", func() {
		s.Equal("United Kingdom", payload.Catches[0].CountryOfOrigin)
		s.Equal("Norway", payload.Catches[1].CountryOfOrigin)
	})

	s.Run("weights map one to one", func() {
		s.Equal(100.0, payload.Catches[0].ImportedWeight)
		s.Equal(50.0, payload.Catches[0].UsedWeightAgainstCertificate)
		s.Equal(40.0, payload.Catches[0].ProcessedWeight)
	})

	s.Run("validation status", func() {
		s.Equal(models.ValidationSuccess, payload.Catches[0].ValidationStatus)
		s.Equal(models.ValidationOveruse, payload.Catches[1].ValidationStatus)
		s.Equal(models.ValidationWeight, payload.Catches[2].ValidationStatus)
		s.Equal(12.5, payload.Catches[1].OverAllocatedByWeight)
	})

	s.Run("overuse references exclude own number and are omitted when empty", func() {
		s.Equal([]string{"GBR-2024-PS-OTHER"}, payload.Catches[1].OveruseReferences)
		s.Nil(payload.Catches[2].OveruseReferences)

		keys := keysOf(s, payload)
		catches := keys["catches"].([]any)
		s.NotContains(catches[2], "overuseReferences")
		s.NotContains(catches[0], "catchCertificateType")
	})

	s.Run("lineage is stripped", func() {
		s.NotContains(keysOf(s, payload), "clonedFrom")
	})
}

func (s *TransformSuite) TestProcessingStatementNullResultsIsVoid() {
	payload := s.transformer.ProcessingStatement(psDocument(), psCase(), nil)

	s.Equal(models.TradeVoid, payload.Status)
	s.Nil(payload.Catches)
	s.Nil(keysOf(s, payload)["catches"])
}

// =============================================================================
// Storage document
// =============================================================================

func sdCase() *models.StorageDocumentCase {
	return &models.StorageDocumentCase{CaseHeader: models.CaseHeader{
		DocumentNumber: "GBR-2024-SD-9F8E7D6C5",
		CaseType1:      models.CaseTypeStorageDocument,
		CorrelationID:  "corr-sd",
	}}
}

func sdDocument(exportDate string) *document.Document {
	return &document.Document{
		DocumentNumber: "GBR-2024-SD-9F8E7D6C5",
		Kind:           document.KindStorageDocument,
		Fields: document.StorageDocumentData{
			StorageFacilities: []document.StorageFacility{{Name: "Grimsby Cold Store"}},
			Transportation:    &document.Transportation{Vehicle: "truck", ExportDate: exportDate, Departure: "Hull"},
		},
	}
}

func (s *TransformSuite) TestStorageDocument() {
	results := []models.StorageDocumentQueryResult{{
		CatchCertificateNumber: "GBR-2024-CC-1",
		Status:                 models.ResultComplete,
		Species:                "Atlantic cod",
		WeightOnDoc:            20,
		WeightOnCert:           80,
		DateOfUnloading:        "01-02-2024",
		IssuingCountry:         "Iceland",
		IsOverAllocated:        true,
		OverUsedInfo:           []string{"GBR-2024-SD-9F8E7D6C5"},
	}}

	payload := s.transformer.StorageDocument(sdDocument("14/06/2024"), sdCase(), results)

	s.Equal(models.TradeComplete, payload.Status)
	s.Equal("2024-06-14", payload.ExportDate)
	s.Equal([]string{"Grimsby Cold Store"}, payload.StorageFacilities)
	s.Equal("truck", payload.TransportMode)
	s.Require().Len(payload.Products, 1)
	p := payload.Products[0]
	s.Equal("2024-02-01", p.DateOfUnloading)
	s.Equal(80.0, p.ImportedWeight)
	s.Equal(20.0, p.ExportedWeight)
	s.Equal(models.ValidationOveruse, p.ValidationStatus)
	s.Nil(p.OveruseReferences)
}

func (s *TransformSuite) TestStorageDocumentExportDateFallsBackToUTCToday() {
	for _, input := range []string{"", "someday", "31/31/2024"} {
		s.Run(fmt.Sprintf("input %q", input), func() {
			payload := s.transformer.StorageDocument(sdDocument(input), sdCase(), nil)
			s.Equal("2024-06-15", payload.ExportDate)
			s.Equal(models.TradeVoid, payload.Status)
			s.Nil(payload.Products)
		})
	}

	s.Run("clock is read in UTC", func() {
		local := time.FixedZone("UTC+2", 2*60*60)
		t := New("", WithClock(func() time.Time { return s.now.In(local) }))
		s.Equal("2024-06-15", t.StorageDocument(sdDocument(""), sdCase(), nil).ExportDate)
	})
}

// =============================================================================
// Dates and determinism
// =============================================================================

func (s *TransformSuite) TestCanonicalDate() {
	cases := map[string]string{
		"05/03/2024":           "2024-03-05",
		"5/3/2024":             "2024-03-05",
		"05-03-2024":           "2024-03-05",
		"5-3-2024":             "2024-03-05",
		"2024-03-05":           "2024-03-05",
		"2024-03-05T10:00:00Z": "2024-03-05",
		"March 5th":            "March 5th",
		"":                     "",
	}
	for input, expected := range cases {
		s.Equal(expected, canonicalDate(input), "input %q", input)
	}
}

func (s *TransformSuite) TestTransformsAreDeterministic() {
	ccResults := []models.CatchCertificateQueryResult{{LandingID: "GBR-2024-CC-0E42C2DA5-1", Status: models.ResultComplete, RSSNumber: "C1", DateLanded: "2024-06-01"}}
	first := keysOf(s, s.transformer.CatchCertificate(catchDocument(line("A", "1")), catchCase(), ccResults))
	second := keysOf(s, s.transformer.CatchCertificate(catchDocument(line("A", "1")), catchCase(), ccResults))
	s.Equal(first, second)

	sdFirst := keysOf(s, s.transformer.StorageDocument(sdDocument("bad"), sdCase(), nil))
	sdSecond := keysOf(s, s.transformer.StorageDocument(sdDocument("bad"), sdCase(), nil))
	s.Equal(sdFirst, sdSecond)
}
