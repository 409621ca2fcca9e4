package transform

import (
	"fes/internal/document"
	"fes/internal/trade/models"
	platformstrings "fes/pkg/platform/strings"
)

const countryUnitedKingdom = "United Kingdom"

// ProcessingStatement maps a processing statement onto its trade payload.
func (t *Transformer) ProcessingStatement(doc *document.Document, c *models.ProcessingStatementCase, results []models.ProcessingStatementQueryResult) *models.ProcessingStatementPayload {
	payload := &models.ProcessingStatementPayload{
		TradeHeader: header(&c.CaseHeader),
		PlantName:   c.PlantName,
		Status: DeriveStatus(results, func(r models.ProcessingStatementQueryResult) models.ResultStatus {
			return r.Status
		}),
	}
	if doc != nil {
		if data, ok := doc.Fields.(document.ProcessingStatementData); ok {
			if data.PlantName != "" {
				payload.PlantName = data.PlantName
			}
			payload.PlantApprovalNumber = data.PlantApprovalNumber
			payload.HealthCertificateNumber = data.HealthCertificateNumber
			payload.HealthCertificateDate = canonicalDate(data.HealthCertificateDate)
			payload.DateOfAcceptance = canonicalDate(data.DateOfAcceptance)
			if payload.ExportedTo == nil {
				payload.ExportedTo = data.ExportedTo
			}
		}
	}
	if results == nil {
		return payload
	}

	payload.Catches = make([]models.TradeCatch, 0, len(results))
	for _, r := range results {
		catch := models.TradeCatch{
			ForeignCatchCertificateNumber: r.CatchCertificateNumber,
			Species:                       r.Species,
			SpeciesCode:                   r.SpeciesCode,
			CommodityCode:                 r.CommodityCode,
			ImportedWeight:                r.WeightOnCert,
			UsedWeightAgainstCertificate:  r.WeightOnDoc,
			ProcessedWeight:               r.WeightAfterProcessing,
			CountryOfOrigin:               countryOfOrigin(r),
			CatchCertificateDate:          canonicalDate(r.CatchCertificateDate),
			ValidationStatus:              validationStatus(r.IsMismatch, r.IsOverAllocated),
			OveruseReferences:             platformstrings.DedupeExcluding(r.OverUsedInfo, c.DocumentNumber),
		}
		if r.IsOverAllocated {
			catch.OverAllocatedByWeight = r.OverAllocatedByWeight
		}
		payload.Catches = append(payload.Catches, catch)
	}
	return payload
}

func countryOfOrigin(r models.ProcessingStatementQueryResult) string {
	if r.CatchCertificateType == models.CatchCertificateUK {
		return countryUnitedKingdom
	}
	return r.IssuingCountry
}
