package transform

import (
	"fes/internal/document"
	"fes/internal/trade/models"
	platformstrings "fes/pkg/platform/strings"
)

// StorageDocument maps a storage document onto its trade payload.
func (t *Transformer) StorageDocument(doc *document.Document, c *models.StorageDocumentCase, results []models.StorageDocumentQueryResult) *models.StorageDocumentPayload {
	payload := &models.StorageDocumentPayload{
		TradeHeader: header(&c.CaseHeader),
		Status: DeriveStatus(results, func(r models.StorageDocumentQueryResult) models.ResultStatus {
			return r.Status
		}),
	}

	exportDate := ""
	if doc != nil {
		if data, ok := doc.Fields.(document.StorageDocumentData); ok {
			for _, f := range data.StorageFacilities {
				payload.StorageFacilities = append(payload.StorageFacilities, f.Name)
			}
			if data.Transportation != nil {
				payload.TransportMode = data.Transportation.Vehicle
				payload.DeparturePlace = data.Transportation.Departure
				exportDate = data.Transportation.ExportDate
			}
			if payload.ExportedTo == nil {
				payload.ExportedTo = data.ExportedTo
			}
		}
	}
	payload.ExportDate = t.exportDate(exportDate)

	if results == nil {
		return payload
	}

	payload.Products = make([]models.TradeProduct, 0, len(results))
	for _, r := range results {
		payload.Products = append(payload.Products, models.TradeProduct{
			ForeignCatchCertificateNumber: r.CatchCertificateNumber,
			Species:                       r.Species,
			SpeciesCode:                   r.SpeciesCode,
			CommodityCode:                 r.CommodityCode,
			ImportedWeight:                r.WeightOnCert,
			ExportedWeight:                r.WeightOnDoc,
			DateOfUnloading:               canonicalDate(r.DateOfUnloading),
			PlaceOfUnloading:              r.PlaceOfUnloading,
			TransportUnloadedFrom:         r.TransportUnloadedFrom,
			CountryOfOrigin:               r.IssuingCountry,
			ValidationStatus:              validationStatus(r.IsMismatch, r.IsOverAllocated),
			OveruseReferences:             platformstrings.DedupeExcluding(r.OverUsedInfo, c.DocumentNumber),
		})
	}
	return payload
}
