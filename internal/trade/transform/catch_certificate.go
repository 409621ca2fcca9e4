package transform

import (
	"fmt"
	"net/url"
	"strings"

	"fes/internal/document"
	"fes/internal/trade/models"
)

const (
	baseURLPlaceholder   = "{BASE_URL}"
	referenceURLTemplate = baseURLPlaceholder + "/reference/api/v1/extendedData/%s?%s"

	resourceRawLandings = "rawLandings"
	resourceSalesNotes  = "salesNotes"

	// Catch certificates with more lines than this are multi-vessel schedules.
	maxSingleScheduleLines = 6
)

// CatchCertificate maps a catch certificate case onto its trade payload.
// Landings are enriched from the query result sharing their landing id.
func (t *Transformer) CatchCertificate(doc *document.Document, c *models.CatchCertificateCase, results []models.CatchCertificateQueryResult) *models.CatchCertificatePayload {
	payload := &models.CatchCertificatePayload{
		TradeHeader:         header(&c.CaseHeader),
		IsDirectLanding:     c.IsDirectLanding,
		MultiVesselSchedule: multiVesselSchedule(doc),
		CertStatus: DeriveStatus(results, func(r models.CatchCertificateQueryResult) models.ResultStatus {
			return r.Status
		}),
	}
	if results == nil {
		return payload
	}

	byLanding := make(map[string]models.CatchCertificateQueryResult, len(results))
	for _, r := range results {
		if _, seen := byLanding[r.LandingID]; !seen {
			byLanding[r.LandingID] = r
		}
	}

	payload.Landings = make([]models.TradeLanding, 0, len(c.Landings))
	for _, l := range c.Landings {
		landing := models.TradeLanding{
			ID:                       l.ID,
			Status:                   l.Status,
			SpeciesCode:              l.SpeciesCode,
			CommodityCode:            l.CommodityCode,
			State:                    l.State,
			Presentation:             l.Presentation,
			VesselName:               l.VesselName,
			PLN:                      l.PLN,
			DateLanded:               canonicalDate(l.Date),
			Weight:                   l.Weight,
			NumberOfTotalSubmissions: l.NumberOfTotalSubmissions,
			VesselOverriddenByAdmin:  l.VesselOverriddenByAdmin,
			DataEverExpected:         l.DataEverExpected,
		}
		if r, ok := byLanding[l.ID]; ok {
			t.enrichLanding(&landing, r)
		}
		payload.Landings = append(payload.Landings, landing)
	}
	return payload
}

func (t *Transformer) enrichLanding(l *models.TradeLanding, r models.CatchCertificateQueryResult) {
	l.SpeciesName = r.SpeciesName
	l.ScientificName = r.ScientificName
	if r.VesselName != "" {
		l.VesselName = r.VesselName
	}
	if r.PLN != "" {
		l.PLN = r.PLN
	}
	l.RSSNumber = r.RSSNumber
	l.LicenceHolder = r.LicenceHolder
	l.FlagState = r.FlagState
	l.FaoArea = r.FaoArea
	if r.DateLanded != "" {
		l.DateLanded = canonicalDate(r.DateLanded)
	}
	l.LandedWeight = r.LandedWeight
	l.IsLandingExists = r.IsLandingExists
	l.RawLandingsURL = t.referenceURL(resourceRawLandings, l.DateLanded, r.RSSNumber)
	l.SalesNoteURL = t.referenceURL(resourceSalesNotes, l.DateLanded, r.RSSNumber)
}

// referenceURL fills the reference template for one landing, or returns ""
// when the landing lacks the date or vessel registration to query by.
func (t *Transformer) referenceURL(resource, dateLanded, rssNumber string) string {
	if dateLanded == "" || rssNumber == "" {
		return ""
	}
	query := url.Values{}
	query.Set("dateLanded", dateLanded)
	query.Set("rssNumber", rssNumber)
	raw := fmt.Sprintf(referenceURLTemplate, resource, query.Encode())
	return strings.Replace(raw, baseURLPlaceholder, strings.TrimRight(t.referenceBaseURL, "/"), 1)
}

type vesselIdentity struct {
	vessel, pln, licenceNumber string
}

// multiVesselSchedule is true when the products were caught by more than one
// vessel or declare more catch lines than a single schedule holds.
func multiVesselSchedule(doc *document.Document) bool {
	if doc == nil {
		return false
	}
	data, ok := doc.Fields.(document.CatchCertificateData)
	if !ok {
		return false
	}
	vessels := make(map[vesselIdentity]struct{})
	lines := 0
	for _, p := range data.Products {
		for _, c := range p.CaughtBy {
			vessels[vesselIdentity{c.Vessel, c.PLN, c.LicenceNumber}] = struct{}{}
			lines++
		}
	}
	return len(vessels) > 1 || lines > maxSingleScheduleLines
}
