package schema

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fes/internal/document"
	"fes/internal/trade/models"
	"fes/internal/trade/transform"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry()
	require.NoError(t, err)
	return r
}

func str(s string) *string { return &s }

func header(number string, caseType models.CaseType1) models.CaseHeader {
	return models.CaseHeader{
		DocumentNumber: number,
		CaseType1:      caseType,
		CaseType2:      models.OutcomeSuccess,
		Exporter:       models.Exporter{ContactID: str("c-1"), AccountID: nil},
		CorrelationID:  "corr-1",
	}
}

func TestRegistryVersions(t *testing.T) {
	r := newRegistry(t)

	cc, err := r.Latest(document.KindCatchCertificate)
	require.NoError(t, err)
	assert.Equal(t, 2, cc.Version())
	assert.Equal(t, document.KindCatchCertificate, cc.Kind())

	ps, err := r.Get(document.KindProcessingStatement, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, ps.Version())

	_, err = r.Get(document.KindStorageDocument, 99)
	assert.Error(t, err)

	_, err = r.Latest(document.Kind("unknown"))
	assert.Error(t, err)
}

func TestTransformedPayloadsValidate(t *testing.T) {
	r := newRegistry(t)
	tr := transform.New("https://reference.example.com", transform.WithClock(func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}))

	t.Run("catch certificate with and without results", func(t *testing.T) {
		v, err := r.Latest(document.KindCatchCertificate)
		require.NoError(t, err)
		c := &models.CatchCertificateCase{
			CaseHeader: header("GBR-2024-CC-1", models.CaseTypeCatchCertificate),
			Landings:   []models.CaseLanding{{ID: "l-1", Status: "ok", SpeciesCode: "COD", Weight: 10}},
		}
		results := []models.CatchCertificateQueryResult{{LandingID: "l-1", Status: models.ResultComplete, RSSNumber: "C1", DateLanded: "2024-01-01"}}

		assert.True(t, v.Validate(tr.CatchCertificate(nil, c, results)).Valid)
		assert.True(t, v.Validate(tr.CatchCertificate(nil, c, nil)).Valid)
	})

	t.Run("processing statement", func(t *testing.T) {
		v, err := r.Latest(document.KindProcessingStatement)
		require.NoError(t, err)
		c := &models.ProcessingStatementCase{CaseHeader: header("GBR-2024-PS-1", models.CaseTypeProcessingStatement)}
		results := []models.ProcessingStatementQueryResult{{CatchCertificateNumber: "GBR-2024-CC-1", Species: "Cod", Status: models.ResultBlocked}}

		res := v.Validate(tr.ProcessingStatement(nil, c, results))
		assert.True(t, res.Valid, "%v", res.Errors)
	})

	t.Run("storage document", func(t *testing.T) {
		v, err := r.Latest(document.KindStorageDocument)
		require.NoError(t, err)
		c := &models.StorageDocumentCase{CaseHeader: header("GBR-2024-SD-1", models.CaseTypeStorageDocument)}

		res := v.Validate(tr.StorageDocument(nil, c, nil))
		assert.True(t, res.Valid, "%v", res.Errors)
	})
}

func TestValidateReportsErrors(t *testing.T) {
	r := newRegistry(t)
	v, err := r.Latest(document.KindCatchCertificate)
	require.NoError(t, err)

	t.Run("missing required fields", func(t *testing.T) {
		res := v.Validate(map[string]any{"documentNumber": "GBR-2024-CC-1"})
		assert.False(t, res.Valid)
		assert.NotEmpty(t, res.Errors)
	})

	t.Run("lineage fields are rejected", func(t *testing.T) {
		payload := map[string]any{
			"documentNumber":      "GBR-2024-CC-1",
			"caseType1":           "CC",
			"caseType2":           "x",
			"exporter":            map[string]any{"contactId": nil, "accountId": nil},
			"_correlationId":      "c",
			"certStatus":          "VOID",
			"multiVesselSchedule": false,
			"landings":            nil,
			"clonedFrom":          "GBR-2023-CC-1",
		}
		res := v.Validate(payload)
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "clonedFrom")
	})

	t.Run("unencodable payload", func(t *testing.T) {
		res := v.Validate(map[string]any{"bad": make(chan int)})
		assert.False(t, res.Valid)
		assert.Len(t, res.Errors, 1)
	})
}

func TestValidatorIsSafeForConcurrentUse(t *testing.T) {
	r := newRegistry(t)
	v, err := r.Latest(document.KindStorageDocument)
	require.NoError(t, err)
	tr := transform.New("")
	c := &models.StorageDocumentCase{CaseHeader: header("GBR-2024-SD-1", models.CaseTypeStorageDocument)}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, v.Validate(tr.StorageDocument(nil, c, nil)).Valid)
		}()
	}
	wg.Wait()
}
