package document

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"fes/pkg/platform/audit"
)

type DocumentSuite struct {
	suite.Suite
}

func TestDocumentSuite(t *testing.T) {
	suite.Run(t, new(DocumentSuite))
}

func (s *DocumentSuite) TestKindFromNumber() {
	cases := []struct {
		number string
		kind   Kind
		ok     bool
	}{
		{"GBR-2024-CC-0E42C2DA5", KindCatchCertificate, true},
		{"gbr-2024-cc-0e42c2da5", KindCatchCertificate, true},
		{"GBR-2024-PS-1A2B3C4D5", KindProcessingStatement, true},
		{"GBR-2024-SD-9F8E7D6C5", KindStorageDocument, true},
		{"GBR-2024-XX-000000000", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		s.Run(tc.number, func() {
			kind, ok := KindFromNumber(tc.number)
			s.Equal(tc.ok, ok)
			s.Equal(tc.kind, kind)
		})
	}
}

func (s *DocumentSuite) TestScope() {
	s.Equal([]Kind{KindCatchCertificate}, Scope("GBR-2024-CC-1"))
	s.Equal([]Kind{KindProcessingStatement, KindStorageDocument}, Scope("GBR-2024-PS-1"))
	s.Equal([]Kind{KindProcessingStatement, KindStorageDocument}, Scope("GBR-2024-SD-1"))
}

func (s *DocumentSuite) TestPredicateMatches() {
	doc := &Document{
		DocumentNumber: "GBR-2024-CC-1",
		Kind:           KindCatchCertificate,
		Status:         StatusComplete,
		PdfReference:   "GBR-2024-CC-1.pdf",
	}

	s.Run("empty predicate matches", func() {
		s.True(Predicate{}.Matches(doc))
	})

	s.Run("status in", func() {
		s.True(Predicate{StatusIn: []Status{StatusComplete}}.Matches(doc))
		s.False(Predicate{StatusIn: []Status{StatusVoid}}.Matches(doc))
	})

	s.Run("status not in", func() {
		s.False(Predicate{StatusNotIn: []Status{StatusComplete}}.Matches(doc))
		s.True(Predicate{StatusNotIn: []Status{StatusVoid, StatusDraft, StatusPending}}.Matches(doc))
	})

	s.Run("kind scope", func() {
		s.True(Predicate{Kinds: Scope(doc.DocumentNumber)}.Matches(doc))
		s.False(Predicate{Kinds: []Kind{KindStorageDocument}}.Matches(doc))
	})

	s.Run("pdf reference", func() {
		s.True(Predicate{PdfReference: "GBR-2024-CC-1.pdf"}.Matches(doc))
		s.False(Predicate{PdfReference: "other.pdf"}.Matches(doc))
	})

	s.Run("nil document never matches", func() {
		s.False(Predicate{}.Matches(nil))
	})
}

func (s *DocumentSuite) TestUpdateApply() {
	doc := &Document{Status: StatusComplete}
	void := StatusVoid
	Update{Status: &void}.Apply(doc)
	s.Equal(StatusVoid, doc.Status)
	s.Nil(doc.Investigation)

	inv := Investigation{Investigator: "admin", Status: "UNDER_INVESTIGATION"}
	Update{Investigation: &inv}.Apply(doc)
	s.Require().NotNil(doc.Investigation)
	s.Equal(inv, *doc.Investigation)
	s.Equal(StatusVoid, doc.Status)
}

func TestDocumentJSON(t *testing.T) {
	doc := Document{
		DocumentNumber: "GBR-2024-SD-1",
		Kind:           KindStorageDocument,
		Status:         StatusComplete,
		CreatedAt:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Fields: StorageDocumentData{
			StorageFacilities: []StorageFacility{{Name: "Cold Store Ltd"}},
			Transportation:    &Transportation{Vehicle: "truck", ExportDate: "02/01/2024"},
		},
		Audit: []audit.Event{{EventType: audit.EventVoided, TriggeredBy: "admin"}},
	}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, doc.DocumentNumber, decoded.DocumentNumber)
	data, ok := decoded.Fields.(StorageDocumentData)
	require.True(t, ok)
	assert.Equal(t, "Cold Store Ltd", data.StorageFacilities[0].Name)
	require.Len(t, decoded.Audit, 1)
	assert.Equal(t, audit.EventVoided, decoded.Audit[0].EventType)
}

func TestDecodeExportDataRejectsUnknownKind(t *testing.T) {
	_, err := DecodeExportData(Kind("other"), json.RawMessage(`{}`))
	require.Error(t, err)

	data, err := DecodeExportData(KindCatchCertificate, nil)
	require.NoError(t, err)
	assert.Nil(t, data)
}
