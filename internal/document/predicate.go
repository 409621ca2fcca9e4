package document

import "slices"

// Predicate selects documents. Zero-valued fields do not constrain the match.
type Predicate struct {
	DocumentNumber string
	PdfReference   string
	Kinds          []Kind
	StatusIn       []Status
	StatusNotIn    []Status
}

// Matches evaluates the predicate against a document.
func (p Predicate) Matches(d *Document) bool {
	if d == nil {
		return false
	}
	if p.DocumentNumber != "" && d.DocumentNumber != p.DocumentNumber {
		return false
	}
	if p.PdfReference != "" && d.PdfReference != p.PdfReference {
		return false
	}
	if len(p.Kinds) > 0 && !slices.Contains(p.Kinds, d.Kind) {
		return false
	}
	if len(p.StatusIn) > 0 && !slices.Contains(p.StatusIn, d.Status) {
		return false
	}
	if slices.Contains(p.StatusNotIn, d.Status) {
		return false
	}
	return true
}

// Update lists the fields a conditional write changes. Nil fields are left alone.
type Update struct {
	Status        *Status
	Investigation *Investigation
}

// Apply mutates d in place.
func (u Update) Apply(d *Document) {
	if u.Status != nil {
		d.Status = *u.Status
	}
	if u.Investigation != nil {
		inv := *u.Investigation
		d.Investigation = &inv
	}
}

// Scope returns the kinds a document number is looked up under: catch
// certificates have their own scope, everything else shares the generic one.
func Scope(documentNumber string) []Kind {
	if IsCatchCertificateNumber(documentNumber) {
		return []Kind{KindCatchCertificate}
	}
	return []Kind{KindProcessingStatement, KindStorageDocument}
}
