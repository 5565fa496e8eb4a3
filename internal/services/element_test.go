package services

import (
	"net/http"
	"testing"

	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/ident"
	"github.com/openimagingdata/radelement-api/internal/models"
)

func newElementService(t *testing.T) (*ElementService, *SetService) {
	db := setupTestDB(t)
	return NewElementService(db, testLogger()), NewSetService(db, testLogger())
}

func TestCreateElementNumericDefaults(t *testing.T) {
	svc, _ := newElementService(t)
	set := createTestSet(t, svc.db, "Pulmonary Nodules")
	setID := ident.EncodeSetID(set.ID)

	min := floatFlex(0)
	max := floatFlex(300)
	result := svc.CreateElement(setID, &dto.CreateElement{
		Name:      "Nodule size",
		ValueType: dto.ElementTypeNumeric,
		Unit:      "mm",
		ValueMin:  min,
		ValueMax:  max,
	})
	if result.Status != http.StatusCreated {
		t.Fatalf("CreateElement status = %d, payload %v", result.Status, result.Value)
	}

	details := result.Value.(dto.ElementIDDetails)
	id, ok := ident.DecodeElementID(details.ElementID)
	if !ok {
		t.Fatalf("bad element id %q", details.ElementID)
	}

	var element models.Element
	if err := svc.db.First(&element, id).Error; err != nil {
		t.Fatalf("element row missing: %v", err)
	}
	if element.ValueType != "float" {
		t.Errorf("ValueType = %q, want float", element.ValueType)
	}
	if element.Status != "Proposed" {
		t.Errorf("Status = %q, want Proposed", element.Status)
	}
	if element.Question != "Nodule size" {
		t.Errorf("Question = %q, want defaulted to name", element.Question)
	}
	if element.StepValue == nil || *element.StepValue != 0.1 {
		t.Errorf("StepValue = %v, want 0.1", element.StepValue)
	}
	if element.ValueMin == nil || *element.ValueMin != 0 || element.ValueMax == nil || *element.ValueMax != 300 {
		t.Errorf("bounds = %v..%v, want 0..300", element.ValueMin, element.ValueMax)
	}
	if element.MinCardinality != 1 || element.MaxCardinality != 1 {
		t.Errorf("cardinality = %d..%d, want 1..1", element.MinCardinality, element.MaxCardinality)
	}

	if n := countRows(t, svc.db, &models.ElementSetRef{}, "element_set_id = ? AND element_id = ?", set.ID, id); n != 1 {
		t.Errorf("expected one membership row, got %d", n)
	}
}

func TestCreateElementIntegerStep(t *testing.T) {
	svc, _ := newElementService(t)
	set := createTestSet(t, svc.db, "Pulmonary Nodules")

	result := svc.CreateElement(ident.EncodeSetID(set.ID), &dto.CreateElement{
		Name:      "Nodule count",
		ValueType: dto.ElementTypeInteger,
	})
	if result.Status != http.StatusCreated {
		t.Fatalf("CreateElement status = %d, payload %v", result.Status, result.Value)
	}

	var element models.Element
	if err := svc.db.Last(&element).Error; err != nil {
		t.Fatalf("element row missing: %v", err)
	}
	if element.ValueType != "integer" {
		t.Errorf("ValueType = %q, want integer", element.ValueType)
	}
	if element.StepValue == nil || *element.StepValue != 1 {
		t.Errorf("StepValue = %v, want 1", element.StepValue)
	}
}

func TestCreateElementMultiChoiceCardinality(t *testing.T) {
	svc, _ := newElementService(t)
	set := createTestSet(t, svc.db, "Pulmonary Nodules")

	options := []dto.Option{
		{Name: "Solid", Value: "solid"},
		{Name: "Part-solid", Value: "partSolid"},
		{Name: "Ground glass", Value: "groundGlass"},
	}
	result := svc.CreateElement(ident.EncodeSetID(set.ID), &dto.CreateElement{
		Name:      "Nodule composition",
		ValueType: dto.ElementTypeMultiChoice,
		Options:   options,
	})
	if result.Status != http.StatusCreated {
		t.Fatalf("CreateElement status = %d, payload %v", result.Status, result.Value)
	}

	var element models.Element
	if err := svc.db.Last(&element).Error; err != nil {
		t.Fatalf("element row missing: %v", err)
	}
	if element.ValueType != "valueSet" {
		t.Errorf("ValueType = %q, want valueSet", element.ValueType)
	}
	if element.MaxCardinality != 3 {
		t.Errorf("MaxCardinality = %d, want number of options", element.MaxCardinality)
	}
	if n := countRows(t, svc.db, &models.ElementValue{}, "element_id = ?", element.ID); n != 3 {
		t.Errorf("expected 3 option rows, got %d", n)
	}
}

func TestCreateElementChoiceRequiresOptions(t *testing.T) {
	svc, _ := newElementService(t)
	set := createTestSet(t, svc.db, "Pulmonary Nodules")

	result := svc.CreateElement(ident.EncodeSetID(set.ID), &dto.CreateElement{
		Name:      "Nodule composition",
		ValueType: dto.ElementTypeChoice,
	})
	if result.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", result.Status)
	}
}

func TestCreateElementUnknownSet(t *testing.T) {
	svc, _ := newElementService(t)

	for _, setID := range []string{"RDES999", "bogus"} {
		result := svc.CreateElement(setID, &dto.CreateElement{
			Name: "Nodule size", ValueType: dto.ElementTypeString,
		})
		if result.Status != http.StatusNotFound {
			t.Errorf("CreateElement(%q) status = %d, want 404", setID, result.Status)
		}
	}
}

func TestCreateElementAttachExistingIsIdempotent(t *testing.T) {
	svc, _ := newElementService(t)
	set := createTestSet(t, svc.db, "Pulmonary Nodules")
	element := createTestElement(t, svc.db, "Nodule size", "float")
	setID := ident.EncodeSetID(set.ID)
	payload := &dto.CreateElement{ElementID: ident.EncodeElementID(element.ID)}

	for i := 0; i < 2; i++ {
		result := svc.CreateElement(setID, payload)
		if result.Status != http.StatusCreated {
			t.Fatalf("attach %d status = %d, payload %v", i, result.Status, result.Value)
		}
	}

	if n := countRows(t, svc.db, &models.ElementSetRef{}, "element_set_id = ? AND element_id = ?", set.ID, element.ID); n != 1 {
		t.Errorf("expected a single membership row after re-attach, got %d", n)
	}
}

func TestUpdateElementRequiresMembership(t *testing.T) {
	svc, _ := newElementService(t)
	set := createTestSet(t, svc.db, "Pulmonary Nodules")
	element := createTestElement(t, svc.db, "Nodule size", "float")
	// No membership row between set and element.

	result := svc.UpdateElement(ident.EncodeSetID(set.ID), ident.EncodeElementID(element.ID), &dto.UpdateElement{
		Name: "Nodule size", ValueType: dto.ElementTypeNumeric,
	})
	if result.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", result.Status)
	}
}

func TestUpdateElementReplacesOptions(t *testing.T) {
	svc, _ := newElementService(t)
	set := createTestSet(t, svc.db, "Pulmonary Nodules")
	setID := ident.EncodeSetID(set.ID)

	created := svc.CreateElement(setID, &dto.CreateElement{
		Name:      "Nodule composition",
		ValueType: dto.ElementTypeChoice,
		Options:   []dto.Option{{Name: "Solid", Value: "solid"}, {Name: "Cystic", Value: "cystic"}},
	})
	elementID := created.Value.(dto.ElementIDDetails).ElementID

	result := svc.UpdateElement(setID, elementID, &dto.UpdateElement{
		Name:      "Nodule composition",
		ValueType: dto.ElementTypeChoice,
		Options:   []dto.Option{{Name: "Ground glass", Value: "groundGlass"}},
	})
	if result.Status != http.StatusOK {
		t.Fatalf("UpdateElement status = %d, payload %v", result.Status, result.Value)
	}

	eid, _ := ident.DecodeElementID(elementID)
	var values []models.ElementValue
	if err := svc.db.Where("element_id = ?", eid).Find(&values).Error; err != nil {
		t.Fatalf("Failed to read options: %v", err)
	}
	if len(values) != 1 || values[0].Value != "groundGlass" {
		t.Fatalf("options not replaced, got %+v", values)
	}
}

func TestDeleteElementCascades(t *testing.T) {
	svc, _ := newElementService(t)
	first := createTestSet(t, svc.db, "Pulmonary Nodules")
	second := createTestSet(t, svc.db, "Thyroid Nodules")
	person := createTestPerson(t, svc.db, "Alice")

	created := svc.CreateElement(ident.EncodeSetID(first.ID), &dto.CreateElement{
		Name:      "Nodule composition",
		ValueType: dto.ElementTypeChoice,
		Options:   []dto.Option{{Name: "Solid", Value: "solid"}},
		Persons:   []dto.PersonRef{{PersonID: person.ID}},
	})
	elementID := created.Value.(dto.ElementIDDetails).ElementID
	eid, _ := ident.DecodeElementID(elementID)

	// Member of a second set too: delete must drop every membership row.
	attach := svc.CreateElement(ident.EncodeSetID(second.ID), &dto.CreateElement{ElementID: elementID})
	if attach.Status != http.StatusCreated {
		t.Fatalf("attach status = %d", attach.Status)
	}

	result := svc.DeleteElement(ident.EncodeSetID(first.ID), elementID)
	if result.Status != http.StatusOK {
		t.Fatalf("DeleteElement status = %d, payload %v", result.Status, result.Value)
	}

	if n := countRows(t, svc.db, &models.Element{}, "id = ?", eid); n != 0 {
		t.Errorf("element row survives delete")
	}
	if n := countRows(t, svc.db, &models.ElementValue{}, "element_id = ?", eid); n != 0 {
		t.Errorf("option rows survive delete")
	}
	if n := countRows(t, svc.db, &models.ElementSetRef{}, "element_id = ?", eid); n != 0 {
		t.Errorf("membership rows survive delete: %d", n)
	}
	if n := countRows(t, svc.db, &models.PersonRoleElementRef{}, "element_id = ?", eid); n != 0 {
		t.Errorf("person refs survive delete")
	}
}

func TestGetElementIncludesOptionsOnlyForValueSet(t *testing.T) {
	svc, _ := newElementService(t)
	set := createTestSet(t, svc.db, "Pulmonary Nodules")

	created := svc.CreateElement(ident.EncodeSetID(set.ID), &dto.CreateElement{
		Name:      "Nodule composition",
		ValueType: dto.ElementTypeChoice,
		Options:   []dto.Option{{Name: "Solid", Value: "solid"}},
	})
	elementID := created.Value.(dto.ElementIDDetails).ElementID

	result := svc.GetElement(elementID)
	if result.Status != http.StatusOK {
		t.Fatalf("GetElement status = %d", result.Status)
	}
	details := result.Value.(dto.ElementDetails)
	if len(details.ElementValues) != 1 {
		t.Errorf("expected 1 option in details, got %d", len(details.ElementValues))
	}
	if len(details.SetInformation) != 1 || details.SetInformation[0].SetID != ident.EncodeSetID(set.ID) {
		t.Errorf("set information missing: %+v", details.SetInformation)
	}
}

func TestSearchElementsKeywordValidation(t *testing.T) {
	svc, _ := newElementService(t)

	if result := svc.SearchElements(""); result.Status != http.StatusBadRequest {
		t.Errorf("empty keyword status = %d, want 400", result.Status)
	}
	if result := svc.SearchElements("ab"); result.Status != http.StatusBadRequest {
		t.Errorf("short keyword status = %d, want 400", result.Status)
	}
	// Two characters is too short even when they span several bytes.
	if result := svc.SearchElements("肺炎"); result.Status != http.StatusBadRequest {
		t.Errorf("two-rune keyword status = %d, want 400", result.Status)
	}
	if result := svc.SearchElements("nothing"); result.Status != http.StatusNotFound {
		t.Errorf("no-match keyword status = %d, want 404", result.Status)
	}
}

func TestSearchElementsMatchesPublicID(t *testing.T) {
	svc, _ := newElementService(t)
	element := createTestElement(t, svc.db, "Nodule size", "float")

	result := svc.SearchElements(ident.EncodeElementID(element.ID))
	if result.Status != http.StatusOK {
		t.Fatalf("search by public id status = %d", result.Status)
	}
	details := result.Value.([]dto.ElementDetails)
	if len(details) != 1 || details[0].Name != "Nodule size" {
		t.Fatalf("unexpected search result: %+v", details)
	}
}
