package services

import (
	"net/http"
	"testing"

	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/ident"
	"github.com/openimagingdata/radelement-api/internal/models"
	"github.com/openimagingdata/radelement-api/internal/types"
)

func newSetService(t *testing.T) *SetService {
	return NewSetService(setupTestDB(t), testLogger())
}

func TestCreateSetDefaults(t *testing.T) {
	svc := newSetService(t)

	result := svc.CreateSet(&dto.CreateUpdateSet{
		Name:        "  Pulmonary Nodules  ",
		Description: "CT chest nodule reporting",
		Modality:    types.FlexList[string]{"CT"},
	})
	if result.Status != http.StatusCreated {
		t.Fatalf("CreateSet status = %d, payload %v", result.Status, result.Value)
	}

	details := result.Value.(dto.SetIDDetails)
	id, ok := ident.DecodeSetID(details.SetID)
	if !ok {
		t.Fatalf("bad set id %q", details.SetID)
	}

	var set models.ElementSet
	if err := svc.db.First(&set, id).Error; err != nil {
		t.Fatalf("set row missing: %v", err)
	}
	if set.Name != "Pulmonary Nodules" {
		t.Errorf("Name = %q, want trimmed", set.Name)
	}
	if set.Status != "Proposed" {
		t.Errorf("Status = %q, want Proposed", set.Status)
	}
	if set.Modality == nil || *set.Modality != "CT" {
		t.Errorf("Modality = %v, want CT", set.Modality)
	}
}

func TestCreateSetRequiresName(t *testing.T) {
	svc := newSetService(t)

	if result := svc.CreateSet(&dto.CreateUpdateSet{Name: "   "}); result.Status != http.StatusBadRequest {
		t.Errorf("blank name status = %d, want 400", result.Status)
	}
	if result := svc.CreateSet(nil); result.Status != http.StatusBadRequest {
		t.Errorf("nil payload status = %d, want 400", result.Status)
	}
}

func TestGetSetFoldsJoinRows(t *testing.T) {
	svc := newSetService(t)
	person := createTestPerson(t, svc.db, "Alice")
	organization := createTestOrganization(t, svc.db, "ACR")

	created := svc.CreateSet(&dto.CreateUpdateSet{
		Name: "Pulmonary Nodules",
		IndexCodeReferences: []dto.IndexCodeReference{
			{System: "RADLEX", Code: "RID28662", Display: "Nodule"},
			{System: "SNOMEDCT", Code: "27925004", Display: "Nodule"},
		},
		Persons: []dto.PersonRef{
			{PersonID: person.ID, Roles: types.FlexList[string]{"author", "editor"}},
		},
		Organizations: []dto.OrganizationRef{
			{OrganizationID: organization.ID, Roles: types.FlexList[string]{"sponsor"}},
		},
	})
	if created.Status != http.StatusCreated {
		t.Fatalf("CreateSet status = %d, payload %v", created.Status, created.Value)
	}
	setID := created.Value.(dto.SetIDDetails).SetID

	// 2 codes x 2 person roles x 1 org role produce several flat rows; the
	// fold must collapse them back to one document.
	result := svc.GetSet(setID)
	if result.Status != http.StatusOK {
		t.Fatalf("GetSet status = %d, payload %v", result.Status, result.Value)
	}
	details := result.Value.(dto.ElementSetDetails)

	if len(details.IndexCodes) != 2 {
		t.Errorf("IndexCodes = %d entries, want 2", len(details.IndexCodes))
	}
	if len(details.PersonInformation) != 1 {
		t.Fatalf("PersonInformation = %d entries, want 1", len(details.PersonInformation))
	}
	roles := details.PersonInformation[0].Roles
	if len(roles) != 2 {
		t.Errorf("person roles = %v, want [author editor]", roles)
	}
	if len(details.OrganizationInformation) != 1 || len(details.OrganizationInformation[0].Roles) != 1 {
		t.Errorf("organization fold wrong: %+v", details.OrganizationInformation)
	}

	// The whole list read folds identically.
	list := svc.GetSets()
	if list.Status != http.StatusOK {
		t.Fatalf("GetSets status = %d", list.Status)
	}
	all := list.Value.([]dto.ElementSetDetails)
	if len(all) != 1 {
		t.Fatalf("GetSets returned %d documents, want 1", len(all))
	}
}

func TestUpdateSetReplacesReferences(t *testing.T) {
	svc := newSetService(t)
	created := svc.CreateSet(&dto.CreateUpdateSet{
		Name: "Pulmonary Nodules",
		IndexCodeReferences: []dto.IndexCodeReference{
			{System: "RADLEX", Code: "RID28662"},
		},
	})
	setID := created.Value.(dto.SetIDDetails).SetID
	id, _ := ident.DecodeSetID(setID)

	result := svc.UpdateSet(setID, &dto.CreateUpdateSet{
		Name: "Thoracic Nodules",
		IndexCodeReferences: []dto.IndexCodeReference{
			{System: "LOINC", Code: "12345-6"},
		},
	})
	if result.Status != http.StatusOK {
		t.Fatalf("UpdateSet status = %d, payload %v", result.Status, result.Value)
	}

	var set models.ElementSet
	if err := svc.db.First(&set, id).Error; err != nil {
		t.Fatalf("set row missing: %v", err)
	}
	if set.Name != "Thoracic Nodules" {
		t.Errorf("name not rewritten: %q", set.Name)
	}

	var refs []models.IndexCodeElementSetRef
	if err := svc.db.Where("element_set_id = ?", id).Find(&refs).Error; err != nil {
		t.Fatalf("Failed to read code refs: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("code refs = %d rows, want 1", len(refs))
	}
	var code models.IndexCode
	if err := svc.db.First(&code, refs[0].CodeID).Error; err != nil {
		t.Fatalf("code row missing: %v", err)
	}
	if code.System != "LOINC" {
		t.Errorf("code system = %q, want LOINC", code.System)
	}
}

func TestUpdateSetStorageFaultRollsBack(t *testing.T) {
	svc := newSetService(t)
	person := createTestPerson(t, svc.db, "Alice")
	created := svc.CreateSet(&dto.CreateUpdateSet{Name: "Pulmonary Nodules"})
	setID := created.Value.(dto.SetIDDetails).SetID
	id, _ := ident.DecodeSetID(setID)

	// Break the person junction mid-flight: the scalar rewrite succeeds but
	// the reference replacement faults, so the whole update must roll back.
	if err := svc.db.Migrator().DropTable(&models.PersonRoleElementSetRef{}); err != nil {
		t.Fatalf("Failed to drop junction table: %v", err)
	}

	result := svc.UpdateSet(setID, &dto.CreateUpdateSet{
		Name:    "Thoracic Nodules",
		Persons: []dto.PersonRef{{PersonID: person.ID}},
	})
	if result.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", result.Status)
	}

	var set models.ElementSet
	if err := svc.db.First(&set, id).Error; err != nil {
		t.Fatalf("set row missing: %v", err)
	}
	if set.Name != "Pulmonary Nodules" {
		t.Errorf("scalar rewrite not rolled back: %q", set.Name)
	}
}

func TestDeleteSetKeepsElements(t *testing.T) {
	svc := newSetService(t)
	element := createTestElement(t, svc.db, "Nodule size", "float")
	created := svc.CreateSet(&dto.CreateUpdateSet{Name: "Pulmonary Nodules"})
	setID := created.Value.(dto.SetIDDetails).SetID
	id, _ := ident.DecodeSetID(setID)

	sync := refSync{tx: svc.db}
	if err := sync.AddElementSetRef(id, element.ID); err != nil {
		t.Fatalf("AddElementSetRef failed: %v", err)
	}

	result := svc.DeleteSet(setID)
	if result.Status != http.StatusOK {
		t.Fatalf("DeleteSet status = %d, payload %v", result.Status, result.Value)
	}

	if n := countRows(t, svc.db, &models.ElementSet{}, "id = ?", id); n != 0 {
		t.Errorf("set row survives delete")
	}
	if n := countRows(t, svc.db, &models.ElementSetRef{}, "element_set_id = ?", id); n != 0 {
		t.Errorf("membership rows survive delete")
	}
	if n := countRows(t, svc.db, &models.Element{}, "id = ?", element.ID); n != 1 {
		t.Errorf("element deleted with the set")
	}
}

func TestSearchSetsByName(t *testing.T) {
	svc := newSetService(t)
	svc.CreateSet(&dto.CreateUpdateSet{Name: "Pulmonary Nodules"})
	svc.CreateSet(&dto.CreateUpdateSet{Name: "Liver Lesions"})

	result := svc.SearchSets("nodule")
	if result.Status != http.StatusOK {
		t.Fatalf("SearchSets status = %d, payload %v", result.Status, result.Value)
	}
	details := result.Value.([]dto.ElementSetDetails)
	if len(details) != 1 || details[0].Name != "Pulmonary Nodules" {
		t.Fatalf("unexpected search result: %+v", details)
	}

	if r := svc.SearchSets("xy"); r.Status != http.StatusBadRequest {
		t.Errorf("short keyword status = %d, want 400", r.Status)
	}
	if r := svc.SearchSets("nothing"); r.Status != http.StatusNotFound {
		t.Errorf("no-match status = %d, want 404", r.Status)
	}
}
