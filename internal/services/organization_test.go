package services

import (
	"net/http"
	"testing"

	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/ident"
	"github.com/openimagingdata/radelement-api/internal/models"
	"github.com/openimagingdata/radelement-api/internal/types"
)

func newOrganizationService(t *testing.T) *OrganizationService {
	return NewOrganizationService(setupTestDB(t), testLogger())
}

func TestCreateOrganizationRejectsDuplicateProfile(t *testing.T) {
	svc := newOrganizationService(t)

	first := svc.CreateOrganization(&dto.CreateUpdateOrganization{
		Name: "American College of Radiology", Abbreviation: "ACR",
	})
	if first.Status != http.StatusCreated {
		t.Fatalf("first create status = %d, payload %v", first.Status, first.Value)
	}

	second := svc.CreateOrganization(&dto.CreateUpdateOrganization{
		Name: "american college of radiology", Abbreviation: "acr",
	})
	if second.Status != http.StatusBadRequest {
		t.Fatalf("duplicate create status = %d, want 400", second.Status)
	}
}

func TestCreateOrganizationAttachesWithRoles(t *testing.T) {
	svc := newOrganizationService(t)
	set := createTestSet(t, svc.db, "Pulmonary Nodules")

	result := svc.CreateOrganization(&dto.CreateUpdateOrganization{
		Name:  "American College of Radiology",
		SetID: ident.EncodeSetID(set.ID),
		Roles: types.FlexList[string]{"sponsor", "sponsor", "publisher"},
	})
	if result.Status != http.StatusCreated {
		t.Fatalf("create status = %d, payload %v", result.Status, result.Value)
	}
	organizationID := result.Value.(dto.OrganizationIDDetails).OrganizationID

	if n := countRows(t, svc.db, &models.OrganizationRoleElementSetRef{}, "organization_id = ?", organizationID); n != 2 {
		t.Errorf("expected 2 rows after role dedup, got %d", n)
	}
}

func TestCreateOrganizationMissingElementRollsBack(t *testing.T) {
	svc := newOrganizationService(t)

	result := svc.CreateOrganization(&dto.CreateUpdateOrganization{
		Name:      "American College of Radiology",
		ElementID: "RDE999",
	})
	if result.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", result.Status)
	}
	if n := countRows(t, svc.db, &models.Organization{}, ""); n != 0 {
		t.Errorf("organization row created despite missing attach target")
	}
}

func TestUpdateOrganizationRewritesLinks(t *testing.T) {
	svc := newOrganizationService(t)
	set := createTestSet(t, svc.db, "Pulmonary Nodules")
	element := createTestElement(t, svc.db, "Nodule size", "float")

	created := svc.CreateOrganization(&dto.CreateUpdateOrganization{
		Name:      "American College of Radiology",
		ElementID: ident.EncodeElementID(element.ID),
		Roles:     types.FlexList[string]{"contributor"},
	})
	organizationID := created.Value.(dto.OrganizationIDDetails).OrganizationID

	result := svc.UpdateOrganization(organizationID, &dto.CreateUpdateOrganization{
		Name:  "American College of Radiology",
		URL:   "https://www.acr.org",
		SetID: ident.EncodeSetID(set.ID),
		Roles: types.FlexList[string]{"sponsor"},
	})
	if result.Status != http.StatusOK {
		t.Fatalf("update status = %d, payload %v", result.Status, result.Value)
	}

	if n := countRows(t, svc.db, &models.OrganizationRoleElementRef{}, "organization_id = ?", organizationID); n != 0 {
		t.Errorf("stale element link survives update")
	}
	if n := countRows(t, svc.db, &models.OrganizationRoleElementSetRef{}, "organization_id = ? AND element_set_id = ? AND role = ?", organizationID, set.ID, "sponsor"); n != 1 {
		t.Errorf("set link missing after update")
	}
}

func TestUpdateOrganizationUnknownElementRollsBack(t *testing.T) {
	svc := newOrganizationService(t)
	organization := createTestOrganization(t, svc.db, "American College of Radiology")

	result := svc.UpdateOrganization(organization.ID, &dto.CreateUpdateOrganization{
		Name:      "American College of Radiology",
		URL:       "https://www.acr.org",
		ElementID: "RDE999",
	})
	if result.Status != http.StatusNotFound {
		t.Fatalf("update status = %d, want 404", result.Status)
	}

	var row models.Organization
	if err := svc.db.First(&row, organization.ID).Error; err != nil {
		t.Fatalf("organization row missing: %v", err)
	}
	if row.URL != "" {
		t.Errorf("profile rewritten despite rollback: %+v", row)
	}
}

func TestDeleteOrganizationRemovesLinks(t *testing.T) {
	svc := newOrganizationService(t)
	set := createTestSet(t, svc.db, "Pulmonary Nodules")
	element := createTestElement(t, svc.db, "Nodule size", "float")

	created := svc.CreateOrganization(&dto.CreateUpdateOrganization{
		Name:      "American College of Radiology",
		SetID:     ident.EncodeSetID(set.ID),
		ElementID: ident.EncodeElementID(element.ID),
	})
	organizationID := created.Value.(dto.OrganizationIDDetails).OrganizationID

	result := svc.DeleteOrganization(organizationID)
	if result.Status != http.StatusOK {
		t.Fatalf("delete status = %d, payload %v", result.Status, result.Value)
	}
	if n := countRows(t, svc.db, &models.Organization{}, "id = ?", organizationID); n != 0 {
		t.Errorf("organization row survives delete")
	}
	if n := countRows(t, svc.db, &models.OrganizationRoleElementSetRef{}, "organization_id = ?", organizationID); n != 0 {
		t.Errorf("set links survive delete")
	}
	if n := countRows(t, svc.db, &models.OrganizationRoleElementRef{}, "organization_id = ?", organizationID); n != 0 {
		t.Errorf("element links survive delete")
	}
}

func TestGetOrganizationUnknownID(t *testing.T) {
	svc := newOrganizationService(t)
	if result := svc.GetOrganization(42); result.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", result.Status)
	}
}

func TestSearchOrganizations(t *testing.T) {
	svc := newOrganizationService(t)
	createTestOrganization(t, svc.db, "American College of Radiology")
	createTestOrganization(t, svc.db, "Radiological Society of North America")

	result := svc.SearchOrganizations("college")
	if result.Status != http.StatusOK {
		t.Fatalf("search status = %d, payload %v", result.Status, result.Value)
	}
	details := result.Value.([]dto.OrganizationDetails)
	if len(details) != 1 {
		t.Fatalf("unexpected search result: %+v", details)
	}

	if r := svc.SearchOrganizations("no-such-org"); r.Status != http.StatusNotFound {
		t.Errorf("no-match status = %d, want 404", r.Status)
	}
}
