package services

import (
	"testing"

	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/models"
	"github.com/openimagingdata/radelement-api/internal/types"
)

func TestAddElementPersonRefsOneRowPerDistinctRole(t *testing.T) {
	db := setupTestDB(t)
	element := createTestElement(t, db, "Nodule size", "float")
	person := createTestPerson(t, db, "Pat Mahomes")

	sync := refSync{tx: db}
	err := sync.AddElementPersonRefs(element.ID, []dto.PersonRef{{
		PersonID: person.ID,
		Roles:    types.FlexList[string]{"author", "editor", "author"},
	}})
	if err != nil {
		t.Fatalf("AddElementPersonRefs failed: %v", err)
	}

	var refs []models.PersonRoleElementRef
	if err := db.Order("id").Find(&refs).Error; err != nil {
		t.Fatalf("Failed to read refs: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 rows for roles [author editor author], got %d", len(refs))
	}
	if refs[0].Role != "author" || refs[1].Role != "editor" {
		t.Errorf("roles not preserved in first-seen order: %q, %q", refs[0].Role, refs[1].Role)
	}
}

func TestAddElementPersonRefsRoleless(t *testing.T) {
	db := setupTestDB(t)
	element := createTestElement(t, db, "Nodule size", "float")
	person := createTestPerson(t, db, "Pat Mahomes")

	sync := refSync{tx: db}
	err := sync.AddElementPersonRefs(element.ID, []dto.PersonRef{{PersonID: person.ID}})
	if err != nil {
		t.Fatalf("AddElementPersonRefs failed: %v", err)
	}

	var refs []models.PersonRoleElementRef
	if err := db.Find(&refs).Error; err != nil {
		t.Fatalf("Failed to read refs: %v", err)
	}
	if len(refs) != 1 || refs[0].Role != "" {
		t.Fatalf("expected one roleless row, got %+v", refs)
	}
}

func TestAddElementPersonRefsSkipsMissingPerson(t *testing.T) {
	db := setupTestDB(t)
	element := createTestElement(t, db, "Nodule size", "float")

	sync := refSync{tx: db}
	err := sync.AddElementPersonRefs(element.ID, []dto.PersonRef{{PersonID: 999}})
	if err != nil {
		t.Fatalf("AddElementPersonRefs failed: %v", err)
	}

	if n := countRows(t, db, &models.PersonRoleElementRef{}, ""); n != 0 {
		t.Errorf("expected missing person to be skipped, found %d rows", n)
	}
}

func TestGetOrCreateIndexCodeReusesCaseInsensitively(t *testing.T) {
	db := setupTestDB(t)
	sync := refSync{tx: db}

	first, ok, err := sync.GetOrCreateIndexCode(dto.IndexCodeReference{
		System: "RADLEX", Code: "RID28662", Display: "Nodule",
	})
	if err != nil || !ok {
		t.Fatalf("first GetOrCreateIndexCode = (%d, %v, %v)", first, ok, err)
	}

	second, ok, err := sync.GetOrCreateIndexCode(dto.IndexCodeReference{
		System: "radlex", Code: "rid28662", Display: "nodule",
	})
	if err != nil || !ok {
		t.Fatalf("second GetOrCreateIndexCode = (%d, %v, %v)", second, ok, err)
	}
	if first != second {
		t.Errorf("case variants created separate codes: %d vs %d", first, second)
	}
	if n := countRows(t, db, &models.IndexCode{}, ""); n != 1 {
		t.Errorf("expected 1 index code row, got %d", n)
	}
}

func TestGetOrCreateIndexCodeUnknownSystemSkipped(t *testing.T) {
	db := setupTestDB(t)
	sync := refSync{tx: db}

	id, ok, err := sync.GetOrCreateIndexCode(dto.IndexCodeReference{
		System: "NOSUCHSYSTEM", Code: "X1",
	})
	if err != nil {
		t.Fatalf("GetOrCreateIndexCode failed: %v", err)
	}
	if ok || id != 0 {
		t.Errorf("expected unknown system to be skipped, got (%d, %v)", id, ok)
	}
	if n := countRows(t, db, &models.IndexCode{}, ""); n != 0 {
		t.Errorf("expected no index code rows, got %d", n)
	}
}

func TestReplaceSetPersonRefsRewritesRows(t *testing.T) {
	db := setupTestDB(t)
	set := createTestSet(t, db, "Pulmonary Nodules")
	alice := createTestPerson(t, db, "Alice")
	bob := createTestPerson(t, db, "Bob")

	sync := refSync{tx: db}
	if err := sync.AddSetPersonRefs(set.ID, []dto.PersonRef{
		{PersonID: alice.ID, Roles: types.FlexList[string]{"author"}},
	}); err != nil {
		t.Fatalf("AddSetPersonRefs failed: %v", err)
	}

	if err := sync.ReplaceSetPersonRefs(set.ID, []dto.PersonRef{
		{PersonID: bob.ID, Roles: types.FlexList[string]{"reviewer"}},
	}); err != nil {
		t.Fatalf("ReplaceSetPersonRefs failed: %v", err)
	}

	var refs []models.PersonRoleElementSetRef
	if err := db.Find(&refs).Error; err != nil {
		t.Fatalf("Failed to read refs: %v", err)
	}
	if len(refs) != 1 || refs[0].PersonID != bob.ID || refs[0].Role != "reviewer" {
		t.Fatalf("expected single replaced row for Bob/reviewer, got %+v", refs)
	}
}

func TestRemovePersonRefsClearsBothLevels(t *testing.T) {
	db := setupTestDB(t)
	set := createTestSet(t, db, "Pulmonary Nodules")
	element := createTestElement(t, db, "Nodule size", "float")
	person := createTestPerson(t, db, "Alice")

	sync := refSync{tx: db}
	if err := sync.AddSetPersonRefs(set.ID, []dto.PersonRef{{PersonID: person.ID}}); err != nil {
		t.Fatalf("AddSetPersonRefs failed: %v", err)
	}
	if err := sync.AddElementPersonRefs(element.ID, []dto.PersonRef{{PersonID: person.ID}}); err != nil {
		t.Fatalf("AddElementPersonRefs failed: %v", err)
	}

	if err := sync.RemovePersonRefs(person.ID); err != nil {
		t.Fatalf("RemovePersonRefs failed: %v", err)
	}
	if n := countRows(t, db, &models.PersonRoleElementRef{}, ""); n != 0 {
		t.Errorf("element-level refs remain: %d", n)
	}
	if n := countRows(t, db, &models.PersonRoleElementSetRef{}, ""); n != 0 {
		t.Errorf("set-level refs remain: %d", n)
	}
}
