package models

import "testing"

func TestJoinSplitListRoundTrip(t *testing.T) {
	values := []string{"CT", "MR", "US"}
	stored := JoinList(values)
	if stored == nil || *stored != "CT,MR,US" {
		t.Fatalf("JoinList = %v", stored)
	}

	got := SplitList(stored)
	if len(got) != 3 || got[0] != "CT" || got[1] != "MR" || got[2] != "US" {
		t.Fatalf("SplitList = %v, order not preserved", got)
	}
}

func TestJoinListEmptyIsNil(t *testing.T) {
	if JoinList(nil) != nil {
		t.Error("JoinList(nil) should store NULL")
	}
	if JoinList([]string{}) != nil {
		t.Error("JoinList(empty) should store NULL")
	}
}

func TestSplitListNilAndEmpty(t *testing.T) {
	if got := SplitList(nil); got != nil {
		t.Errorf("SplitList(nil) = %v", got)
	}
	empty := ""
	if got := SplitList(&empty); got != nil {
		t.Errorf("SplitList('') = %v", got)
	}
}
