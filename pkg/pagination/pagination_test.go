package pagination

import "testing"

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	res := Paginate(items, &PaginationParams{Page: 2, PerPage: 3})
	if len(res.Items) != 3 || res.Items[0] != 4 {
		t.Fatalf("page 2 = %v", res.Items)
	}
	if res.Pagination.TotalPages != 3 || !res.Pagination.HasNext || !res.Pagination.HasPrev {
		t.Errorf("pagination = %+v", res.Pagination)
	}

	res = Paginate(items, &PaginationParams{Page: 9, PerPage: 3})
	if len(res.Items) != 0 {
		t.Errorf("past the end = %v", res.Items)
	}

	res = Paginate(items, &PaginationParams{})
	if res.Pagination.PerPage != 15 || len(res.Items) != 7 {
		t.Errorf("defaults = %+v", res.Pagination)
	}
}
