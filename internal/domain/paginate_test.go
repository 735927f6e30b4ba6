package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPaginateEmptyList(t *testing.T) {
	items, page, total := Paginate([]int{}, 5, 10)
	if len(items) != 0 || page != 1 || total != 1 {
		t.Fatalf("expected (empty, 1, 1), got (%v, %d, %d)", items, page, total)
	}
}

func TestPaginateClamping(t *testing.T) {
	list := make([]int, 25)
	for i := range list {
		list[i] = i
	}

	// Page beyond the end clamps to the last page
	items, page, total := Paginate(list, 99, 10)
	if page != 3 || total != 3 || len(items) != 5 {
		t.Fatalf("expected page 3/3 with 5 items, got %d/%d with %d", page, total, len(items))
	}
	if items[0] != 20 {
		t.Fatalf("expected last page to start at 20, got %d", items[0])
	}

	// Page zero clamps to the first page
	items, page, _ = Paginate(list, 0, 10)
	if page != 1 || items[0] != 0 {
		t.Fatalf("expected first page, got page %d starting at %d", page, items[0])
	}
}

func TestProperty_PaginateInvariants(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("page is always in range and slices never overlap", prop.ForAll(
		func(size, page, perPage int) bool {
			list := make([]int, size)
			for i := range list {
				list[i] = i
			}

			items, gotPage, total := Paginate(list, page, perPage)
			if total < 1 || gotPage < 1 || gotPage > total {
				return false
			}
			if len(items) > perPage && perPage >= 1 {
				return false
			}
			// Walking all pages yields every element exactly once
			seen := 0
			for p := 1; p <= total; p++ {
				pageItems, _, _ := Paginate(list, p, perPage)
				for _, v := range pageItems {
					if v != seen {
						return false
					}
					seen++
				}
			}
			return seen == size
		},
		gen.IntRange(0, 100),
		gen.IntRange(-5, 200),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}
