package paginator

// PaginateSlice returns the items of slice that fall on the requested page.
// The query is adjusted first, so a zero query yields the first default page.
func PaginateSlice[T any](slice []T, query PaginateQuery) []T {
	query.Adjust()

	total := int64(len(slice))
	start := query.Offset()
	if start >= total {
		return []T{}
	}

	end := start + query.Limit
	if end > total {
		end = total
	}
	return slice[start:end]
}
