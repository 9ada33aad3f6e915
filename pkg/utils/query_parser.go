package utils

import (
	"net/url"
	"strconv"
	"strings"

	"equipment-system/pkg/types"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParseFilterFromQuery turns query parameters of the form
//
//	?search=press&sort[created_at]=desc&filter[factory_id]=1&limit=10&offset=0&withPagination=true
//
// into a types.Filter. Unknown keys are ignored; repositories decide which
// filter/sort columns are allowed.
func ParseFilterFromQuery(query url.Values) types.Filter {
	filter := types.Filter{
		Sort:   map[string]string{},
		Filter: map[string]interface{}{},
		Limit:  DefaultLimit,
		Page:   1,
	}

	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]"):
			filter.Filter[key[7:len(key)-1]] = values[0]
		case strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]"):
			dir := strings.ToLower(values[0])
			if dir != "asc" && dir != "desc" {
				dir = "asc"
			}
			filter.Sort[key[5:len(key)-1]] = dir
		}
	}

	if search := query.Get("search"); search != "" {
		filter.Search = search
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				l = MaxLimit
			}
			filter.Limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
			if filter.Limit > 0 {
				filter.Page = o/filter.Limit + 1
			}
		}
	}
	// page is honored only when offset is not supplied explicitly.
	if pageStr := query.Get("page"); pageStr != "" && filter.Offset == 0 {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
			filter.Offset = (p - 1) * filter.Limit
		}
	}

	if wp := query.Get("withPagination"); wp != "" {
		filter.WithPagination, _ = strconv.ParseBool(wp)
	}

	return filter
}
