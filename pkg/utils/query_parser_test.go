package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQueryDefaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
	assert.Equal(t, 1, filter.Page)
	assert.Empty(t, filter.Search)
	assert.False(t, filter.WithPagination)
}

func TestParseFilterFromQuery(t *testing.T) {
	query, _ := url.ParseQuery("search=press&filter[factory_id]=3&filter[status]=faulty&sort[created_at]=DESC&limit=20&offset=40&withPagination=true")

	filter := ParseFilterFromQuery(query)

	assert.Equal(t, "press", filter.Search)
	assert.Equal(t, "3", filter.Filter["factory_id"])
	assert.Equal(t, "faulty", filter.Filter["status"])
	assert.Equal(t, "desc", filter.Sort["created_at"])
	assert.Equal(t, 20, filter.Limit)
	assert.Equal(t, 40, filter.Offset)
	assert.Equal(t, 3, filter.Page)
	assert.True(t, filter.WithPagination)
}

func TestParseFilterLimitCap(t *testing.T) {
	query, _ := url.ParseQuery("limit=5000")
	filter := ParseFilterFromQuery(query)
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestParseFilterPageComputesOffset(t *testing.T) {
	query, _ := url.ParseQuery("page=4&limit=25")
	filter := ParseFilterFromQuery(query)
	assert.Equal(t, 4, filter.Page)
	assert.Equal(t, 75, filter.Offset)
}

func TestParseFilterOffsetWinsOverPage(t *testing.T) {
	query, _ := url.ParseQuery("page=9&offset=10&limit=10")
	filter := ParseFilterFromQuery(query)
	assert.Equal(t, 10, filter.Offset)
	assert.Equal(t, 2, filter.Page)
}

func TestParseFilterBadSortDirection(t *testing.T) {
	query, _ := url.ParseQuery("sort[name]=sideways")
	filter := ParseFilterFromQuery(query)
	assert.Equal(t, "asc", filter.Sort["name"])
}
