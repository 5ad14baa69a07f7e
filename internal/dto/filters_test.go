package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFiltersAllowList(t *testing.T) {
	filters, err := ParseFilters(`{"sekolah_id":{"value":5,"matchMode":"equals"},"nisn":{"value":"0061","matchMode":"contains"}}`, "sekolah_id", "nisn")
	require.NoError(t, err)
	assert.Equal(t, int64(5), *filters.Int64("sekolah_id"))
	assert.Equal(t, "0061", filters.String("nisn"))
}

func TestParseFiltersRejectsUnknownField(t *testing.T) {
	_, err := ParseFilters(`{"outcome":{"value":"LULUS"}}`, "sekolah_id", "nisn")
	assert.Error(t, err)
}

func TestParseFiltersEmptyInput(t *testing.T) {
	filters, err := ParseFilters("", "sekolah_id")
	require.NoError(t, err)
	assert.Empty(t, filters)
	assert.Nil(t, filters.Int64("sekolah_id"))
}

func TestParseFiltersMalformedJSON(t *testing.T) {
	_, err := ParseFilters("{not json", "sekolah_id")
	assert.Error(t, err)
}

func TestFiltersInt64FromString(t *testing.T) {
	filters, err := ParseFilters(`{"sekolah_id":{"value":"12","matchMode":"equals"}}`, "sekolah_id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), *filters.Int64("sekolah_id"))
}
