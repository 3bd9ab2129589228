package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupListingDB opens a memory-only store loaded with the demo listings.
func setupListingDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitTestDB(""))
	t.Cleanup(CloseDB)
	require.NoError(t, SeedListings())
}

func titles(ls []Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Title
	}
	return out
}

func TestSeedListingsIsIdempotent(t *testing.T) {
	setupListingDB(t)
	require.NoError(t, SeedListings())

	n, err := CountListings()
	require.NoError(t, err)
	assert.Equal(t, len(demoListings), n)
}

func TestSearchListingsEmptySelectionReturnsAll(t *testing.T) {
	setupListingDB(t)

	all, err := SearchListings(FilterSelection{})
	require.NoError(t, err)
	assert.Len(t, all, len(demoListings))
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Price, all[i].Price)
	}
}

func TestSearchListingsAppliesEveryFilter(t *testing.T) {
	setupListingDB(t)

	got, err := SearchListings(FilterSelection{
		PriceRange:   &PriceRange{Min: ValidPrice(1000), Max: ValidPrice(5000)},
		PropertyType: "Flat",
		RoomType:     "Entire Room",
		Amenities:    []string{"Wifi", "Tv"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"City centre studio", "Rooftop flat with a view"}, titles(got))

	got, err = SearchListings(FilterSelection{Amenities: []string{"Pool", "Kitchen"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Family villa"}, titles(got))
}

func TestSearchListingsIgnoresInvalidBound(t *testing.T) {
	setupListingDB(t)

	got, err := SearchListings(FilterSelection{
		PriceRange: &PriceRange{Min: InvalidPrice("abc"), Max: ValidPrice(900)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Budget bunk", "Quiet room near the stupa"}, titles(got))
}

func TestSearchListingsCrossedRangeMatchesNothing(t *testing.T) {
	setupListingDB(t)

	got, err := SearchListings(FilterSelection{
		PriceRange: &PriceRange{Min: ValidPrice(5000), Max: ValidPrice(100)},
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateAndGetListing(t *testing.T) {
	require.NoError(t, InitTestDB(""))
	t.Cleanup(CloseDB)

	l, err := CreateListing(ListingInput{
		Title: "  Garden room ", City: "Dhulikhel", Price: 1500,
		PropertyType: "Guest House", RoomType: "Room", Amenities: []string{"Wifi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Garden room", l.Title)

	got, err := GetListing(l.GUID)
	require.NoError(t, err)
	out := got.ToOutput()
	assert.Equal(t, "Garden room", out.Title)
	assert.Equal(t, "Dhulikhel", out.City)
	assert.Equal(t, []string{"Wifi"}, out.Amenities)

	_, err = GetListing("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestCreateListingValidation(t *testing.T) {
	require.NoError(t, InitTestDB(""))
	t.Cleanup(CloseDB)

	bad := []ListingInput{
		{Title: "", Price: 100},
		{Title: "No price"},
		{Title: "Castle", Price: 100, PropertyType: "Castle"},
		{Title: "Suite", Price: 100, RoomType: "Suite"},
		{Title: "Spa", Price: 100, Amenities: []string{"Sauna"}},
	}
	for _, in := range bad {
		_, err := CreateListing(in)
		assert.ErrorIs(t, err, ErrInvalidListing, in.Title)
	}
}

func TestListingsSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.ddb")
	require.NoError(t, InitTestDB(path))
	_, err := CreateListing(ListingInput{Title: "Persisted", Price: 700})
	require.NoError(t, err)
	CloseDB()

	require.NoError(t, InitDB(path))
	t.Cleanup(CloseDB)
	ls, err := ListListings(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Persisted"}, titles(ls))

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestListListingsPagination(t *testing.T) {
	setupListingDB(t)

	page, err := ListListings(3, 2)
	require.NoError(t, err)
	require.Len(t, page, 3)

	all, err := ListListings(0, 0)
	require.NoError(t, err)
	assert.Equal(t, titles(all[2:5]), titles(page))
}
