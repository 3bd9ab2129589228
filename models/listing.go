package models

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// ErrListingNotFound is returned by GetListing for an unknown GUID.
var ErrListingNotFound = errors.New("listing not found")

// ErrInvalidListing wraps every CreateListing validation failure.
var ErrInvalidListing = errors.New("invalid listing")

const listingColumns = `guid, title, city, price, property_type, room_type, amenities, created_at`

// Listing is a stay that can be searched with a FilterSelection
type Listing struct {
	GUID         string         `json:"guid"`
	Title        string         `json:"title"`
	City         sql.NullString `json:"city,omitempty"`
	Price        int            `json:"price"`
	PropertyType sql.NullString `json:"property_type,omitempty"`
	RoomType     sql.NullString `json:"room_type,omitempty"`
	Amenities    sql.NullString `json:"amenities,omitempty"` // JSON array stored as string
	CreatedAt    time.Time      `json:"created_at"`
}

// ListingInput is used for creating listings via API
type ListingInput struct {
	Title        string   `json:"title"`
	City         string   `json:"city,omitempty"`
	Price        int      `json:"price"`
	PropertyType string   `json:"property_type,omitempty"`
	RoomType     string   `json:"room_type,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
}

// ListingOutput is used for API responses with proper null handling
type ListingOutput struct {
	GUID         string    `json:"guid"`
	Title        string    `json:"title"`
	City         string    `json:"city,omitempty"`
	Price        int       `json:"price"`
	PropertyType string    `json:"property_type,omitempty"`
	RoomType     string    `json:"room_type,omitempty"`
	Amenities    []string  `json:"amenities"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToOutput converts a Listing to ListingOutput for API responses
func (l *Listing) ToOutput() ListingOutput {
	return ListingOutput{
		GUID:         l.GUID,
		Title:        l.Title,
		City:         l.City.String,
		Price:        l.Price,
		PropertyType: l.PropertyType.String,
		RoomType:     l.RoomType.String,
		Amenities:    l.AmenityList(),
		CreatedAt:    l.CreatedAt,
	}
}

// AmenityList decodes the amenities column. Malformed JSON yields an empty list.
func (l *Listing) AmenityList() []string {
	list := []string{}
	if l.Amenities.Valid && l.Amenities.String != "" {
		if err := json.Unmarshal([]byte(l.Amenities.String), &list); err != nil {
			logger.LogErr(err, "bad amenities column", "guid", l.GUID)
			return []string{}
		}
	}
	return list
}

func (l *Listing) args() []any {
	return []any{l.GUID, l.Title, l.City, l.Price, l.PropertyType, l.RoomType, l.Amenities, l.CreatedAt}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(r rowScanner) (*Listing, error) {
	var l Listing
	err := r.Scan(&l.GUID, &l.Title, &l.City, &l.Price, &l.PropertyType, &l.RoomType, &l.Amenities, &l.CreatedAt)
	if err != nil {
		return nil, serr.Wrap(err, "failed to scan listing")
	}
	return &l, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateListing validates input and stores a new listing in both databases
func CreateListing(input ListingInput) (*Listing, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidListing)
	}
	if input.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidListing)
	}
	if input.PropertyType != "" && !IsPropertyType(input.PropertyType) {
		return nil, fmt.Errorf("%w: unknown property type %q", ErrInvalidListing, input.PropertyType)
	}
	if input.RoomType != "" && !IsRoomType(input.RoomType) {
		return nil, fmt.Errorf("%w: unknown room type %q", ErrInvalidListing, input.RoomType)
	}
	for _, a := range input.Amenities {
		if !IsAmenity(a) {
			return nil, fmt.Errorf("%w: unknown amenity %q", ErrInvalidListing, a)
		}
	}

	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, err := json.Marshal(amenities)
	if err != nil {
		return nil, serr.Wrap(err, "failed to marshal amenities")
	}

	l := &Listing{
		GUID:         uuid.New().String(),
		Title:        strings.TrimSpace(input.Title),
		City:         nullString(input.City),
		Price:        input.Price,
		PropertyType: nullString(input.PropertyType),
		RoomType:     nullString(input.RoomType),
		Amenities:    sql.NullString{String: string(amenitiesJSON), Valid: true},
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	query := `INSERT INTO listings (` + listingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if err := WriteThrough(query, l.args()...); err != nil {
		return nil, serr.Wrap(err, "failed to create listing")
	}
	return l, nil
}

// GetListing retrieves a listing by GUID from cache
func GetListing(guid string) (*Listing, error) {
	rows, err := ReadFromCache(`SELECT `+listingColumns+` FROM listings WHERE guid = ?`, guid)
	if err != nil {
		return nil, serr.Wrap(err, "failed to get listing")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, serr.Wrap(err, "failed to get listing")
		}
		return nil, ErrListingNotFound
	}
	return scanListing(rows)
}

// ListListings returns listings ordered by price, with optional pagination
func ListListings(limit, offset int) ([]Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY price, title`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", offset)
	}
	return queryListings(query)
}

// SearchListings returns the listings that satisfy sel, cheapest first.
// A non-numeric price bound imposes no constraint. Every selected amenity
// must be offered by a listing for it to match.
func SearchListings(sel FilterSelection) ([]Listing, error) {
	var where []string
	var args []any

	if sel.PriceRange != nil {
		if n, ok := sel.PriceRange.Min.Int(); ok {
			where = append(where, "price >= ?")
			args = append(args, n)
		}
		if n, ok := sel.PriceRange.Max.Int(); ok {
			where = append(where, "price <= ?")
			args = append(args, n)
		}
	}
	if sel.PropertyType != "" {
		where = append(where, "property_type = ?")
		args = append(args, sel.PropertyType)
	}
	if sel.RoomType != "" {
		where = append(where, "room_type = ?")
		args = append(args, sel.RoomType)
	}

	query := `SELECT ` + listingColumns + ` FROM listings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY price, title"

	candidates, err := queryListings(query, args...)
	if err != nil {
		return nil, err
	}
	if len(sel.Amenities) == 0 {
		return candidates, nil
	}

	matches := make([]Listing, 0, len(candidates))
	for _, l := range candidates {
		if hasAllAmenities(l.AmenityList(), sel.Amenities) {
			matches = append(matches, l)
		}
	}
	return matches, nil
}

func hasAllAmenities(offered, wanted []string) bool {
	set := make(map[string]struct{}, len(offered))
	for _, a := range offered {
		set[a] = struct{}{}
	}
	for _, w := range wanted {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

func queryListings(query string, args ...any) ([]Listing, error) {
	rows, err := ReadFromCache(query, args...)
	if err != nil {
		return nil, serr.Wrap(err, "failed to query listings")
	}
	defer rows.Close()

	listings := []Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.Wrap(err, "error iterating listings")
	}
	return listings, nil
}

// CountListings returns the number of stored listings
func CountListings() (int, error) {
	rows, err := ReadFromCache(`SELECT COUNT(*) FROM listings`)
	if err != nil {
		return 0, serr.Wrap(err, "failed to count listings")
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, serr.Wrap(err, "failed to scan listing count")
		}
	}
	return n, rows.Err()
}

var demoListings = []ListingInput{
	{Title: "Lakeside cottage", City: "Pokhara", Price: 4500, PropertyType: "House", RoomType: "Entire Room", Amenities: []string{"Wifi", "Kitchen", "Free Parking"}},
	{Title: "City centre studio", City: "Kathmandu", Price: 1800, PropertyType: "Flat", RoomType: "Entire Room", Amenities: []string{"Wifi", "Ac", "Tv"}},
	{Title: "Quiet room near the stupa", City: "Kathmandu", Price: 900, PropertyType: "Guest House", RoomType: "Room", Amenities: []string{"Wifi"}},
	{Title: "Rooftop flat with a view", City: "Lalitpur", Price: 3200, PropertyType: "Flat", RoomType: "Entire Room", Amenities: []string{"Wifi", "Kitchen", "Washing Machine", "Tv"}},
	{Title: "Resort suite", City: "Chitwan", Price: 12000, PropertyType: "Hotel", RoomType: "Room", Amenities: []string{"Wifi", "Ac", "Tv", "Pool", "Free Parking"}},
	{Title: "Family villa", City: "Pokhara", Price: 26000, PropertyType: "House", RoomType: "Entire Room", Amenities: []string{"Wifi", "Kitchen", "Ac", "Washing Machine", "Pool", "Free Parking"}},
	{Title: "Budget bunk", City: "Bhaktapur", Price: 650, PropertyType: "Guest House", RoomType: "AnyType", Amenities: []string{}},
	{Title: "Heritage hotel room", City: "Bhaktapur", Price: 5400, PropertyType: "Hotel", RoomType: "Room", Amenities: []string{"Wifi", "Tv", "Free Parking"}},
}

// SeedListings stores the demo listings when the store is empty
func SeedListings() error {
	n, err := CountListings()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, in := range demoListings {
		if _, err := CreateListing(in); err != nil {
			return serr.Wrap(err, "failed to seed listing")
		}
	}
	logger.Info("Seeded demo listings", "count", len(demoListings))
	return nil
}
