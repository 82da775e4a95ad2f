package resolver

import "strings"

type columnGetter func(*Record) (interface{}, bool)

type column struct {
	name string
	get  columnGetter
}

var (
	geolocationColumns = [...]column{
		{"query", stringColumn(func(r *Record) *string { return r.Query })},
		{"status", stringColumn(func(r *Record) *string { return r.Status })},
		{"continent", stringColumn(func(r *Record) *string { return r.Continent })},
		{"continentCode", stringColumn(func(r *Record) *string { return r.ContinentCode })},
		{"country", stringColumn(func(r *Record) *string { return r.Country })},
		{"countryCode", stringColumn(func(r *Record) *string { return r.CountryCode })},
		{"region", stringColumn(func(r *Record) *string { return r.Region })},
		{"regionName", stringColumn(func(r *Record) *string { return r.RegionName })},
		{"city", stringColumn(func(r *Record) *string { return r.City })},
		{"district", stringColumn(func(r *Record) *string { return r.District })},
		{"zip", stringColumn(func(r *Record) *string { return r.Zip })},
		{"lat", floatColumn(func(r *Record) *float64 { return r.Lat })},
		{"lon", floatColumn(func(r *Record) *float64 { return r.Lon })},
		{"timezone", stringColumn(func(r *Record) *string { return r.Timezone })},
		{"offset", intColumn(func(r *Record) *int64 { return r.Offset })},
		{"currency", stringColumn(func(r *Record) *string { return r.Currency })},
		{"isp", stringColumn(func(r *Record) *string { return r.ISP })},
		{"org", stringColumn(func(r *Record) *string { return r.Org })},
		{"as", stringColumn(func(r *Record) *string { return r.AS })},
		{"asname", stringColumn(func(r *Record) *string { return r.ASName })},
		{"mobile", boolColumn(func(r *Record) *bool { return r.Mobile })},
		{"proxy", boolColumn(func(r *Record) *bool { return r.Proxy })},
		{"hosting", boolColumn(func(r *Record) *bool { return r.Hosting })},
	}

	reportColumns = [...]column{
		{"responseCode", intColumn(func(r *Record) *int64 { return r.ResponseCode })},
		{"verboseMsg", stringColumn(func(r *Record) *string { return r.VerboseMsg })},
		{"resolutions", resolutionsColumn},
		{"detectedUrlCount", intColumn(func(r *Record) *int64 { return r.DetectedURLCount })},
		{"detectedDownloadedSampleCount",
			intColumn(func(r *Record) *int64 { return r.DetectedDownloadedSampleCount })},
		{"undetectedDownloadedSampleCount",
			intColumn(func(r *Record) *int64 { return r.UndetectedDownloadedSampleCount })},
		{"undetectedUrlCount", intColumn(func(r *Record) *int64 { return r.UndetectedURLCount })},
	}

	allowedColumns = append(geolocationColumns[:len(geolocationColumns):len(geolocationColumns)],
		reportColumns[:]...)

	columnIndex = func() map[string]*column {
		rv := make(map[string]*column, len(allowedColumns))

		for i := range allowedColumns {
			rv[allowedColumns[i].name] = &allowedColumns[i]
		}

		return rv
	}()

	fullSelection = func() ColumnSelection {
		names := make([]string, len(allowedColumns))

		for i, v := range allowedColumns {
			names[i] = v.name
		}

		return ColumnSelection{names: names}
	}()

	geolocationSelection = func() ColumnSelection {
		names := make([]string, len(geolocationColumns))

		for i, v := range geolocationColumns {
			names[i] = v.name
		}

		return ColumnSelection{names: names}
	}()
)

// AllowedColumns returns names of all columns which providers can
// return, in a canonical order.
func AllowedColumns() []string {
	return fullSelection.Names()
}

// IsAllowedColumn reports if name is a known column.
func IsAllowedColumn(name string) bool {
	_, ok := columnIndex[name]

	return ok
}

// ColumnSelection is a set of allowed columns in a canonical order.
// A zero value selects nothing.
type ColumnSelection struct {
	names []string
}

// Names returns selected column names.
func (c ColumnSelection) Names() []string {
	rv := make([]string, len(c.names))
	copy(rv, c.names)

	return rv
}

// Len returns a number of selected columns.
func (c ColumnSelection) Len() int {
	return len(c.names)
}

// Contains reports if column is selected.
func (c ColumnSelection) Contains(name string) bool {
	for _, v := range c.names {
		if v == name {
			return true
		}
	}

	return false
}

// IsFull reports if every allowed column is selected.
func (c ColumnSelection) IsFull() bool {
	return len(c.names) == len(allowedColumns)
}

// String returns comma-separated column names.
func (c ColumnSelection) String() string {
	return strings.Join(c.names, ",")
}

// Geolocation keeps only columns which describe a location and a
// network of an address. Other columns come from threat reports.
func (c ColumnSelection) Geolocation() ColumnSelection {
	names := []string{}

	for _, v := range c.names {
		if geolocationSelection.Contains(v) {
			names = append(names, v)
		}
	}

	return ColumnSelection{names: names}
}

// GeolocationColumns selects every geolocation column of the catalog.
func GeolocationColumns() ColumnSelection {
	return geolocationSelection
}

// AllColumns selects the whole catalog.
func AllColumns() ColumnSelection {
	return fullSelection
}

// SelectColumns intersects requested names with allowed columns.
// Unknown names are dropped silently, duplicates are ignored.
func SelectColumns(requested []string) ColumnSelection {
	wanted := make(map[string]bool, len(requested))

	for _, v := range requested {
		wanted[v] = true
	}

	names := []string{}

	for _, v := range allowedColumns {
		if wanted[v.name] {
			names = append(names, v.name)
		}
	}

	return ColumnSelection{names: names}
}

// RejectedColumns returns requested names which are not in the
// catalog, in the order they were requested.
func RejectedColumns(requested []string) []string {
	rv := []string{}

	for _, v := range requested {
		if !IsAllowedColumn(v) {
			rv = append(rv, v)
		}
	}

	return rv
}

func stringColumn(field func(*Record) *string) columnGetter {
	return func(r *Record) (interface{}, bool) {
		if value := field(r); value != nil {
			return *value, true
		}

		return nil, false
	}
}

func floatColumn(field func(*Record) *float64) columnGetter {
	return func(r *Record) (interface{}, bool) {
		if value := field(r); value != nil {
			return *value, true
		}

		return nil, false
	}
}

func intColumn(field func(*Record) *int64) columnGetter {
	return func(r *Record) (interface{}, bool) {
		if value := field(r); value != nil {
			return *value, true
		}

		return nil, false
	}
}

func boolColumn(field func(*Record) *bool) columnGetter {
	return func(r *Record) (interface{}, bool) {
		if value := field(r); value != nil {
			return *value, true
		}

		return nil, false
	}
}

func resolutionsColumn(r *Record) (interface{}, bool) {
	if r.Resolutions == nil {
		return nil, false
	}

	rv := make([]Resolution, len(r.Resolutions))
	copy(rv, r.Resolutions)

	return rv, true
}
