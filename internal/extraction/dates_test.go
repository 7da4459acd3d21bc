package extraction

import (
	"testing"

	"github.com/jonathan/resume-extractor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRaw  string
		start    *int
		end      *int
		current  bool
		wantConf types.Confidence
		wantOK   bool
	}{
		{"year range", "2018 - 2020", "2018 - 2020", types.IntPtr(2018), types.IntPtr(2020), false, types.ConfidenceHigh, true},
		{"month range present", "Jan 2020 – Present", "Jan 2020 – Present", types.IntPtr(2020), nil, true, types.ConfidenceHigh, true},
		{"spelled months with to", "September 2015 to June 2017", "September 2015 to June 2017", types.IntPtr(2015), types.IntPtr(2017), false, types.ConfidenceHigh, true},
		{"numeric months", "05/2019 - 08/2021", "05/2019 - 08/2021", types.IntPtr(2019), types.IntPtr(2021), false, types.ConfidenceHigh, true},
		{"embedded range", "Acme Corp, 2016-2019, Boston", "2016-2019", types.IntPtr(2016), types.IntPtr(2019), false, types.ConfidenceHigh, true},
		{"month year", "Graduated May 2021", "May 2021", types.IntPtr(2021), nil, false, types.ConfidenceHigh, true},
		{"season year", "Interned Summer 2016", "Summer 2016", types.IntPtr(2016), nil, false, types.ConfidenceHigh, true},
		{"season range", "Fall 2014 - Spring 2016", "Fall 2014 - Spring 2016", types.IntPtr(2014), types.IntPtr(2016), false, types.ConfidenceHigh, true},
		{"autumn to present", "autumn 2021 to present", "autumn 2021 to present", types.IntPtr(2021), nil, true, types.ConfidenceHigh, true},
		{"bare year", "Class of 2012", "2012", types.IntPtr(2012), nil, false, types.ConfidenceMedium, true},
		{"current lowercase", "2021 - now", "2021 - now", types.IntPtr(2021), nil, true, types.ConfidenceHigh, true},
		{"no date", "Remote", "", nil, nil, false, types.ConfidenceLow, false},
		{"phone is not a date", "(555) 123-4567", "", nil, nil, false, types.ConfidenceLow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, conf, ok := ParseDateRange(tt.input)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantConf, conf)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantRaw, d.Raw)
			assert.Equal(t, tt.start, d.StartYear)
			assert.Equal(t, tt.end, d.EndYear)
			assert.Equal(t, tt.current, d.Current)
		})
	}
}

func TestIsDateOnly(t *testing.T) {
	_, ok := isDateOnly("(2020)")
	assert.True(t, ok)
	_, ok = isDateOnly("Jan 2019 - Mar 2020")
	assert.True(t, ok)
	_, ok = isDateOnly("Go, React 2020")
	assert.False(t, ok)
	_, ok = isDateOnly("")
	assert.False(t, ok)
}
