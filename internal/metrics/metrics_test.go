package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"LoadsTotal", LoadsTotal},
		{"LoadDuration", LoadDuration},
		{"RowsDropped", RowsDropped},
		{"LibraryItems", LibraryItems},
		{"IndexScansTotal", IndexScansTotal},
		{"IndexFilesChanged", IndexFilesChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.metric)
		})
	}
}

func TestSetLibraryItems(t *testing.T) {
	SetLibraryItems(10, 3, 2, 4)

	assert.InDelta(t, 10, testutil.ToFloat64(LibraryItems.WithLabelValues("songs")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(LibraryItems.WithLabelValues("albums")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(LibraryItems.WithLabelValues("artists")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(LibraryItems.WithLabelValues("genres")), 0)
}

func TestRowsDroppedLabels(t *testing.T) {
	before := testutil.ToFloat64(RowsDropped.WithLabelValues(ReasonDuplicate))
	RowsDropped.WithLabelValues(ReasonDuplicate).Add(2)
	assert.InDelta(t, before+2, testutil.ToFloat64(RowsDropped.WithLabelValues(ReasonDuplicate)), 0)
}
