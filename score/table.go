// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package score

import (
	"io"
	"sort"
	"strconv"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
)

// LogPrec is precision for saving float values in reports
const LogPrec = 6

// Entry is one scored model in a comparison
type Entry struct {
	Model Models
	Score Score
}

// Entries is a list of scored models
type Entries []Entry

// SortByAIC sorts entries best (lowest AIC) first, keeping the given
// order for ties.
func (es Entries) SortByAIC() {
	sort.SliceStable(es, func(i, j int) bool { return Compare(es[i].Score, es[j].Score) < 0 })
}

// Best returns the entry with the lowest AIC, the earliest on ties.
// Returns false if there are no entries.
func (es Entries) Best() (Entry, bool) {
	if len(es) == 0 {
		return Entry{}, false
	}
	best := es[0]
	for _, e := range es[1:] {
		if Compare(e.Score, best.Score) < 0 {
			best = e
		}
	}
	return best, true
}

// ConfigTable configures the columns of a model comparison table
func ConfigTable(dt *etable.Table) {
	dt.SetMetaData("name", "ModelScores")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{Name: "Model", Type: etensor.STRING},
		{Name: "NParams", Type: etensor.INT64},
		{Name: "LL", Type: etensor.FLOAT64},
		{Name: "LL0", Type: etensor.FLOAT64},
		{Name: "SSInfo", Type: etensor.FLOAT64},
		{Name: "AIC", Type: etensor.FLOAT64},
		{Name: "BIC", Type: etensor.FLOAT64},
	}
	dt.SetFromSchema(sch, 0)
}

// Table returns the entries as a model comparison table, one row per entry
func (es Entries) Table() *etable.Table {
	dt := &etable.Table{}
	ConfigTable(dt)
	dt.SetNumRows(len(es))
	for row, e := range es {
		dt.SetCellString("Model", row, e.Model.String())
		dt.SetCellFloat("NParams", row, float64(e.Score.NParams))
		dt.SetCellFloat("LL", row, e.Score.LL)
		dt.SetCellFloat("LL0", row, e.Score.LL0)
		dt.SetCellFloat("SSInfo", row, e.Score.SSInfo)
		dt.SetCellFloat("AIC", row, e.Score.AIC)
		dt.SetCellFloat("BIC", row, e.Score.BIC)
	}
	return dt
}

// WriteTable writes the comparison table as tab-separated values with headers
func (es Entries) WriteTable(w io.Writer) error {
	return es.Table().WriteCSV(w, etable.Tab, etable.Headers)
}
