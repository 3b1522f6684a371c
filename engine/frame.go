package engine

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// FrameView exposes a gota DataFrame as a RecordView.
// NA elements read as null. Columns are copied out once at construction,
// the DataFrame itself is never modified.
type FrameView struct {
	nrow    int
	names   []string
	columns map[string]series.Series
}

// NewFrameView wraps df. A DataFrame carrying an error is rejected.
func NewFrameView(df dataframe.DataFrame) (RecordView, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("dataframe: %w", df.Err)
	}
	v := &FrameView{
		nrow:    df.Nrow(),
		names:   df.Names(),
		columns: make(map[string]series.Series, df.Ncol()),
	}
	for _, name := range v.names {
		v.columns[name] = df.Col(name)
	}
	return v, nil
}

func (v *FrameView) Len() int { return v.nrow }

func (v *FrameView) Value(i int, column string) (string, bool) {
	if i < 0 || i >= v.nrow {
		return "", false
	}
	s, ok := v.columns[column]
	if !ok {
		return "", false
	}
	e := s.Elem(i)
	if e.IsNA() {
		return "", false
	}
	return e.String(), true
}

func (v *FrameView) Columns() []string { return v.names }
