package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"Upstat/internal/model"
	"Upstat/internal/pkg/util"
)

const (
	colUID       = "uid"
	colTime      = "Time"
	colPlayNum   = "PlayNum"
	colFanNum    = "FanNum"
	colChargeNum = "ChargeNum"
)

var seriesColumns = []string{colTime, colPlayNum, colFanNum, colChargeNum}

// uid 列在不同批次的采集文件里命名不一
var uidAliases = map[string]struct{}{"uid": {}, "mid": {}, "id": {}}

type csvOptions struct {
	requireUID bool
	// defaultTime 文件中没有 Time 列时使用
	defaultTime time.Time
	loc         *time.Location
}

func decodeCSV(r io.Reader, opts csvOptions) ([]model.SnapshotRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := map[string]int{}
	uidIdx := -1
	extras := map[int]string{}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := uidAliases[strings.ToLower(name)]; ok && uidIdx < 0 {
			uidIdx = i
			continue
		}
		matched := false
		for _, col := range seriesColumns {
			if strings.EqualFold(name, col) {
				index[col] = i
				matched = true
				break
			}
		}
		if !matched && name != "" {
			extras[i] = name
		}
	}

	if opts.requireUID && uidIdx < 0 {
		return nil, fmt.Errorf("missing %s column", colUID)
	}
	for _, col := range []string{colPlayNum, colFanNum, colChargeNum} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing %s column", col)
		}
	}
	if _, ok := index[colTime]; !ok && opts.defaultTime.IsZero() {
		return nil, fmt.Errorf("missing %s column", colTime)
	}

	loc := opts.loc
	if loc == nil {
		loc = time.Local
	}

	var rows []model.SnapshotRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}

		row := model.SnapshotRow{Time: opts.defaultTime}
		if uidIdx >= 0 {
			if row.UID, err = util.ParseUID(field(record, uidIdx)); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		if i, ok := index[colTime]; ok {
			if row.Time, err = util.ParseTime(field(record, i), loc); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		if row.PlayNum, err = util.ParseNumber(field(record, index[colPlayNum])); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, colPlayNum, err)
		}
		if row.FanNum, err = util.ParseNumber(field(record, index[colFanNum])); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, colFanNum, err)
		}
		if row.ChargeNum, err = util.ParseNumber(field(record, index[colChargeNum])); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, colChargeNum, err)
		}
		if len(extras) > 0 {
			row.Extra = make(map[string]string, len(extras))
			for i, name := range extras {
				row.Extra[name] = field(record, i)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func encodeSeriesCSV(w io.Writer, rows []model.SeriesRow, loc *time.Location) error {
	extraSet := map[string]struct{}{}
	for _, r := range rows {
		for k := range r.Extra {
			extraSet[k] = struct{}{}
		}
	}
	extras := make([]string, 0, len(extraSet))
	for k := range extraSet {
		extras = append(extras, k)
	}
	sort.Strings(extras)

	writer := csv.NewWriter(w)
	if err := writer.Write(append(append([]string{}, seriesColumns...), extras...)); err != nil {
		return err
	}
	for _, r := range rows {
		t := r.Time
		if loc != nil {
			t = t.In(loc)
		}
		record := []string{
			t.Format(util.OffsetTimeLayout),
			util.FormatNumber(r.PlayNum),
			util.FormatNumber(r.FanNum),
			util.FormatNumber(r.ChargeNum),
		}
		for _, k := range extras {
			record = append(record, r.Extra[k])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
