package csvio

import (
	"regexp"
	"strconv"
	"strings"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
)

// DefaultNAValues are the cell texts read as missing, in addition to the
// empty string.
var DefaultNAValues = []string{
	"#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

var (
	numre = regexp.MustCompile(`^[-+]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][-+]?[0-9]+)?$`)
	intre = regexp.MustCompile(`^[-+]?[0-9]+$`)
)

type cellClass int

const (
	cellMissing cellClass = iota
	cellInt
	cellFloat
	cellBool
	cellText
)

type classifier struct {
	na map[string]struct{}
}

func newClassifier(naValues []string) classifier {
	if naValues == nil {
		naValues = DefaultNAValues
	}
	na := make(map[string]struct{}, len(naValues)+1)
	na[""] = struct{}{}
	for _, v := range naValues {
		na[v] = struct{}{}
	}
	return classifier{na: na}
}

// classify matches NA tokens against the raw cell; numbers and bools may
// carry surrounding whitespace. A blank but non-empty cell is text.
func (c classifier) classify(raw string) cellClass {
	if _, ok := c.na[raw]; ok {
		return cellMissing
	}
	v := strings.TrimSpace(raw)
	if v == "" {
		return cellText
	}
	if intre.MatchString(v) {
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			return cellInt
		}
		return cellFloat
	}
	if numre.MatchString(v) || isInfToken(v) {
		return cellFloat
	}
	switch strings.ToLower(v) {
	case "true", "false":
		return cellBool
	}
	return cellText
}

func isInfToken(v string) bool {
	switch strings.ToLower(strings.TrimLeft(v, "+-")) {
	case "inf", "infinity":
		return true
	}
	return false
}

// inferKind decides a column's kind from every cell in it. Integer
// columns with gaps widen to float and an all-missing column is float.
// A column with no rows at all is text.
func inferKind(classes []cellClass) ds.Kind {
	if len(classes) == 0 {
		return ds.KindString
	}
	var missing, ints, floats, bools, text int
	for _, cl := range classes {
		switch cl {
		case cellMissing:
			missing++
		case cellInt:
			ints++
		case cellFloat:
			floats++
		case cellBool:
			bools++
		default:
			text++
		}
	}
	switch {
	case text > 0:
		return ds.KindString
	case bools > 0 && ints+floats > 0:
		return ds.KindString
	case bools > 0:
		return ds.KindBool
	case floats > 0 || missing > 0:
		return ds.KindFloat
	default:
		return ds.KindInt
	}
}
