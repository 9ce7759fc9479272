package repo

import (
	"database/sql/driver"

	"golang.org/x/text/cases"
	"modernc.org/sqlite"
)

// foldCaseFunc — SQL-функция SQLite, приводящая текст к той же регистронезависимой
// форме, что и foldCase. Встроенный LOWER в SQLite складывает только ASCII.
const foldCaseFunc = "fold_case"

// foldCase складывает регистр по Unicode: "ÜBER" → "über", "Straße" → "strasse".
func foldCase(s string) string {
	return cases.Fold().String(s)
}

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldCaseFunc, 1,
		func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case string:
				return foldCase(v), nil
			case []byte:
				return foldCase(string(v)), nil
			default:
				return v, nil
			}
		})
}
