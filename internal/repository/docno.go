package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/hanseo-dev/siteoffice/internal/docno"
)

// nextDocNo fetches the highest existing document number for prefix+year and
// returns its successor. Ordering by length before value keeps the comparison
// numeric once a zero-padded suffix widens past three digits. Callers that
// need the read and the subsequent insert to serialize run this inside the
// same transaction.
func nextDocNo(tx *gorm.DB, table, column, prefix string, year int) (string, error) {
	var last string
	stmt := fmt.Sprintf(`
		SELECT %[1]s
		FROM %[2]s
		WHERE %[1]s LIKE ?
		ORDER BY LENGTH(%[1]s) DESC, %[1]s DESC
		LIMIT 1
	`, column, table)
	if err := tx.Raw(stmt, docno.Like(prefix, year)).Scan(&last).Error; err != nil {
		return "", err
	}
	return docno.Next(prefix, year, last), nil
}
