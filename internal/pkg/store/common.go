package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ougirez/cellarium/internal/pkg/constants"
)

const (
	tableUsers   = "users"
	tableRegions = "regions"
	tableWines   = "wines"
	tableBottles = "bottles"
	tableStores  = "stores"
)

// Postgres SQLSTATE codes we translate.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

// constraintErrors maps constraint names from the migrations to API errors.
var constraintErrors = map[string]error{
	"regions_name_country_key": constants.ErrRegionDuplicate,
	"users_username_key":       constants.ErrUsernameTaken,
	"wines_region_id_fkey":     constants.NewFieldError("region", "invalid pk - object does not exist"),
	"bottles_wine_id_fkey":     constants.NewFieldError("wine", "invalid pk - object does not exist"),
	"bottles_store_id_fkey":    constants.NewFieldError("store", "invalid pk - object does not exist"),
	"wines_rating_check":       constants.NewFieldError("rating", "ensure this value is between 0.0 and 5.0"),
	"wines_vintage_check":      constants.NewFieldError("vintage", "ensure this value is greater than 0"),
	"wines_wine_type_check":    constants.NewFieldError("wine_type", "not a valid choice"),
	"bottles_price_check":      constants.NewFieldError("price", "ensure this value is greater than or equal to 0"),
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if pgxscan.NotFound(err) {
		return constants.ErrDBNotFound
	}
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation, pgUniqueViolation, pgCheckViolation:
			if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
				return fmt.Errorf("%s: %w", pgErr.Message, mapped)
			}
			return fmt.Errorf("%s: %w", pgErr.Message, constants.NewFieldError(constants.NonFieldErrors, pgErr.Message))
		}
	}
	return err
}

// builder возвращает squirrel SQL Builder обьект.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchCond requires every whitespace-separated term of text to match at
// least one of columns, case-insensitively. Empty text yields nil.
func searchCond(text string, columns ...string) squirrel.Sqlizer {
	terms := strings.Fields(text)
	if len(terms) == 0 {
		return nil
	}

	and := make(squirrel.And, 0, len(terms))
	for _, term := range terms {
		pattern := "%" + likeEscaper.Replace(term) + "%"
		or := make(squirrel.Or, 0, len(columns))
		for _, col := range columns {
			or = append(or, squirrel.ILike{col: pattern})
		}
		and = append(and, or)
	}
	return and
}

// orderBy turns an ordering parameter ("name,-bottle_count") into ORDER BY
// clauses using allowed to map API fields to SQL expressions. Unknown fields
// are dropped. tiebreak is appended unless already present.
func orderBy(ordering string, allowed map[string]string, fallback []string, tiebreak string) []string {
	clauses := make([]string, 0, 4)
	for _, field := range strings.Split(ordering, ",") {
		field = strings.TrimSpace(field)
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		expr, ok := allowed[field]
		if !ok {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s %s", expr, dir))
	}
	if len(clauses) == 0 {
		clauses = append(clauses, fallback...)
	}
	for _, c := range clauses {
		if c == tiebreak {
			return clauses
		}
	}
	return append(clauses, tiebreak)
}
