package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// ResolveSort reads ?sort_by= and ?order= against a whitelist mapping public
// names to columns. Unknown names fall back to def; order defaults to desc.
func ResolveSort(c *fiber.Ctx, allowed map[string]string, def string) clause.OrderByColumn {
	col, ok := allowed[strings.ToLower(strings.TrimSpace(c.Query("sort_by")))]
	if !ok {
		col = allowed[def]
	}
	desc := !strings.EqualFold(strings.TrimSpace(c.Query("order")), "asc")
	return clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: desc}
}
