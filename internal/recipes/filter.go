package recipes

import "gorm.io/gorm"

// Filter narrows a recipe listing. The favorite and cart switches only apply
// to an identified viewer; anonymous listings ignore them.
type Filter struct {
	AuthorIDs     []int64
	TagSlugs      []string
	FavoritedOnly bool
	InCartOnly    bool
}

const (
	tagMatchClause = "EXISTS (SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id " +
		"WHERE rt.recipe_id = recipes.id AND t.slug IN ?)"
	favoritedClause = "EXISTS (SELECT 1 FROM favorites fv WHERE fv.recipe_id = recipes.id AND fv.user_id = ?)"
	inCartClause    = "EXISTS (SELECT 1 FROM shopping_cart_items sc WHERE sc.recipe_id = recipes.id AND sc.user_id = ?)"
)

// Apply adds the filter predicates to a query rooted at the recipes table.
func (f Filter) Apply(query *gorm.DB, viewerID int64) *gorm.DB {
	if len(f.AuthorIDs) > 0 {
		query = query.Where("recipes.author_id IN ?", f.AuthorIDs)
	}
	if len(f.TagSlugs) > 0 {
		query = query.Where(tagMatchClause, f.TagSlugs)
	}
	if viewerID <= 0 {
		return query
	}
	if f.FavoritedOnly {
		query = query.Where(favoritedClause, viewerID)
	}
	if f.InCartOnly {
		query = query.Where(inCartClause, viewerID)
	}
	return query
}
