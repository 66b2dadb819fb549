package querycache

import "strings"

// EntityType names a resource family used as a tag namespace.
type EntityType string

// Entity types served by the distribution backend.
const (
	EntityProduct       EntityType = "PRODUCT"
	EntityBrand         EntityType = "BRAND"
	EntityDepot         EntityType = "DEPOT"
	EntityOrder         EntityType = "ORDER"
	EntityPayment       EntityType = "PAYMENT"
	EntityInventory     EntityType = "INVENTORY"
	EntityDeliveryRoute EntityType = "DELIVERY_ROUTE"
	EntityPricing       EntityType = "PRICING"
	EntityNotification  EntityType = "NOTIFICATION"
	EntityReport        EntityType = "REPORT"
	EntityAuth          EntityType = "AUTH"
)

// AllEntityTypes is every tag namespace. Logout invalidates the LIST tag of
// each one, since the next session may belong to a different principal.
var AllEntityTypes = []EntityType{
	EntityProduct,
	EntityBrand,
	EntityDepot,
	EntityOrder,
	EntityPayment,
	EntityInventory,
	EntityDeliveryRoute,
	EntityPricing,
	EntityNotification,
	EntityReport,
	EntityAuth,
}

// ListID is the sentinel id representing "the whole collection". Mutations
// that cannot know individual member ids (creation, bulk operations)
// invalidate through it.
const ListID = "LIST"

// Tag associates cached query results with the mutations that should
// invalidate them.
type Tag struct {
	Type EntityType
	ID   string
}

// String renders the tag in TYPE:ID form, which is also its index key.
func (t Tag) String() string {
	return string(t.Type) + ":" + t.ID
}

// IsList reports whether the tag is the collection sentinel for its type.
func (t Tag) IsList() bool {
	return t.ID == ListID
}

// ListTag returns the collection sentinel tag for an entity type.
func ListTag(entity EntityType) Tag {
	return Tag{Type: entity, ID: ListID}
}

// EntityTag returns the instance tag for one entity.
func EntityTag(entity EntityType, id string) Tag {
	return Tag{Type: entity, ID: id}
}

// DerivedTag builds a synthetic-id tag for computed endpoints keyed by
// compound parameters, e.g. DerivedTag(EntityPricing, "NEAREST", state,
// productID). Distinct parameter combinations invalidate independently.
func DerivedTag(entity EntityType, parts ...string) Tag {
	return Tag{Type: entity, ID: strings.Join(parts, "-")}
}

// ListTags returns the LIST tag plus one instance tag per id: exactly N+1
// tags for N items, or the lone LIST tag when ids is empty. A list query
// must always carry the LIST tag so creations can reach it.
func ListTags(entity EntityType, ids []string) []Tag {
	tags := make([]Tag, 0, len(ids)+1)
	tags = append(tags, ListTag(entity))
	for _, id := range ids {
		tags = append(tags, EntityTag(entity, id))
	}
	return tags
}

// MutationTags returns the standard invalidation set for an update, delete,
// or state transition: the specific instance plus the collection, so list
// views reflect membership and derived-field changes.
func MutationTags(entity EntityType, id string) []Tag {
	return []Tag{EntityTag(entity, id), ListTag(entity)}
}
