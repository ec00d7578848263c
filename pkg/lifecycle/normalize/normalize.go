package normalize

import (
	"campusfound/beacon/pkg/docstore"
	"campusfound/beacon/pkg/lifecycle"
)

// Item turns a raw stored item record into its canonical shape. The
// function is pure and total: any unrecognized shape yields a
// best-effort record with empty or defaulted fields. Normalization is
// never the reason a caller fails.
//
// Field precedence, oldest spelling first where drift exists:
//
//   - category: "type", then "category"
//   - status:   "status", then "kind"; anything outside lost/found
//     defaults to lost
//   - image:    "imageURL", then "imageUrl", then "image"
//   - owner:    "ownerId", then "userId", then "reportedBy"
//
// Timestamps resolve through lifecycle.TimeStrategies; a value no
// strategy can read resolves to nil.
func Item(id string, fields docstore.Fields) lifecycle.Item {
	if fields == nil {
		fields = docstore.Fields{}
	}

	item := lifecycle.Item{
		ID:          id,
		Title:       lifecycle.StringField(fields, "title"),
		Description: lifecycle.StringField(fields, "description"),
		Category:    lifecycle.StringField(fields, "type", "category"),
		Status:      status(fields),
		ImageURL:    lifecycle.StringField(fields, "imageURL", "imageUrl", "image"),
		OwnerID:     lifecycle.StringField(fields, "ownerId", "userId", "reportedBy"),
		CreatedAt:   lifecycle.TimeField(fields, "createdAt"),
	}

	// foundAt only carries meaning for found items.
	if item.Status == lifecycle.StatusFound {
		item.FoundAt = lifecycle.TimeField(fields, "foundAt")
	}

	return item
}

// ItemFromDocument is Item applied to a queried document.
func ItemFromDocument(doc docstore.Document) lifecycle.Item {
	return Item(doc.ID, doc.Fields)
}

// status resolves the lost/found state with its drift chain and
// default.
func status(fields docstore.Fields) lifecycle.Status {
	switch lifecycle.Status(lifecycle.StringField(fields, "status", "kind")) {
	case lifecycle.StatusFound:
		return lifecycle.StatusFound
	default:
		return lifecycle.StatusLost
	}
}
